package snapshot

import (
	"github.com/cockroachdb/errors"

	"dynarray/codec"
	"dynarray/vector"
)

// Export returns the snapshot called name as one self-contained list
// message (codec.EncodeAll), suitable for copying between stores.
func Export[T any](s *Store, name string, c codec.Codec[T]) ([]byte, Meta, error) {
	v, meta, err := Load(s, name, c)
	if err != nil {
		return nil, Meta{}, err
	}
	defer v.Release()

	data, err := codec.EncodeAll(c, v.Data())
	if err != nil {
		return nil, Meta{}, errors.Wrapf(err, "export %q", name)
	}
	return data, meta, nil
}

// Import decodes a list produced by Export and saves it as name at seq,
// replacing any previous snapshot. Nothing is written if decoding fails.
func Import[T any](s *Store, name string, seq uint64, data []byte, c codec.Codec[T]) error {
	if err := validName(name); err != nil {
		return err
	}
	v := vector.New[T]()
	defer v.Release()

	if err := codec.DecodeAll(c, data, v.PushBack); err != nil {
		return errors.Wrapf(err, "import %q", name)
	}
	return Save(s, name, seq, v, c)
}
