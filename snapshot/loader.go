package snapshot

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"dynarray/codec"
	"dynarray/vector"
)

// Load rebuilds the snapshot called name into a new vector configured
// with opts. The vector's capacity equals the snapshot length.
func Load[T any](s *Store, name string, c codec.Codec[T], opts ...vector.Option[T]) (*vector.Vector[T], Meta, error) {
	meta, err := s.Stat(name)
	if err != nil {
		return nil, Meta{}, err
	}

	v := vector.New(opts...)
	if err := v.Reserve(meta.Length); err != nil {
		return nil, Meta{}, errors.Wrapf(err, "load %q", name)
	}

	prefix := elemPrefix(name)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		v.Release()
		return nil, Meta{}, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		x, err := c.Unmarshal(iter.Value())
		if err != nil {
			v.Release()
			return nil, Meta{}, errors.Wrapf(ErrCorrupt, "%q element %d: %v", name, v.Len(), err)
		}
		if err := v.PushBack(x); err != nil {
			v.Release()
			return nil, Meta{}, err
		}
	}
	if err := iter.Error(); err != nil {
		v.Release()
		return nil, Meta{}, err
	}
	if v.Len() != meta.Length {
		v.Release()
		return nil, Meta{}, errors.Wrapf(ErrCorrupt, "%q has %d elements, meta says %d", name, v.Len(), meta.Length)
	}
	return v, meta, nil
}
