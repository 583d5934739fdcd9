package snapshot

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"dynarray/codec"
	"dynarray/vector"
)

// Save replaces the snapshot called name with the contents of v, tagged
// with the journal sequence seq. Nothing is written if any element fails
// to encode.
func Save[T any](s *Store, name string, seq uint64, v *vector.Vector[T], c codec.Codec[T]) error {
	if err := validName(name); err != nil {
		return err
	}
	b := s.db.NewBatch()
	defer b.Close()

	prefix := namePrefix(name)
	if err := b.DeleteRange(prefix, upperBound(prefix), nil); err != nil {
		return err
	}
	for i, x := range v.All() {
		val, err := c.Marshal(x)
		if err != nil {
			return errors.Wrapf(err, "snapshot %q element %d", name, i)
		}
		if err := b.Set(elemKey(name, i), val, nil); err != nil {
			return err
		}
	}

	meta := Meta{Name: name, Seq: seq, Length: v.Len(), Created: time.Now()}
	if err := b.Set(metaKey(name), encodeMeta(meta), nil); err != nil {
		return err
	}
	if err := b.Set(indexKey(name), nil, nil); err != nil {
		return err
	}
	return b.Commit(pebble.Sync)
}
