package snapshot

import (
	"log"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// Store holds named vector snapshots in a pebble database.
type Store struct {
	db *pebble.DB
}

// Open opens or creates a store in dir. pebble's own messages go to
// logger; nil means log.Default().
func Open(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := pebble.Open(dir, &pebble.Options{Logger: pebbleLogger{logger}})
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot store %s", dir)
	}
	return &Store{db: db}, nil
}

// pebbleLogger routes pebble's Infof/Fatalf through a *log.Logger.
type pebbleLogger struct{ l *log.Logger }

func (p pebbleLogger) Infof(format string, args ...any)  { p.l.Printf(format, args...) }
func (p pebbleLogger) Fatalf(format string, args ...any) { p.l.Fatalf(format, args...) }

func (s *Store) Close() error {
	return s.db.Close()
}

// Stat returns the meta record of a snapshot.
func (s *Store) Stat(name string) (Meta, error) {
	if err := validName(name); err != nil {
		return Meta{}, err
	}
	val, closer, err := s.db.Get(metaKey(name))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Meta{}, errors.Wrapf(ErrNotFound, "%q", name)
		}
		return Meta{}, err
	}
	defer closer.Close()

	return decodeMeta(name, val)
}

// Delete removes a snapshot. Deleting a missing snapshot is not an error.
func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	b := s.db.NewBatch()
	defer b.Close()

	prefix := namePrefix(name)
	if err := b.DeleteRange(prefix, upperBound(prefix), nil); err != nil {
		return err
	}
	if err := b.Delete(indexKey(name), nil); err != nil {
		return err
	}
	return b.Commit(pebble.Sync)
}

// Names lists stored snapshots in key order.
func (s *Store) Names() ([]string, error) {
	prefix := []byte("idx/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, strings.TrimPrefix(string(iter.Key()), "idx/"))
	}
	return names, iter.Error()
}
