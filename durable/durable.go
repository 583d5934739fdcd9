package durable

import (
	"path/filepath"

	"github.com/cockroachdb/errors"

	"dynarray/codec"
	"dynarray/snapshot"
	"dynarray/vector"
	"dynarray/wal"
)

// Vector is a vector.Vector whose mutations are journaled.
type Vector[T any] struct {
	cfg   Config
	vec   *vector.Vector[T]
	codec codec.Codec[T]
	store *snapshot.Store
	log   *wal.Log

	sinceCheckpoint int
}

// Open recovers the vector named cfg.Name: it loads the latest snapshot
// if one exists, replays the journal after it, and resumes journaling.
// opts configure the in-memory vector.
func Open[T any](cfg Config, c codec.Codec[T], opts ...vector.Option[T]) (*Vector[T], error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := snapshot.Open(filepath.Join(cfg.Dir, "snapshots"), cfg.Logger)
	if err != nil {
		return nil, err
	}

	vec, meta, err := snapshot.Load(store, cfg.Name, c, opts...)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		vec = vector.New(opts...)
	case err != nil:
		_ = store.Close()
		return nil, err
	}

	walDir := filepath.Join(cfg.Dir, "wal", cfg.Name)
	lastSeq, err := wal.Replay(walDir, meta.Seq, func(rec *wal.Record) error {
		return wal.Apply(vec, rec, c)
	})
	if err != nil {
		_ = store.Close()
		return nil, errors.Wrapf(err, "recover %q", cfg.Name)
	}

	journal, err := wal.Open(wal.Config{
		Dir:             walDir,
		SyncEveryRecord: cfg.SyncEveryRecord,
		Logger:          cfg.Logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	journal.Advance(lastSeq)

	cfg.Logger.Printf("durable: recovered %q (snapshot seq %d, replayed to seq %d, %d elements)",
		cfg.Name, meta.Seq, lastSeq, vec.Len())

	return &Vector[T]{
		cfg:   cfg,
		vec:   vec,
		codec: c,
		store: store,
		log:   journal,
	}, nil
}

// View exposes the in-memory vector for reading. Mutating it directly
// bypasses the journal.
func (d *Vector[T]) View() *vector.Vector[T] { return d.vec }

func (d *Vector[T]) At(i int) (T, error) { return d.vec.At(i) }

func (d *Vector[T]) Len() int { return d.vec.Len() }

func (d *Vector[T]) Cap() int { return d.vec.Cap() }

// Seq is the sequence number of the last journaled mutation.
func (d *Vector[T]) Seq() uint64 { return d.log.LastSeq() }

func (d *Vector[T]) PushBack(x T) error {
	b, err := d.codec.Marshal(x)
	if err != nil {
		return err
	}
	if err := d.vec.PushBack(x); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpPushBack, 0, b))
}

func (d *Vector[T]) PopBack() error {
	if err := d.vec.PopBack(); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpPopBack, 0, nil))
}

func (d *Vector[T]) Insert(pos int, x T) (int, error) {
	b, err := d.codec.Marshal(x)
	if err != nil {
		return 0, err
	}
	p, err := d.vec.Insert(pos, x)
	if err != nil {
		return 0, err
	}
	return p, d.commit(wal.NewRecord(wal.OpInsert, p, b))
}

func (d *Vector[T]) Set(i int, x T) error {
	b, err := d.codec.Marshal(x)
	if err != nil {
		return err
	}
	if err := d.vec.Set(i, x); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpSet, i, b))
}

func (d *Vector[T]) Erase(pos int) error {
	if err := d.vec.Erase(pos); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpErase, pos, nil))
}

func (d *Vector[T]) Clear() error {
	d.vec.Clear()
	return d.commit(wal.NewRecord(wal.OpClear, 0, nil))
}

func (d *Vector[T]) Resize(n int) error {
	if err := d.vec.Resize(n); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpResize, n, nil))
}

func (d *Vector[T]) ResizeFill(n int, fill T) error {
	b, err := d.codec.Marshal(fill)
	if err != nil {
		return err
	}
	if err := d.vec.ResizeFill(n, fill); err != nil {
		return err
	}
	return d.commit(wal.NewRecord(wal.OpResizeFill, n, b))
}

// InsertMany journals one insert per value, so recovery reproduces a
// partially applied call exactly.
func (d *Vector[T]) InsertMany(pos int, values []T) (int, error) {
	if pos < 0 || pos > d.vec.Len() {
		return pos, errors.Wrapf(vector.ErrInvalidPosition, "insert at %d, length %d", pos, d.vec.Len())
	}
	for _, x := range values {
		p, err := d.Insert(pos, x)
		if err != nil {
			return pos, err
		}
		pos = p + 1
	}
	return pos, nil
}

func (d *Vector[T]) InsertManyBack(values []T) error {
	for _, x := range values {
		if err := d.PushBack(x); err != nil {
			return err
		}
	}
	return nil
}

// Checkpoint snapshots the current contents at the current sequence and
// drops the journal records it covers.
func (d *Vector[T]) Checkpoint() error {
	seq := d.log.LastSeq()
	if err := d.log.Sync(); err != nil {
		return err
	}
	if err := snapshot.Save(d.store, d.cfg.Name, seq, d.vec, d.codec); err != nil {
		return errors.Wrapf(err, "checkpoint %q at seq %d", d.cfg.Name, seq)
	}
	if err := d.log.Truncate(seq); err != nil {
		return err
	}
	d.sinceCheckpoint = 0
	return nil
}

// Close flushes the journal and closes the stores. The in-memory vector
// is released.
func (d *Vector[T]) Close() error {
	err := d.log.Close()
	if cerr := d.store.Close(); err == nil {
		err = cerr
	}
	d.vec.Release()
	return err
}

// commit journals a mutation that has already been applied in memory.
// If the append fails the in-memory state is ahead of the journal.
func (d *Vector[T]) commit(rec *wal.Record) error {
	if err := d.log.Append(rec); err != nil {
		return errors.Wrapf(err, "journal %s", rec.Op)
	}
	d.sinceCheckpoint++
	if d.cfg.CheckpointEvery > 0 && d.sinceCheckpoint >= d.cfg.CheckpointEvery {
		return d.Checkpoint()
	}
	return nil
}
