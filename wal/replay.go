package wal

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ReplayHandler receives records in sequence order.
type ReplayHandler func(*Record) error

// Replay feeds every record in dir's journal with Seq > fromSeq to fn
// and returns the highest sequence reached, never less than fromSeq. An
// incomplete trailing frame ends the replay without error.
func Replay(dir string, fromSeq uint64, fn ReplayHandler) (uint64, error) {
	lastSeq := fromSeq
	_, err := scan(filepath.Join(dir, defaultFileName), func(_ []byte, rec *Record) error {
		if rec.Seq <= fromSeq {
			return nil
		}
		if err := fn(rec); err != nil {
			return errors.Wrapf(err, "replay seq %d (%s)", rec.Seq, rec.Op)
		}
		lastSeq = rec.Seq
		return nil
	})
	if err != nil && !errors.Is(err, errTorn) {
		return lastSeq, err
	}
	return lastSeq, nil
}
