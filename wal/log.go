package wal

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

var rename = os.Rename

// Log is an append-only journal file. It is not safe for concurrent use.
type Log struct {
	cfg    Config
	path   string
	file   *os.File
	writer *bufio.Writer
	seq    uint64
	closed bool
}

// Open opens or creates the journal in cfg.Dir. An incomplete trailing
// frame left by a crash is trimmed; a checksum failure anywhere is
// returned as ErrCorrupt.
func Open(cfg Config) (*Log, error) {
	cfg.applyDefaults()
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(cfg.Dir, defaultFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	l := &Log{cfg: cfg, path: path, file: f}
	if err := l.recoverTail(); err != nil {
		_ = f.Close()
		return nil, err
	}
	l.writer = bufio.NewWriterSize(f, 1<<20)
	return l, nil
}

// Append assigns the next sequence number to rec and writes it.
func (l *Log) Append(rec *Record) error {
	if l.closed {
		return ErrClosed
	}
	rec.Seq = l.seq + 1
	if rec.Time == 0 {
		rec.Time = time.Now().UnixNano()
	}
	if err := writeFrame(l.writer, encodeRecord(rec)); err != nil {
		return errors.Wrapf(err, "append seq %d", rec.Seq)
	}
	l.seq++
	if l.cfg.SyncEveryRecord {
		return l.Sync()
	}
	return nil
}

// LastSeq is the sequence number of the last appended record.
func (l *Log) LastSeq() uint64 { return l.seq }

// Advance moves the sequence counter forward to at least seq, so records
// appended after a snapshot at seq sort after it even when the journal
// file has been emptied.
func (l *Log) Advance(seq uint64) {
	if seq > l.seq {
		l.seq = seq
	}
}

func (l *Log) Sync() error {
	if l.closed {
		return ErrClosed
	}
	if err := l.writer.Flush(); err != nil {
		return err
	}
	return l.file.Sync()
}

func (l *Log) Close() error {
	if l.closed {
		return nil
	}
	err := l.Sync()
	l.closed = true
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Truncate drops every record with Seq <= upTo by rewriting the journal
// through a temporary file.
func (l *Log) Truncate(upTo uint64) error {
	if err := l.Sync(); err != nil {
		return err
	}

	tmpPath := l.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(tmp)

	kept, dropped := 0, 0
	_, err = scan(l.path, func(payload []byte, rec *Record) error {
		if rec.Seq <= upTo {
			dropped++
			return nil
		}
		kept++
		return writeFrame(w, payload)
	})
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "truncate journal")
	}

	if err := l.file.Close(); err != nil {
		l.closed = true
		_ = os.Remove(tmpPath)
		return err
	}
	// on a failed rename the untouched journal is reopened
	renameErr := rename(tmpPath, l.path)
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		l.closed = true
		return err
	}
	l.file = f
	l.writer = bufio.NewWriterSize(f, 1<<20)
	if renameErr != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(renameErr, "truncate journal")
	}

	l.cfg.Logger.Printf("wal: truncated journal up to seq %d (dropped %d, kept %d)", upTo, dropped, kept)
	return nil
}

// recoverTail finds the last complete record, trimming any torn bytes.
func (l *Log) recoverTail() error {
	valid, err := scan(l.path, func(_ []byte, rec *Record) error {
		l.seq = rec.Seq
		return nil
	})
	if err != nil && !errors.Is(err, errTorn) {
		return err
	}
	if errors.Is(err, errTorn) {
		info, statErr := l.file.Stat()
		if statErr != nil {
			return statErr
		}
		l.cfg.Logger.Printf("wal: trimming %d torn bytes from %s", info.Size()-valid, l.path)
		if err := l.file.Truncate(valid); err != nil {
			return err
		}
	}
	_, err = l.file.Seek(0, io.SeekEnd)
	return err
}

// scan reads every complete frame in path, returning the byte offset
// just past the last good one. A missing file scans as empty.
func scan(path string, fn func(payload []byte, rec *Record) error) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var (
		valid   int64
		lastSeq uint64
	)
	for {
		payload, err := readFrame(r)
		if err == io.EOF {
			return valid, nil
		}
		if err != nil {
			return valid, err
		}
		rec, err := decodeRecord(payload)
		if err != nil {
			return valid, err
		}
		if rec.Seq <= lastSeq {
			return valid, errors.Wrapf(ErrCorrupt, "non-monotonic seq %d after %d", rec.Seq, lastSeq)
		}
		lastSeq = rec.Seq
		if err := fn(payload, rec); err != nil {
			return valid, err
		}
		valid += int64(frameHeaderSize + len(payload))
	}
}
