package wal

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/cockroachdb/errors"
)

// frame: [len:4][crc:4][payload], little endian
const frameHeaderSize = 8

// maxFrameSize bounds the length field so a corrupt header cannot force
// a huge allocation.
const maxFrameSize = 64 << 20

var (
	// ErrCorrupt indicates a record that fails its checksum or does not
	// decode.
	ErrCorrupt = errors.New("wal: corrupted record")

	// ErrClosed is returned by operations on a closed journal.
	ErrClosed = errors.New("wal: closed")

	errTorn = errors.New("wal: torn frame")
)

func writeFrame(wr io.Writer, payload []byte) error {
	var header [frameHeaderSize]byte
	binary.LittleEndian.PutUint32(header[:4], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[4:], crc32.ChecksumIEEE(payload))
	if _, err := wr.Write(header[:]); err != nil {
		return err
	}
	_, err := wr.Write(payload)
	return err
}

// readFrame returns the next payload, io.EOF at a clean end, errTorn for
// an incomplete trailing frame and ErrCorrupt on checksum mismatch.
func readFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errTorn
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(header[:4])
	if n > maxFrameSize {
		return nil, errors.Wrapf(ErrCorrupt, "frame length %d", n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errTorn
		}
		return nil, err
	}
	if crc32.ChecksumIEEE(payload) != binary.LittleEndian.Uint32(header[4:]) {
		return nil, errors.Wrap(ErrCorrupt, "crc mismatch")
	}
	return payload, nil
}
