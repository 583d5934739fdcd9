package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrNotFound is returned when no snapshot exists under a name.
	ErrNotFound = errors.New("snapshot: not found")

	// ErrCorrupt is returned when stored data does not decode or does not
	// match its meta record.
	ErrCorrupt = errors.New("snapshot: corrupt")

	// ErrInvalidName is returned for empty names or names containing '/'.
	ErrInvalidName = errors.New("snapshot: invalid name")
)

// Meta describes a stored snapshot.
type Meta struct {
	Name    string
	Seq     uint64
	Length  int
	Created time.Time
}

// meta wire fields
const (
	metaSeq     protowire.Number = 1
	metaLength  protowire.Number = 2
	metaCreated protowire.Number = 3
)

func encodeMeta(m Meta) []byte {
	var b []byte
	b = protowire.AppendTag(b, metaSeq, protowire.VarintType)
	b = protowire.AppendVarint(b, m.Seq)
	b = protowire.AppendTag(b, metaLength, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Length))
	b = protowire.AppendTag(b, metaCreated, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Created.UnixNano()))
	return b
}

func decodeMeta(name string, b []byte) (Meta, error) {
	m := Meta{Name: name}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Meta{}, errors.Wrapf(ErrCorrupt, "meta %q: %v", name, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Meta{}, errors.Wrapf(ErrCorrupt, "meta %q: %v", name, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return Meta{}, errors.Wrapf(ErrCorrupt, "meta %q: %v", name, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case metaSeq:
			m.Seq = v
		case metaLength:
			if int(v) < 0 {
				return Meta{}, errors.Wrapf(ErrCorrupt, "meta %q: length %d", name, v)
			}
			m.Length = int(v)
		case metaCreated:
			m.Created = time.Unix(0, int64(v))
		}
	}
	return m, nil
}

// -------------------- Keys --------------------

func validName(name string) error {
	if name == "" || strings.ContainsRune(name, '/') {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

func indexKey(name string) []byte { return []byte("idx/" + name) }

func namePrefix(name string) []byte { return []byte("vec/" + name + "/") }

func metaKey(name string) []byte { return []byte("vec/" + name + "/m") }

func elemPrefix(name string) []byte { return []byte("vec/" + name + "/e/") }

func elemKey(name string, i int) []byte {
	return []byte(fmt.Sprintf("vec/%s/e/%020d", name, i))
}

// upperBound returns the smallest key greater than every key with prefix.
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}
