// Package codec encodes vector elements and whole vectors to bytes using
// the protobuf wire format.
package codec

import (
	"math"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

// ErrMalformed is returned when input bytes are not a valid encoding.
var ErrMalformed = errors.New("codec: malformed input")

// Codec converts single values of T to and from bytes.
type Codec[T any] interface {
	Marshal(T) ([]byte, error)
	Unmarshal([]byte) (T, error)
}

// Int64 encodes as a zigzag varint.
type Int64 struct{}

func (Int64) Marshal(v int64) ([]byte, error) {
	return protowire.AppendVarint(nil, protowire.EncodeZigZag(v)), nil
}

func (Int64) Unmarshal(b []byte) (int64, error) {
	x, err := consumeVarint(b)
	if err != nil {
		return 0, err
	}
	return protowire.DecodeZigZag(x), nil
}

// Uint64 encodes as a plain varint.
type Uint64 struct{}

func (Uint64) Marshal(v uint64) ([]byte, error) {
	return protowire.AppendVarint(nil, v), nil
}

func (Uint64) Unmarshal(b []byte) (uint64, error) {
	return consumeVarint(b)
}

// Float64 encodes the IEEE 754 bits as fixed64.
type Float64 struct{}

func (Float64) Marshal(v float64) ([]byte, error) {
	return protowire.AppendFixed64(nil, math.Float64bits(v)), nil
}

func (Float64) Unmarshal(b []byte) (float64, error) {
	x, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
	}
	if n != len(b) {
		return 0, errors.Wrapf(ErrMalformed, "%d trailing bytes", len(b)-n)
	}
	return math.Float64frombits(x), nil
}

// String stores the raw UTF-8 bytes.
type String struct{}

func (String) Marshal(v string) ([]byte, error) { return []byte(v), nil }

func (String) Unmarshal(b []byte) (string, error) { return string(b), nil }

// Bytes stores a copy of the slice.
type Bytes struct{}

func (Bytes) Marshal(v []byte) ([]byte, error) { return append([]byte(nil), v...), nil }

func (Bytes) Unmarshal(b []byte) ([]byte, error) { return append([]byte(nil), b...), nil }

// Proto encodes protobuf messages. New must return a fresh, empty M.
type Proto[M proto.Message] struct {
	New func() M
}

func (Proto[M]) Marshal(m M) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(m)
}

func (c Proto[M]) Unmarshal(b []byte) (M, error) {
	m := c.New()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero M
		return zero, errors.Wrap(ErrMalformed, err.Error())
	}
	return m, nil
}

func consumeVarint(b []byte) (uint64, error) {
	x, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
	}
	if n != len(b) {
		return 0, errors.Wrapf(ErrMalformed, "%d trailing bytes", len(b)-n)
	}
	return x, nil
}
