package codec

import (
	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// elementField is the field number each element is stored under; a
// list is a message with one repeated bytes field.
const elementField protowire.Number = 1

// EncodeAll encodes values as repeated bytes field 1, in order.
func EncodeAll[T any](c Codec[T], values []T) ([]byte, error) {
	var out []byte
	for i, v := range values {
		b, err := c.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode element %d", i)
		}
		out = protowire.AppendTag(out, elementField, protowire.BytesType)
		out = protowire.AppendBytes(out, b)
	}
	return out, nil
}

// DecodeAll reverses EncodeAll, calling fn for each element in order.
// Unknown fields are skipped.
func DecodeAll[T any](c Codec[T], b []byte, fn func(T) error) error {
	for i := 0; len(b) > 0; {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
		}
		b = b[n:]
		if num != elementField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
			}
			b = b[n:]
			continue
		}
		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
		}
		b = b[n:]
		v, err := c.Unmarshal(raw)
		if err != nil {
			return errors.Wrapf(err, "decode element %d", i)
		}
		if err := fn(v); err != nil {
			return err
		}
		i++
	}
	return nil
}
