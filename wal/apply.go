package wal

import (
	"github.com/cockroachdb/errors"

	"dynarray/codec"
	"dynarray/vector"
)

// ErrUnknownOp is returned when a record carries an op this version does
// not know how to apply.
var ErrUnknownOp = errors.New("wal: unknown op")

// Apply performs the mutation rec describes on v.
func Apply[T any](v *vector.Vector[T], rec *Record, c codec.Codec[T]) error {
	switch rec.Op {
	case OpPushBack:
		x, err := c.Unmarshal(rec.Value)
		if err != nil {
			return err
		}
		return v.PushBack(x)
	case OpPopBack:
		return v.PopBack()
	case OpInsert:
		x, err := c.Unmarshal(rec.Value)
		if err != nil {
			return err
		}
		_, err = v.Insert(rec.Pos, x)
		return err
	case OpErase:
		return v.Erase(rec.Pos)
	case OpClear:
		v.Clear()
		return nil
	case OpResize:
		return v.Resize(rec.Pos)
	case OpResizeFill:
		x, err := c.Unmarshal(rec.Value)
		if err != nil {
			return err
		}
		return v.ResizeFill(rec.Pos, x)
	case OpSet:
		x, err := c.Unmarshal(rec.Value)
		if err != nil {
			return err
		}
		return v.Set(rec.Pos, x)
	default:
		return errors.Wrapf(ErrUnknownOp, "%d", rec.Op)
	}
}
