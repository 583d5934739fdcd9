package wal

import (
	"time"

	"github.com/cockroachdb/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// -------------------- Op --------------------

// Op is the vector mutation a record describes.
type Op uint8

const (
	OpPushBack Op = iota + 1
	OpPopBack
	OpInsert
	OpErase
	OpClear
	OpResize
	OpResizeFill
	OpSet
)

func (o Op) String() string {
	switch o {
	case OpPushBack:
		return "PUSH_BACK"
	case OpPopBack:
		return "POP_BACK"
	case OpInsert:
		return "INSERT"
	case OpErase:
		return "ERASE"
	case OpClear:
		return "CLEAR"
	case OpResize:
		return "RESIZE"
	case OpResizeFill:
		return "RESIZE_FILL"
	case OpSet:
		return "SET"
	default:
		return "UNKNOWN"
	}
}

func (o Op) carriesValue() bool {
	return o == OpPushBack || o == OpInsert || o == OpResizeFill || o == OpSet
}

// -------------------- Record --------------------

// Record is one journaled mutation. Pos is the position for Insert, Erase
// and Set and the new length for Resize; Value is the encoded element for
// PushBack, Insert, Set and ResizeFill.
type Record struct {
	Seq   uint64
	Time  int64
	Op    Op
	Pos   int
	Value []byte
}

func NewRecord(op Op, pos int, value []byte) *Record {
	return &Record{
		Op:    op,
		Pos:   pos,
		Value: value,
		Time:  time.Now().UnixNano(),
	}
}

const (
	fieldSeq   protowire.Number = 1
	fieldTime  protowire.Number = 2
	fieldOp    protowire.Number = 3
	fieldPos   protowire.Number = 4
	fieldValue protowire.Number = 5
)

func encodeRecord(r *Record) []byte {
	b := make([]byte, 0, 32+len(r.Value))
	b = protowire.AppendTag(b, fieldSeq, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Seq)
	b = protowire.AppendTag(b, fieldTime, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Time))
	b = protowire.AppendTag(b, fieldOp, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Op))
	b = protowire.AppendTag(b, fieldPos, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Pos))
	if r.Value != nil || r.Op.carriesValue() {
		b = protowire.AppendTag(b, fieldValue, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Value)
	}
	return b
}

func decodeRecord(b []byte) (*Record, error) {
	r := &Record{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(ErrCorrupt, protowire.ParseError(n).Error())
		}
		b = b[n:]
		switch {
		case num == fieldValue && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(ErrCorrupt, protowire.ParseError(n).Error())
			}
			r.Value = append([]byte{}, v...)
			b = b[n:]
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.Wrap(ErrCorrupt, protowire.ParseError(n).Error())
			}
			b = b[n:]
			switch num {
			case fieldSeq:
				r.Seq = v
			case fieldTime:
				r.Time = int64(v)
			case fieldOp:
				r.Op = Op(v)
			case fieldPos:
				r.Pos = int(v)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrap(ErrCorrupt, protowire.ParseError(n).Error())
			}
			b = b[n:]
		}
	}
	return r, nil
}
