package vector

import (
	"github.com/cockroachdb/errors"

	"dynarray/memory"
)

func (v *Vector[T]) Empty() bool { return v.length == 0 }

func (v *Vector[T]) Len() int { return v.length }

func (v *Vector[T]) Cap() int { return len(v.buf) }

// MaxSize is the largest element count representable for T. It says
// nothing about how much memory is actually available.
func (v *Vector[T]) MaxSize() int { return memory.MaxSlots[T]() }

// Reserve grows the capacity to exactly n when n exceeds Cap(). It never
// shrinks and never changes Len().
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	if n > v.MaxSize() {
		return errors.Wrapf(ErrAllocation, "reserve %d exceeds max size %d", n, v.MaxSize())
	}
	return v.relocate(n)
}

// ShrinkToFit reduces the capacity to Len(), releasing the buffer
// entirely when v is empty.
func (v *Vector[T]) ShrinkToFit() error {
	if len(v.buf) == v.length {
		return nil
	}
	if v.length == 0 {
		v.releaseBuf()
		return nil
	}
	return v.relocate(v.length)
}

// grow doubles the capacity, starting from 1.
func (v *Vector[T]) grow() error {
	limit := v.MaxSize()
	c := len(v.buf)
	switch {
	case c == 0:
		return v.relocate(1)
	case c >= limit:
		return errors.Wrapf(ErrAllocation, "capacity %d already at max size", c)
	case c > limit/2:
		return v.relocate(limit)
	default:
		return v.relocate(c * 2)
	}
}

// relocate moves the live elements into a fresh buffer of n >= Len()
// slots. The new buffer is acquired before the old one is touched, so a
// failure leaves v unchanged.
func (v *Vector[T]) relocate(n int) error {
	next, err := v.allocator().Allocate(n)
	if err != nil {
		return errors.Wrapf(err, "relocate %d elements to %d slots", v.length, n)
	}
	copy(next, v.buf[:v.length])
	v.releaseBuf()
	v.buf = next
	return nil
}
