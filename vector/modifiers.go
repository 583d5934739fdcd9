package vector

import "github.com/cockroachdb/errors"

// Clear destroys every element. The capacity is kept.
func (v *Vector[T]) Clear() {
	v.destroy(0, v.length)
	v.length = 0
}

// PushBack appends a copy of x, doubling the capacity when full.
func (v *Vector[T]) PushBack(x T) error {
	c, err := v.copyIn(x)
	if err != nil {
		return errors.Wrap(err, "push back")
	}
	if v.length == len(v.buf) {
		if err := v.grow(); err != nil {
			v.discard(c)
			return err
		}
	}
	v.buf[v.length] = c
	v.length++
	return nil
}

// PopBack destroys the last element.
func (v *Vector[T]) PopBack() error {
	if v.length == 0 {
		return errors.Wrap(ErrEmpty, "pop back")
	}
	v.destroy(v.length-1, v.length)
	v.length--
	return nil
}

// Insert places a copy of x before position pos, shifting [pos, Len())
// one slot right, and returns pos. pos == Len() appends.
//
// If the insert reallocates, every slice from Data and pointer from Ref
// obtained earlier refers to the old buffer.
func (v *Vector[T]) Insert(pos int, x T) (int, error) {
	if pos < 0 || pos > v.length {
		return 0, errors.Wrapf(ErrInvalidPosition, "insert at %d, length %d", pos, v.length)
	}
	c, err := v.copyIn(x)
	if err != nil {
		return 0, errors.Wrapf(err, "insert at %d", pos)
	}
	if v.length == len(v.buf) {
		if err := v.grow(); err != nil {
			v.discard(c)
			return 0, err
		}
	}
	copy(v.buf[pos+1:v.length+1], v.buf[pos:v.length])
	v.buf[pos] = c
	v.length++
	return pos, nil
}

// Erase removes the element at pos. The survivors are copied into a new
// buffer of exactly Len()-1 slots, so Cap() == Len() afterwards.
func (v *Vector[T]) Erase(pos int) error {
	if pos < 0 || pos >= v.length {
		return errors.Wrapf(ErrInvalidPosition, "erase at %d, length %d", pos, v.length)
	}
	next, err := v.allocator().Allocate(v.length - 1)
	if err != nil {
		return errors.Wrapf(err, "erase at %d", pos)
	}
	copy(next, v.buf[:pos])
	copy(next[pos:], v.buf[pos+1:v.length])
	if v.dispose != nil {
		v.dispose(v.buf[pos])
	}
	v.releaseBuf()
	v.buf = next
	v.length--
	return nil
}

// Resize sets Len() to n, appending zero values or destroying trailing
// elements as needed.
func (v *Vector[T]) Resize(n int) error {
	var zero T
	return v.resize(n, zero, false)
}

// ResizeFill is Resize with new slots holding copies of fill.
func (v *Vector[T]) ResizeFill(n int, fill T) error {
	return v.resize(n, fill, true)
}

func (v *Vector[T]) resize(n int, fill T, copyFill bool) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidPosition, "resize to %d", n)
	}
	if n <= v.length {
		v.destroy(n, v.length)
		v.length = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if copyFill {
		for i := v.length; i < n; i++ {
			c, err := v.copyIn(fill)
			if err != nil {
				v.destroy(v.length, i)
				return errors.Wrapf(err, "copy fill into slot %d", i)
			}
			v.buf[i] = c
		}
	}
	v.length = n
	return nil
}

// InsertMany inserts values before pos in order and returns the position
// just past the last one inserted. Each value is a separate Insert, so a
// failure part way leaves the earlier values in place; the returned
// position then tells how far it got.
func (v *Vector[T]) InsertMany(pos int, values []T) (int, error) {
	if pos < 0 || pos > v.length {
		return pos, errors.Wrapf(ErrInvalidPosition, "insert at %d, length %d", pos, v.length)
	}
	for _, x := range values {
		p, err := v.Insert(pos, x)
		if err != nil {
			return pos, err
		}
		pos = p + 1
	}
	return pos, nil
}

// InsertManyBack appends values in order.
func (v *Vector[T]) InsertManyBack(values []T) error {
	for _, x := range values {
		if err := v.PushBack(x); err != nil {
			return err
		}
	}
	return nil
}
