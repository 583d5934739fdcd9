package vector

import "github.com/cockroachdb/errors"

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, outOfRange(i, v.length)
	}
	return v.buf[i], nil
}

// Index returns the element at index i and panics with an error wrapping
// ErrOutOfRange when i is outside [0, Len()). It is At for callers that
// treat a bad index as a programming error.
func (v *Vector[T]) Index(i int) T {
	x, err := v.At(i)
	if err != nil {
		panic(err)
	}
	return x
}

// Ref returns a pointer to the slot at index i. The pointer is valid
// until the next call that mutates v.
func (v *Vector[T]) Ref(i int) (*T, error) {
	if i < 0 || i >= v.length {
		return nil, outOfRange(i, v.length)
	}
	return &v.buf[i], nil
}

// Set replaces the element at index i with a copy of x, destroying the
// previous element.
func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= v.length {
		return outOfRange(i, v.length)
	}
	c, err := v.copyIn(x)
	if err != nil {
		return errors.Wrapf(err, "copy element %d", i)
	}
	if v.dispose != nil {
		v.dispose(v.buf[i])
	}
	v.buf[i] = c
	return nil
}

func (v *Vector[T]) Front() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, errors.Wrap(ErrEmpty, "front")
	}
	return v.buf[0], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, errors.Wrap(ErrEmpty, "back")
	}
	return v.buf[v.length-1], nil
}

// Data returns the live elements as a slice sharing v's buffer, or nil
// when v has no buffer. The slice is capped at Len() so appending to it
// never writes into v's spare slots.
func (v *Vector[T]) Data() []T {
	if v.buf == nil {
		return nil
	}
	return v.buf[:v.length:v.length]
}
