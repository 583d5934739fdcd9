package vector

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"dynarray/memory"
)

// Vector is a generic dynamic array. The zero value is an empty vector
// backed by the heap allocator, ready to use.
type Vector[T any] struct {
	buf    []T // len(buf) == capacity
	length int

	alloc   memory.Allocator[T]
	copyFn  func(T) (T, error)
	dispose func(T)
}

// Option configures a Vector at construction.
type Option[T any] func(*Vector[T])

// WithAllocator sets the allocator backing the vector's buffer.
func WithAllocator[T any](a memory.Allocator[T]) Option[T] {
	return func(v *Vector[T]) { v.alloc = a }
}

// WithCopier sets how values are copied into the vector. Use it when T
// holds references that must not be shared between copies.
func WithCopier[T any](fn func(T) (T, error)) Option[T] {
	return func(v *Vector[T]) { v.copyFn = fn }
}

// WithDisposer sets a hook run on every element the vector destroys.
func WithDisposer[T any](fn func(T)) Option[T] {
	return func(v *Vector[T]) { v.dispose = fn }
}

// New returns an empty vector. It does not allocate a buffer.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewSized returns a vector of n zero-valued elements with capacity n.
func NewSized[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	buf, err := v.allocator().Allocate(n)
	if err != nil {
		return nil, errors.Wrapf(err, "new vector of %d elements", n)
	}
	v.buf, v.length = buf, n
	return v, nil
}

// From returns a vector holding a copy of each value, in order, with
// capacity len(values).
func From[T any](values []T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if err := v.fill(values, len(values)); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns a deep copy with the same capacity and options. The
// receiver is never modified.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := v.emptyLike()
	if err := c.fill(v.buf[:v.length], len(v.buf)); err != nil {
		return nil, err
	}
	return c, nil
}

// Move transfers the buffer to a new vector and leaves v empty with
// zero capacity. It never allocates and never fails.
func (v *Vector[T]) Move() *Vector[T] {
	m := &Vector[T]{}
	*m = *v
	v.buf, v.length = nil, 0
	return m
}

// Assign replaces v's contents with a deep copy of other. The copy is
// built with v's own allocator and copier before anything in v changes,
// so on error v is left as it was.
func (v *Vector[T]) Assign(other *Vector[T]) error {
	if v == other {
		return nil
	}
	tmp := v.emptyLike()
	if err := tmp.fill(other.buf[:other.length], len(other.buf)); err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom takes over other's buffer and options, destroying v's previous
// elements. other is left empty.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	if v == other {
		return
	}
	tmp := other.Move()
	v.Swap(tmp)
	tmp.Release()
}

// Swap exchanges the contents and options of v and other in O(1).
func (v *Vector[T]) Swap(other *Vector[T]) {
	*v, *other = *other, *v
}

// Release destroys every live element and returns the buffer to the
// allocator. v remains usable as an empty vector.
func (v *Vector[T]) Release() {
	v.destroy(0, v.length)
	v.length = 0
	v.releaseBuf()
}

func (v *Vector[T]) String() string {
	return fmt.Sprint(v.buf[:v.length])
}

func (v *Vector[T]) emptyLike() *Vector[T] {
	return &Vector[T]{alloc: v.alloc, copyFn: v.copyFn, dispose: v.dispose}
}

func (v *Vector[T]) allocator() memory.Allocator[T] {
	if v.alloc == nil {
		return memory.Heap[T]{}
	}
	return v.alloc
}

// fill populates an empty v with copies of src in a fresh buffer of
// capacity slots. On failure the copies made so far are destroyed and v
// stays empty.
func (v *Vector[T]) fill(src []T, capacity int) error {
	buf, err := v.allocator().Allocate(capacity)
	if err != nil {
		return errors.Wrapf(err, "allocate %d slots", capacity)
	}
	for i, x := range src {
		c, err := v.copyIn(x)
		if err != nil {
			v.buf, v.length = buf, i
			v.Release()
			return errors.Wrapf(err, "copy element %d", i)
		}
		buf[i] = c
	}
	v.buf, v.length = buf, len(src)
	return nil
}

func (v *Vector[T]) copyIn(x T) (T, error) {
	if v.copyFn == nil {
		return x, nil
	}
	return v.copyFn(x)
}

// discard destroys a value copied in but never placed. Without a copier
// the value still belongs to the caller.
func (v *Vector[T]) discard(x T) {
	if v.copyFn != nil && v.dispose != nil {
		v.dispose(x)
	}
}

// destroy disposes the elements in [lo, hi) and zeroes their slots.
func (v *Vector[T]) destroy(lo, hi int) {
	if v.dispose != nil {
		for i := lo; i < hi; i++ {
			v.dispose(v.buf[i])
		}
	}
	clear(v.buf[lo:hi])
}

// releaseBuf hands the buffer back without disposing; callers have
// already moved or destroyed its elements.
func (v *Vector[T]) releaseBuf() {
	if v.buf == nil {
		return
	}
	clear(v.buf)
	v.allocator().Release(v.buf)
	v.buf = nil
}
