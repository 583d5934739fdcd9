package memory

import (
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Allocator acquires and releases contiguous slot buffers.
//
// Allocate must return a slice with len == cap == n whose slots all hold
// the zero value, or an error wrapping ErrAllocation. Allocate(0) returns
// a nil slice. Release receives a buffer previously returned by Allocate
// on the same allocator; the caller no longer references it afterwards.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Release(buf []T)
}

// MaxSlots is the largest slot count of T addressable without overflow.
// It is a bound on representability, not a promise of available memory.
func MaxSlots[T any]() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// Heap allocates straight from the Go heap.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return makeSlots[T](n)
}

// Release drops the reference; the garbage collector reclaims the buffer.
func (Heap[T]) Release([]T) {}

// makeSlots turns the runtime's "len out of range" panic, raised for
// counts the heap can never satisfy, into ErrAllocation.
func makeSlots[T any](n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = errors.Wrapf(ErrAllocation, "allocate %d slots: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

func checkSlots[T any](n int) error {
	if n < 0 {
		return errors.Wrapf(ErrAllocation, "negative slot count %d", n)
	}
	if n > MaxSlots[T]() {
		return errors.Wrapf(ErrAllocation, "slot count %d exceeds max %d", n, MaxSlots[T]())
	}
	return nil
}

// Limit caps the number of slots outstanding through it at any time.
type Limit[T any] struct {
	next  Allocator[T]
	max   int64
	inUse atomic.Int64
}

// NewLimit wraps next with a budget of maxSlots live slots. A nil next
// means Heap.
func NewLimit[T any](next Allocator[T], maxSlots int) *Limit[T] {
	if next == nil {
		next = Heap[T]{}
	}
	return &Limit[T]{next: next, max: int64(maxSlots)}
}

func (l *Limit[T]) Allocate(n int) ([]T, error) {
	if err := checkSlots[T](n); err != nil {
		return nil, err
	}
	for {
		cur := l.inUse.Load()
		if cur+int64(n) > l.max {
			return nil, errors.Wrapf(ErrAllocation, "budget exhausted: %d in use, %d requested, limit %d", cur, n, l.max)
		}
		if l.inUse.CompareAndSwap(cur, cur+int64(n)) {
			break
		}
	}
	buf, err := l.next.Allocate(n)
	if err != nil {
		l.inUse.Add(-int64(n))
		return nil, err
	}
	return buf, nil
}

func (l *Limit[T]) Release(buf []T) {
	l.inUse.Add(-int64(len(buf)))
	l.next.Release(buf)
}

// InUse reports the slots currently handed out.
func (l *Limit[T]) InUse() int { return int(l.inUse.Load()) }

// Remaining reports how many more slots may be allocated.
func (l *Limit[T]) Remaining() int { return int(l.max - l.inUse.Load()) }
