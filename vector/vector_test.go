package vector

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"dynarray/memory"
)

var errCopy = errors.New("copy refused")

func assertContents[T any](t *testing.T, v *Vector[T], want ...T) {
	t.Helper()
	if diff := cmp.Diff(want, v.Data(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("contents mismatch (-want +got):\n%s", diff)
	}
	if v.Len() != len(want) {
		t.Fatalf("expected len %d, got %d", len(want), v.Len())
	}
}

func mustFrom[T any](t *testing.T, values []T, opts ...Option[T]) *Vector[T] {
	t.Helper()
	v, err := From(values, opts...)
	if err != nil {
		t.Fatalf("from: %v", err)
	}
	return v
}

// failAfter returns a copier that succeeds n times, then fails.
func failAfter[T any](n int) func(T) (T, error) {
	calls := 0
	return func(x T) (T, error) {
		calls++
		if calls > n {
			var zero T
			return zero, errCopy
		}
		return x, nil
	}
}

type disposed[T any] struct {
	got []T
}

func (d *disposed[T]) fn(x T) { d.got = append(d.got, x) }

func TestNewIsEmpty(t *testing.T) {
	v := New[int]()
	if !v.Empty() || v.Len() != 0 || v.Cap() != 0 {
		t.Fatalf("expected empty vector, got len=%d cap=%d", v.Len(), v.Cap())
	}
	if v.Data() != nil {
		t.Error("expected nil data without a buffer")
	}
}

func TestZeroValueUsable(t *testing.T) {
	var v Vector[string]
	if err := v.PushBack("a"); err != nil {
		t.Fatalf("push back: %v", err)
	}
	assertContents(t, &v, "a")
}

func TestNewSized(t *testing.T) {
	v, err := NewSized[int](4)
	if err != nil {
		t.Fatalf("new sized: %v", err)
	}
	if v.Cap() != 4 {
		t.Errorf("expected cap 4, got %d", v.Cap())
	}
	assertContents(t, v, 0, 0, 0, 0)

	if _, err := NewSized[int](-1); !errors.Is(err, ErrAllocation) {
		t.Errorf("expected ErrAllocation for negative size, got %v", err)
	}
}

func TestFromCopiesValues(t *testing.T) {
	src := []int{5, 6, 7}
	v := mustFrom(t, src)
	src[0] = 99

	if v.Cap() != 3 {
		t.Errorf("expected cap 3, got %d", v.Cap())
	}
	assertContents(t, v, 5, 6, 7)
}

func TestFromCopierFailureDisposesPartial(t *testing.T) {
	var d disposed[int]
	_, err := From([]int{1, 2, 3}, WithCopier(failAfter[int](2)), WithDisposer(d.fn))
	if !errors.Is(err, errCopy) {
		t.Fatalf("expected copier error, got %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, d.got); diff != "" {
		t.Errorf("partial copies not disposed (-want +got):\n%s", diff)
	}
}

func TestAtAndIndexAgree(t *testing.T) {
	v := mustFrom(t, []int{10, 20, 30})
	for i := 0; i < v.Len(); i++ {
		got, err := v.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if idx := v.Index(i); idx != got {
			t.Errorf("At(%d)=%d, Index(%d)=%d", i, got, i, idx)
		}
	}
}

func TestAccessOutOfRange(t *testing.T) {
	v := mustFrom(t, []int{1, 2, 3})

	for _, i := range []int{-1, 3, 100} {
		t.Run(fmt.Sprintf("index %d", i), func(t *testing.T) {
			if _, err := v.At(i); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("At: expected ErrOutOfRange, got %v", err)
			}
			if _, err := v.Ref(i); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Ref: expected ErrOutOfRange, got %v", err)
			}
			if err := v.Set(i, 0); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Set: expected ErrOutOfRange, got %v", err)
			}

			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrOutOfRange) {
					t.Errorf("Index: expected panic with ErrOutOfRange, got %v", r)
				}
			}()
			v.Index(i)
		})
	}
}

func TestFrontBack(t *testing.T) {
	v := New[int]()
	if _, err := v.Front(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Front: expected ErrEmpty, got %v", err)
	}
	if _, err := v.Back(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Back: expected ErrEmpty, got %v", err)
	}

	v = mustFrom(t, []int{4, 5, 6})
	if f, _ := v.Front(); f != 4 {
		t.Errorf("expected front 4, got %d", f)
	}
	if b, _ := v.Back(); b != 6 {
		t.Errorf("expected back 6, got %d", b)
	}
}

func TestSetAndRef(t *testing.T) {
	var d disposed[int]
	v := mustFrom(t, []int{1, 2, 3}, WithDisposer(d.fn))

	if err := v.Set(1, 20); err != nil {
		t.Fatalf("set: %v", err)
	}
	p, err := v.Ref(2)
	if err != nil {
		t.Fatalf("ref: %v", err)
	}
	*p = 30

	assertContents(t, v, 1, 20, 30)
	if diff := cmp.Diff([]int{2}, d.got); diff != "" {
		t.Errorf("replaced element not disposed (-want +got):\n%s", diff)
	}
}

func TestDataIsCapped(t *testing.T) {
	v := mustFrom(t, []int{1, 2})
	if err := v.Reserve(8); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	d := append(v.Data(), 3)
	d[0] = 100
	if x, _ := v.At(0); x != 1 {
		t.Error("append to Data() wrote into the vector's buffer")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := mustFrom(t, []int{1, 2, 3})
	if err := orig.Reserve(10); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	c, err := orig.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if c.Cap() != orig.Cap() {
		t.Errorf("expected clone cap %d, got %d", orig.Cap(), c.Cap())
	}

	_ = c.Set(0, 100)
	_ = c.PushBack(4)
	assertContents(t, orig, 1, 2, 3)
	assertContents(t, c, 100, 2, 3, 4)
}

func TestCloneUsesCopier(t *testing.T) {
	clone := func(s []int) ([]int, error) { return append([]int(nil), s...), nil }
	orig := mustFrom(t, [][]int{{1}, {2}}, WithCopier(clone))

	c, err := orig.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	p, _ := c.Ref(0)
	(*p)[0] = 100

	if x, _ := orig.At(0); x[0] != 1 {
		t.Error("clone shares element storage with the source")
	}
}

func TestMoveLeavesSourceEmpty(t *testing.T) {
	src := mustFrom(t, []int{1, 2, 3})
	dst := src.Move()

	if src.Len() != 0 || src.Cap() != 0 || src.Data() != nil {
		t.Fatalf("expected empty source, got len=%d cap=%d", src.Len(), src.Cap())
	}
	assertContents(t, dst, 1, 2, 3)

	if err := src.PushBack(9); err != nil {
		t.Fatalf("moved-from vector unusable: %v", err)
	}
	assertContents(t, src, 9)
	assertContents(t, dst, 1, 2, 3)
}

func TestAssign(t *testing.T) {
	var d disposed[int]
	dst := mustFrom(t, []int{7, 8}, WithDisposer(d.fn))
	src := mustFrom(t, []int{1, 2, 3})

	if err := dst.Assign(src); err != nil {
		t.Fatalf("assign: %v", err)
	}
	assertContents(t, dst, 1, 2, 3)
	if diff := cmp.Diff([]int{7, 8}, d.got); diff != "" {
		t.Errorf("old elements not disposed (-want +got):\n%s", diff)
	}

	_ = src.Set(0, 100)
	assertContents(t, dst, 1, 2, 3)

	if err := dst.Assign(dst); err != nil {
		t.Fatalf("self assign: %v", err)
	}
	assertContents(t, dst, 1, 2, 3)
}

func TestAssignFailureLeavesReceiver(t *testing.T) {
	dst := mustFrom(t, []int{7, 8}, WithCopier(failAfter[int](3)))
	src := mustFrom(t, []int{1, 2, 3})

	if err := dst.Assign(src); !errors.Is(err, errCopy) {
		t.Fatalf("expected copier error, got %v", err)
	}
	assertContents(t, dst, 7, 8)
	if dst.Cap() != 2 {
		t.Errorf("expected cap 2, got %d", dst.Cap())
	}
}

func TestMoveFrom(t *testing.T) {
	var d disposed[int]
	dst := mustFrom(t, []int{7}, WithDisposer(d.fn))
	src := mustFrom(t, []int{1, 2})

	dst.MoveFrom(src)
	assertContents(t, dst, 1, 2)
	assertContents(t, src)
	if src.Cap() != 0 {
		t.Errorf("expected source cap 0, got %d", src.Cap())
	}
	if diff := cmp.Diff([]int{7}, d.got); diff != "" {
		t.Errorf("old elements not disposed (-want +got):\n%s", diff)
	}

	dst.MoveFrom(dst)
	assertContents(t, dst, 1, 2)
}

func TestSwap(t *testing.T) {
	a := mustFrom(t, []int{1, 2, 3})
	b := New[int]()

	a.Swap(b)
	assertContents(t, a)
	assertContents(t, b, 1, 2, 3)
	if a.Cap() != 0 || b.Cap() != 3 {
		t.Errorf("capacities not swapped: a=%d b=%d", a.Cap(), b.Cap())
	}

	b.Swap(b)
	assertContents(t, b, 1, 2, 3)
}

func TestReleaseReturnsBuffer(t *testing.T) {
	lim := memory.NewLimit[int](nil, 16)
	var d disposed[int]
	v := mustFrom(t, []int{1, 2, 3}, WithAllocator[int](lim), WithDisposer(d.fn))
	if err := v.Reserve(8); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if lim.InUse() != 8 {
		t.Fatalf("expected 8 slots in use, got %d", lim.InUse())
	}

	v.Release()
	if lim.InUse() != 0 {
		t.Errorf("expected all slots released, got %d in use", lim.InUse())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, d.got); diff != "" {
		t.Errorf("live elements not disposed (-want +got):\n%s", diff)
	}
	assertContents(t, v)
}

func TestIteration(t *testing.T) {
	v := mustFrom(t, []string{"a", "b", "c"})

	if v.Begin() != 0 || v.End() != v.Begin()+v.Len() {
		t.Fatalf("expected [0,%d), got [%d,%d)", v.Len(), v.Begin(), v.End())
	}

	var fwd []string
	for i, s := range v.All() {
		if i != len(fwd) {
			t.Fatalf("unexpected index %d", i)
		}
		fwd = append(fwd, s)
	}
	var back []string
	for _, s := range v.Backward() {
		back = append(back, s)
	}
	var first []string
	for s := range v.Values() {
		first = append(first, s)
		break
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, fwd); diff != "" {
		t.Errorf("All (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, back); diff != "" {
		t.Errorf("Backward (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, first); diff != "" {
		t.Errorf("Values early stop (-want +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	v := mustFrom(t, []int{1, 2, 3})
	_ = v.Reserve(10)
	if got := v.String(); got != "[1 2 3]" {
		t.Errorf("expected [1 2 3], got %q", got)
	}
	if got := New[int]().String(); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}
