package vector

import "iter"

// Begin is the index of the first element.
func (v *Vector[T]) Begin() int { return 0 }

// End is one past the last element, Begin()+Len().
func (v *Vector[T]) End() int { return v.Begin() + v.length }

// All yields index/element pairs over the live range.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Values yields the live elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// Backward yields index/element pairs from the last element to the first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.length - 1; i >= 0; i-- {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}
