// Package filter provides a moving average over a fixed window.
package filter

import "golang.org/x/exp/constraints"

// Number is a sample type accepted by Filter.
type Number interface {
	constraints.Integer | constraints.Float
}

// Filter is a moving average over the last Size samples. The window starts
// zero filled, so the first Size-1 results are pulled towards zero.
//
// Begin must be called before Filter.
type Filter[T Number] struct {
	size   int
	buf    []T
	cursor int
	sum    T
}

// New creates a Filter with the given window size. Sizes below 1 are
// treated as 1.
func New[T Number](size int) *Filter[T] {
	if size < 1 {
		size = 1
	}
	return &Filter[T]{size: size}
}

// Begin allocates the window and clears all state. Calling it again
// restarts the filter.
func (f *Filter[T]) Begin() {
	if f.buf == nil {
		f.buf = make([]T, f.size)
	} else {
		for i := range f.buf {
			f.buf[i] = 0
		}
	}
	f.cursor, f.sum = 0, 0
}

// Filter adds a sample and returns the average of the window. Integer
// samples use integer division. It panics if Begin was never called.
func (f *Filter[T]) Filter(sample T) T {
	if f.buf == nil {
		panic("filter: Filter called before Begin")
	}
	f.sum -= f.buf[f.cursor]
	f.buf[f.cursor] = sample
	f.sum += sample
	f.cursor++
	if f.cursor >= f.size {
		f.cursor = 0
	}
	return f.sum / T(f.size)
}

// Value returns the current average without adding a sample.
func (f *Filter[T]) Value() T {
	if f.buf == nil {
		return 0
	}
	return f.sum / T(f.size)
}

// Size returns the window size.
func (f *Filter[T]) Size() int {
	return f.size
}
