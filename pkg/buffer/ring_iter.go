package buffer

import "iter"

// Iterator is a bidirectional cursor over a RingBuffer. It is a live view,
// not a snapshot: it reads the ring's current state on every step.
//
// Mutating the ring while an Iterator is in use is a precondition violation.
// The values returned afterwards are unspecified, but every step is bounds
// checked against the ring's current length, so the Iterator never reads
// outside the storage.
type Iterator[T any] struct {
	rb  *RingBuffer[T]
	pos int
}

// Iter returns an Iterator positioned before the first element.
func (rb *RingBuffer[T]) Iter() *Iterator[T] {
	return &Iterator[T]{rb: rb}
}

// IterAt returns an Iterator positioned before logical element i. i is
// clamped to [0, Len()].
func (rb *RingBuffer[T]) IterAt(i int) *Iterator[T] {
	return &Iterator[T]{rb: rb, pos: min(max(i, 0), rb.size)}
}

// Index returns the logical position of the element Next would return.
func (it *Iterator[T]) Index() int { return it.pos }

// HasNext reports whether Next would return an element.
func (it *Iterator[T]) HasNext() bool { return it.pos < it.rb.size }

// HasPrev reports whether Prev would return an element.
func (it *Iterator[T]) HasPrev() bool { return it.pos > 0 && it.rb.size > 0 }

// Next returns the element after the cursor and advances past it.
func (it *Iterator[T]) Next() (v T, ok bool) {
	if it.pos >= it.rb.size {
		return v, false
	}
	v = it.rb.buf[it.rb.phys(it.pos)]
	it.pos++
	return v, true
}

// Prev returns the element before the cursor and moves back over it.
func (it *Iterator[T]) Prev() (v T, ok bool) {
	it.pos = min(it.pos, it.rb.size)
	if it.pos <= 0 {
		return v, false
	}
	it.pos--
	return it.rb.buf[it.rb.phys(it.pos)], true
}

// All yields the logical positions and elements from front to back.
func (rb *RingBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < rb.size; i++ {
			if !yield(i, rb.buf[rb.phys(i)]) {
				return
			}
		}
	}
}

// Values yields the elements from front to back.
func (rb *RingBuffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < rb.size; i++ {
			if !yield(rb.buf[rb.phys(i)]) {
				return
			}
		}
	}
}

// Backward yields the logical positions and elements from back to front.
func (rb *RingBuffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := rb.size - 1; i >= 0; i-- {
			if i >= rb.size {
				continue
			}
			if !yield(i, rb.buf[rb.phys(i)]) {
				return
			}
		}
	}
}
