package buffer

import (
	"iter"
	"slices"
)

// PushBackSlice appends values in order. An empty ring that is too small
// takes a copy of values as its storage instead of growing first.
func (rb *RingBuffer[T]) PushBackSlice(values []T) {
	n := len(values)
	if n == 0 {
		return
	}
	if rb.size == 0 && len(rb.buf) < n {
		rb.buf = slices.Clone(values)
		rb.head = 0
		rb.size = n
		return
	}
	rb.grow(rb.size + n)
	dst1, dst2 := rb.spans(rb.size, n)
	copySegments(dst1, dst2, values, nil)
	rb.size += n
}

// PushBackRing appends the elements of src in order. src may be rb itself.
// An empty ring that is too small takes a copy of src's storage and head.
func (rb *RingBuffer[T]) PushBackRing(src *RingBuffer[T]) {
	n := src.size
	if n == 0 {
		return
	}
	if rb.size == 0 && len(rb.buf) < n {
		rb.buf = slices.Clone(src.buf)
		rb.head = src.head
		rb.size = n
		return
	}
	rb.grow(rb.size + n)
	// Both sides may wrap, which costs at most four contiguous copies. The
	// source spans are taken after growing in case src == rb.
	dst1, dst2 := rb.spans(rb.size, n)
	src1, src2 := src.spans(0, n)
	copySegments(dst1, dst2, src1, src2)
	rb.size += n
}

// PushBackSeq appends every value yielded by seq.
func (rb *RingBuffer[T]) PushBackSeq(seq iter.Seq[T]) {
	for v := range seq {
		rb.PushBack(v)
	}
}

// Insert places v at logical position i, 0 <= i <= Len(). Whichever side of i
// holds fewer elements is shifted by one slot; on a tie the front side moves
// toward the head.
func (rb *RingBuffer[T]) Insert(i int, v T) error {
	if i < 0 || i > rb.size {
		return indexError("insert", i, rb.size)
	}
	if rb.size == len(rb.buf) {
		rb.grow(rb.size + 1)
	}
	if i <= rb.size-i {
		if rb.head == 0 {
			rb.head = len(rb.buf)
		}
		rb.head--
		// The old [0, i) sits one slot past the new head.
		rb.shiftDown(1, i)
	} else {
		rb.shiftUp(i, rb.size-i)
	}
	rb.buf[rb.phys(i)] = v
	rb.size++
	return nil
}

// RemoveAt removes and returns the element at logical position i, shifting
// whichever side of i holds fewer elements.
func (rb *RingBuffer[T]) RemoveAt(i int) (T, error) {
	if i < 0 || i >= rb.size {
		var zero T
		return zero, indexError("remove", i, rb.size)
	}
	v := rb.buf[rb.phys(i)]
	switch {
	case i == 0:
		rb.RemoveFront(1)
	case i == rb.size-1:
		rb.RemoveBack(1)
	case i < rb.size-1-i:
		rb.shiftUp(0, i)
		rb.head = rb.phys(1)
		rb.size--
	default:
		rb.shiftDown(i+1, rb.size-1-i)
		rb.size--
	}
	return v, nil
}

// shiftDown moves logical [off, off+n) one slot toward the head. The slot
// just before off must be free. n must be less than Cap().
func (rb *RingBuffer[T]) shiftDown(off, n int) {
	if n == 0 {
		return
	}
	c := len(rb.buf)
	start := rb.phys(off)
	end := start + n
	switch {
	case start == 0:
		rb.buf[c-1] = rb.buf[0]
		copy(rb.buf, rb.buf[1:n])
	case end <= c:
		copy(rb.buf[start-1:], rb.buf[start:end])
	default:
		copy(rb.buf[start-1:], rb.buf[start:c])
		rb.buf[c-1] = rb.buf[0]
		copy(rb.buf, rb.buf[1:end-c])
	}
}

// shiftUp moves logical [off, off+n) one slot toward the tail. The slot just
// after the range must be free. n must be less than Cap().
func (rb *RingBuffer[T]) shiftUp(off, n int) {
	if n == 0 {
		return
	}
	c := len(rb.buf)
	start := rb.phys(off)
	end := start + n
	switch {
	case end < c:
		copy(rb.buf[start+1:], rb.buf[start:end])
	case end == c:
		rb.buf[0] = rb.buf[c-1]
		copy(rb.buf[start+1:], rb.buf[start:c-1])
	default:
		copy(rb.buf[1:], rb.buf[:end-c])
		rb.buf[0] = rb.buf[c-1]
		copy(rb.buf[start+1:], rb.buf[start:c-1])
	}
}
