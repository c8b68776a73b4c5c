package buffer

import (
	"fmt"
	"slices"
)

// RingBuffer is a growable circular sequence. Elements live in a fixed-size
// backing slice addressed modulo its length, so pushes and pops at either end
// are O(1) and the buffer only reallocates when it runs out of space.
//
// Logical element i is stored at buf[(head+i) % len(buf)]. When the elements
// do not cross the end of the backing slice the layout is inline; otherwise it
// is wrapped into a tail chunk [head, len(buf)) and a head chunk starting at 0.
//
// RingBuffer is not safe for concurrent use. BlockBuffer, Buffer and
// WindowBuffer wrap it with locking for producer/consumer use.
//
// The zero value is an empty ring with no capacity, ready to use.
type RingBuffer[T any] struct {
	buf  []T
	head int
	size int
}

// Layout describes how the elements of a ring sit in its backing storage.
type Layout int

const (
	// LayoutEmpty means the ring holds no elements.
	LayoutEmpty Layout = iota
	// LayoutInline means the elements form one contiguous run.
	LayoutInline
	// LayoutWrapped means the elements cross the end of the storage.
	LayoutWrapped
)

func (l Layout) String() string {
	switch l {
	case LayoutEmpty:
		return "empty"
	case LayoutInline:
		return "inline"
	case LayoutWrapped:
		return "wrapped"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// RingN creates an empty RingBuffer with the given capacity. It panics if
// capacity is negative, as make does.
func RingN[T any](capacity int) *RingBuffer[T] {
	rb, err := NewRing[T](capacity)
	if err != nil {
		panic(err)
	}
	return rb
}

// NewRing creates an empty RingBuffer with the given capacity.
func NewRing[T any](capacity int) (*RingBuffer[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("buffer: capacity %d: %w", capacity, ErrInvalidArgument)
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}, nil
}

// From creates a full RingBuffer that adopts values as its storage. The
// caller must not use values afterwards.
func From[T any](values []T) *RingBuffer[T] {
	return &RingBuffer[T]{buf: values[:len(values):len(values)], size: len(values)}
}

// Of creates a full RingBuffer holding a copy of values.
func Of[T any](values ...T) *RingBuffer[T] {
	return From(slices.Clone(values))
}

// FromRange creates a full RingBuffer holding a copy of values[start:end].
func FromRange[T any](values []T, start, end int) (*RingBuffer[T], error) {
	if start < 0 || start > end || end > len(values) {
		return nil, rangeError("from range", start, end, len(values))
	}
	return From(slices.Clone(values[start:end])), nil
}

// Wrap adopts storage as the backing slice of a ring whose first element is
// at storage[head] and which holds size elements.
func Wrap[T any](storage []T, head, size int) (*RingBuffer[T], error) {
	if size < 0 || size > len(storage) {
		return nil, indexError("wrap size", size, len(storage))
	}
	if head < 0 || (len(storage) > 0 && head >= len(storage)) || (len(storage) == 0 && head != 0) {
		return nil, indexError("wrap head", head, len(storage))
	}
	return &RingBuffer[T]{buf: storage[:len(storage):len(storage)], head: head, size: size}, nil
}

// Len returns the number of elements in the ring.
func (rb *RingBuffer[T]) Len() int { return rb.size }

// Cap returns the length of the backing storage.
func (rb *RingBuffer[T]) Cap() int { return len(rb.buf) }

// Space returns how many elements can be added before the ring must grow.
func (rb *RingBuffer[T]) Space() int { return len(rb.buf) - rb.size }

// IsEmpty reports whether the ring holds no elements.
func (rb *RingBuffer[T]) IsEmpty() bool { return rb.size == 0 }

// Head returns the storage index of the first element.
func (rb *RingBuffer[T]) Head() int { return rb.head }

// Layout reports whether the elements are stored inline or wrapped.
func (rb *RingBuffer[T]) Layout() Layout {
	switch {
	case rb.size == 0:
		return LayoutEmpty
	case rb.head+rb.size <= len(rb.buf):
		return LayoutInline
	default:
		return LayoutWrapped
	}
}

// phys maps logical position i, 0 <= i <= len(buf), to a storage index.
func (rb *RingBuffer[T]) phys(i int) int {
	j := rb.head + i
	if j >= len(rb.buf) {
		j -= len(rb.buf)
	}
	return j
}

// spans returns the storage chunks holding logical positions [off, off+n).
// The second chunk is non-empty only when the range wraps.
func (rb *RingBuffer[T]) spans(off, n int) (first, second []T) {
	if n == 0 {
		return nil, nil
	}
	start := rb.phys(off)
	if end := start + n; end <= len(rb.buf) {
		return rb.buf[start:end], nil
	}
	return rb.buf[start:], rb.buf[:start+n-len(rb.buf)]
}

// Segments returns the stored elements as at most two contiguous chunks in
// logical order. The chunks alias the ring's storage and are only valid until
// the next mutation.
func (rb *RingBuffer[T]) Segments() (first, second []T) {
	return rb.spans(0, rb.size)
}

// copySegments copies src1+src2 into dst1+dst2 and returns the number of
// elements copied.
func copySegments[T any](dst1, dst2, src1, src2 []T) int {
	n := copy(dst1, src1)
	if n < len(src1) {
		m := copy(dst2, src1[n:])
		return n + m + copy(dst2[m:], src2)
	}
	m := copy(dst1[n:], src2)
	return n + m + copy(dst2, src2[m:])
}

// Front returns the first element.
func (rb *RingBuffer[T]) Front() (T, error) {
	if rb.size == 0 {
		var zero T
		return zero, fmt.Errorf("buffer: front: %w", ErrEmpty)
	}
	return rb.buf[rb.head], nil
}

// Back returns the last element.
func (rb *RingBuffer[T]) Back() (T, error) {
	if rb.size == 0 {
		var zero T
		return zero, fmt.Errorf("buffer: back: %w", ErrEmpty)
	}
	return rb.buf[rb.phys(rb.size-1)], nil
}

// FrontOr returns the first element, or fallback if the ring is empty.
func (rb *RingBuffer[T]) FrontOr(fallback T) T {
	if v, ok := rb.PeekFront(); ok {
		return v
	}
	return fallback
}

// BackOr returns the last element, or fallback if the ring is empty.
func (rb *RingBuffer[T]) BackOr(fallback T) T {
	if v, ok := rb.PeekBack(); ok {
		return v
	}
	return fallback
}

// PeekFront returns the first element. ok is false when the ring is empty.
func (rb *RingBuffer[T]) PeekFront() (v T, ok bool) {
	if rb.size == 0 {
		return v, false
	}
	return rb.buf[rb.head], true
}

// PeekBack returns the last element. ok is false when the ring is empty.
func (rb *RingBuffer[T]) PeekBack() (v T, ok bool) {
	if rb.size == 0 {
		return v, false
	}
	return rb.buf[rb.phys(rb.size-1)], true
}

// At returns the element at logical position i.
func (rb *RingBuffer[T]) At(i int) (T, error) {
	if i < 0 || i >= rb.size {
		var zero T
		return zero, indexError("at", i, rb.size)
	}
	return rb.buf[rb.phys(i)], nil
}

// Set replaces the element at logical position i.
func (rb *RingBuffer[T]) Set(i int, v T) error {
	if i < 0 || i >= rb.size {
		return indexError("set", i, rb.size)
	}
	rb.buf[rb.phys(i)] = v
	return nil
}

// PushBack appends v, growing the storage if the ring is full.
func (rb *RingBuffer[T]) PushBack(v T) {
	if rb.size == len(rb.buf) {
		rb.grow(rb.size + 1)
	}
	rb.buf[rb.phys(rb.size)] = v
	rb.size++
}

// PushFront prepends v, growing the storage if the ring is full.
func (rb *RingBuffer[T]) PushFront(v T) {
	if rb.size == len(rb.buf) {
		rb.grow(rb.size + 1)
	}
	if rb.head == 0 {
		rb.head = len(rb.buf)
	}
	rb.head--
	rb.buf[rb.head] = v
	rb.size++
}

// PopFront removes and returns the first element.
func (rb *RingBuffer[T]) PopFront() (T, error) {
	if rb.size == 0 {
		var zero T
		return zero, fmt.Errorf("buffer: pop front: %w", ErrEmpty)
	}
	v := rb.buf[rb.head]
	rb.RemoveFront(1)
	return v, nil
}

// PopBack removes and returns the last element.
func (rb *RingBuffer[T]) PopBack() (T, error) {
	if rb.size == 0 {
		var zero T
		return zero, fmt.Errorf("buffer: pop back: %w", ErrEmpty)
	}
	v := rb.buf[rb.phys(rb.size-1)]
	rb.RemoveBack(1)
	return v, nil
}

// RemoveFront drops the first n elements. Only the head and length move; the
// vacated slots keep their values until overwritten. n < 1 is a no-op and
// n >= Len() clears the ring.
func (rb *RingBuffer[T]) RemoveFront(n int) {
	if n < 1 {
		return
	}
	if n >= rb.size {
		rb.Clear()
		return
	}
	rb.head = rb.phys(n)
	rb.size -= n
}

// RemoveBack drops the last n elements, with the same rules as RemoveFront.
func (rb *RingBuffer[T]) RemoveBack(n int) {
	if n < 1 {
		return
	}
	if n >= rb.size {
		rb.Clear()
		return
	}
	rb.size -= n
}

// Clear empties the ring in O(1). Capacity is retained.
func (rb *RingBuffer[T]) Clear() {
	rb.head = 0
	rb.size = 0
}

// EnsureCapacity grows the storage so that Cap() >= minCap. An empty storage
// is allocated at exactly minCap; otherwise the ring grows by at least half
// its current capacity. Growing always leaves the elements compacted at
// storage index 0.
func (rb *RingBuffer[T]) EnsureCapacity(minCap int) error {
	if minCap < 0 {
		return fmt.Errorf("buffer: ensure capacity %d: %w", minCap, ErrInvalidArgument)
	}
	rb.grow(minCap)
	return nil
}

func (rb *RingBuffer[T]) grow(minCap int) {
	c := len(rb.buf)
	if c >= minCap {
		return
	}
	newCap := minCap
	if c > 0 {
		newCap = max(minCap, c+c/2)
	}
	nb := make([]T, newCap)
	first, second := rb.Segments()
	copySegments(nb, nil, first, second)
	rb.buf = nb
	rb.head = 0
}

// Compact rewrites the storage in place so the elements start at index 0 and
// are contiguous. Length and capacity do not change.
func (rb *RingBuffer[T]) Compact() {
	if rb.head == 0 {
		return
	}
	if rb.size == 0 {
		rb.head = 0
		return
	}
	if rb.head+rb.size <= len(rb.buf) {
		copy(rb.buf, rb.buf[rb.head:rb.head+rb.size])
		rb.head = 0
		return
	}
	// Rotate the whole storage left by head.
	slices.Reverse(rb.buf[:rb.head])
	slices.Reverse(rb.buf[rb.head:])
	slices.Reverse(rb.buf)
	rb.head = 0
}

// TrimToSize compacts the ring and shrinks its capacity to exactly Len().
func (rb *RingBuffer[T]) TrimToSize() {
	if rb.size == len(rb.buf) {
		rb.Compact()
		return
	}
	rb.buf = rb.ToSlice()
	rb.head = 0
}

// Clone returns an independent deep copy with the same storage layout.
func (rb *RingBuffer[T]) Clone() *RingBuffer[T] {
	return &RingBuffer[T]{buf: slices.Clone(rb.buf), head: rb.head, size: rb.size}
}

// Slice returns a new ring holding a copy of logical range [start, end).
func (rb *RingBuffer[T]) Slice(start, end int) (*RingBuffer[T], error) {
	out, err := rb.SliceToArray(start, end)
	if err != nil {
		return nil, err
	}
	return From(out), nil
}

// SliceToArray returns a copy of logical range [start, end).
func (rb *RingBuffer[T]) SliceToArray(start, end int) ([]T, error) {
	if start < 0 || start > end || end > rb.size {
		return nil, rangeError("slice", start, end, rb.size)
	}
	out := make([]T, end-start)
	first, second := rb.spans(start, end-start)
	copySegments(out, nil, first, second)
	return out, nil
}

// CopyInto copies up to min(n, Len(), len(dst)-offset) leading elements into
// dst[offset:] without modifying the ring, and returns the number copied.
func (rb *RingBuffer[T]) CopyInto(dst []T, offset, n int) (int, error) {
	if offset < 0 || offset > len(dst) {
		return 0, indexError("copy offset", offset, len(dst))
	}
	if n < 0 {
		return 0, indexError("copy length", n, rb.size)
	}
	return rb.peek(dst[offset:][:min(n, len(dst)-offset)]), nil
}

// peek copies up to len(dst) leading elements into dst.
func (rb *RingBuffer[T]) peek(dst []T) int {
	first, second := rb.spans(0, min(len(dst), rb.size))
	return copySegments(dst, nil, first, second)
}

// ToSlice returns a copy of all elements in logical order.
func (rb *RingBuffer[T]) ToSlice() []T {
	out := make([]T, rb.size)
	first, second := rb.Segments()
	copySegments(out, nil, first, second)
	return out
}

// String formats the elements in logical order, like a slice.
func (rb *RingBuffer[T]) String() string {
	return fmt.Sprint(rb.ToSlice())
}

// Concat returns a new ring holding the elements of a followed by the
// elements of b. Neither input is modified.
func Concat[T any](a, b *RingBuffer[T]) *RingBuffer[T] {
	out := make([]T, a.size+b.size)
	a1, a2 := a.Segments()
	n := copySegments(out, nil, a1, a2)
	b1, b2 := b.Segments()
	copySegments(out[n:], nil, b1, b2)
	return From(out)
}

// Equal reports whether a and b hold the same elements in the same order.
// Storage layout and capacity are not compared.
func Equal[T comparable](a, b *RingBuffer[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *RingBuffer[T], eq func(T, T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := range a.size {
		if !eq(a.buf[a.phys(i)], b.buf[b.phys(i)]) {
			return false
		}
	}
	return true
}

// Contains reports whether v is in the ring.
func Contains[T comparable](rb *RingBuffer[T], v T) bool {
	return Index(rb, v) >= 0
}

// Index returns the logical position of the first occurrence of v, or -1.
func Index[T comparable](rb *RingBuffer[T], v T) int {
	first, second := rb.Segments()
	if i := slices.Index(first, v); i >= 0 {
		return i
	}
	if i := slices.Index(second, v); i >= 0 {
		return len(first) + i
	}
	return -1
}

// ContainsFunc reports whether any element satisfies f.
func (rb *RingBuffer[T]) ContainsFunc(f func(T) bool) bool {
	first, second := rb.Segments()
	return slices.ContainsFunc(first, f) || slices.ContainsFunc(second, f)
}
