package buffer

import (
	"fmt"
	"io"
	"sync"
)

// Buffer is an unbounded, thread-safe queue over a RingBuffer. Writes never
// wait: the ring grows when it is full, and slots freed by reads are reused
// before it does. Reads wait while the queue is empty.
//
// The close semantics match BlockBuffer.
type Buffer[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	ring       *RingBuffer[T]
	closeWrite bool
	closeErr   error
}

// N returns a Buffer whose ring starts with capacity n.
func N[T any](n int) *Buffer[T] {
	b := &Buffer[T]{ring: RingN[T](max(n, 0))}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *Buffer[T]) writeErrLocked() error {
	if b.closeErr != nil {
		return fmt.Errorf("buffer: write to closed buffer: %w", b.closeErr)
	}
	if b.closeWrite {
		return fmt.Errorf("buffer: write to closed buffer: %w", io.ErrClosedPipe)
	}
	return nil
}

func (b *Buffer[T]) awaitDataLocked() error {
	for {
		if b.closeErr != nil {
			return fmt.Errorf("buffer: read from closed buffer: %w", b.closeErr)
		}
		if !b.ring.IsEmpty() {
			return nil
		}
		if b.closeWrite {
			return io.EOF
		}
		b.cond.Wait()
	}
}

// Write implements io.Writer, appending all of p.
func (b *Buffer[T]) Write(p []T) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErrLocked(); err != nil {
		return 0, err
	}
	b.ring.PushBackSlice(p)
	b.cond.Broadcast()
	return len(p), nil
}

// Add appends a single element.
func (b *Buffer[T]) Add(v T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.writeErrLocked(); err != nil {
		return err
	}
	b.ring.PushBack(v)
	b.cond.Broadcast()
	return nil
}

// Read implements io.Reader. It waits for at least one element and copies as
// many as fit into p.
func (b *Buffer[T]) Read(p []T) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.awaitDataLocked(); err != nil {
		return 0, err
	}
	n := b.ring.peek(p)
	b.ring.RemoveFront(n)
	return n, nil
}

// Next removes and returns the oldest element, waiting for one if needed.
// ErrIteratorDone reports a drained buffer whose write side is closed.
func (b *Buffer[T]) Next() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.awaitDataLocked(); err != nil {
		var zero T
		if err == io.EOF {
			err = ErrIteratorDone
		}
		return zero, err
	}
	return b.ring.PopFront()
}

// Discard drops up to n buffered elements. Capacity is kept.
func (b *Buffer[T]) Discard(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closeErr != nil {
		return fmt.Errorf("buffer: skip from closed buffer: %w", b.closeErr)
	}
	b.ring.RemoveFront(n)
	return nil
}

// CloseWrite stops further writes. Buffered elements stay readable.
func (b *Buffer[T]) CloseWrite() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeWrite = true
	b.cond.Broadcast()
	return nil
}

// CloseWithError closes both sides and releases the buffered elements.
// Waiting readers return err, or io.ErrClosedPipe when err is nil. The first
// error wins.
func (b *Buffer[T]) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closeErr == nil {
		b.closeErr = err
		b.closeWrite = true
		b.ring = RingN[T](0)
		b.cond.Broadcast()
	}
	return nil
}

// Close is CloseWithError(io.ErrClosedPipe).
func (b *Buffer[T]) Close() error {
	return b.CloseWithError(io.ErrClosedPipe)
}

// Error returns the error the buffer was closed with, if any.
func (b *Buffer[T]) Error() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closeErr
}

// Reset drops all buffered elements and keeps the capacity.
func (b *Buffer[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring.Clear()
}

// Len returns the number of buffered elements.
func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.Len()
}

// Cap returns the current ring capacity.
func (b *Buffer[T]) Cap() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.Cap()
}

// Bytes returns a copy of the buffered elements, oldest first.
func (b *Buffer[T]) Bytes() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.ToSlice()
}
