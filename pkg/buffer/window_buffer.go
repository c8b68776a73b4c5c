package buffer

import (
	"fmt"
	"io"
	"sync"
)

// WindowBuffer is a thread-safe queue over a fixed RingBuffer that drops its
// oldest elements instead of blocking, so it always holds the most recent
// Cap() elements written. Reads wait while it is empty.
//
// The close semantics match BlockBuffer.
type WindowBuffer[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	ring       *RingBuffer[T]
	closeWrite bool
	closeErr   error
}

// WindowN returns a WindowBuffer keeping the last size elements.
func WindowN[T any](size int) *WindowBuffer[T] {
	wb := &WindowBuffer[T]{ring: RingN[T](max(size, 0))}
	wb.cond = sync.NewCond(&wb.mu)
	return wb
}

func (wb *WindowBuffer[T]) writeErrLocked() error {
	if wb.closeErr != nil {
		return fmt.Errorf("buffer: write to closed buffer: %w", wb.closeErr)
	}
	if wb.closeWrite {
		return fmt.Errorf("buffer: write to closed buffer: %w", io.ErrClosedPipe)
	}
	return nil
}

func (wb *WindowBuffer[T]) awaitDataLocked() error {
	for {
		if wb.closeErr != nil {
			return fmt.Errorf("buffer: read from closed buffer: %w", wb.closeErr)
		}
		if !wb.ring.IsEmpty() {
			return nil
		}
		if wb.closeWrite {
			return io.EOF
		}
		wb.cond.Wait()
	}
}

// Write implements io.Writer. Elements that do not fit push out the oldest
// ones; when p alone exceeds the window only its last Cap() elements are
// kept. The full length of p is always reported.
func (wb *WindowBuffer[T]) Write(p []T) (int, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if err := wb.writeErrLocked(); err != nil {
		return 0, err
	}
	size := wb.ring.Cap()
	if size == 0 {
		return len(p), nil
	}
	keep := p
	if len(keep) >= size {
		keep = keep[len(keep)-size:]
		wb.ring.Clear()
	} else if over := len(keep) - wb.ring.Space(); over > 0 {
		wb.ring.RemoveFront(over)
	}
	wb.ring.PushBackSlice(keep)
	wb.cond.Broadcast()
	return len(p), nil
}

// Add appends v, dropping the oldest element when the window is full.
func (wb *WindowBuffer[T]) Add(v T) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if err := wb.writeErrLocked(); err != nil {
		return err
	}
	if wb.ring.Cap() == 0 {
		return nil
	}
	if wb.ring.Space() == 0 {
		wb.ring.RemoveFront(1)
	}
	wb.ring.PushBack(v)
	wb.cond.Broadcast()
	return nil
}

// Read implements io.Reader. It waits for at least one element and copies as
// many as fit into p.
func (wb *WindowBuffer[T]) Read(p []T) (int, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if err := wb.awaitDataLocked(); err != nil {
		return 0, err
	}
	n := wb.ring.peek(p)
	wb.ring.RemoveFront(n)
	return n, nil
}

// Next removes and returns the oldest element, waiting for one if needed.
// ErrIteratorDone reports a drained window whose write side is closed.
func (wb *WindowBuffer[T]) Next() (T, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if err := wb.awaitDataLocked(); err != nil {
		var zero T
		if err == io.EOF {
			err = ErrIteratorDone
		}
		return zero, err
	}
	return wb.ring.PopFront()
}

// Discard drops up to n of the oldest elements.
func (wb *WindowBuffer[T]) Discard(n int) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closeErr != nil {
		return fmt.Errorf("buffer: skip from closed buffer: %w", wb.closeErr)
	}
	wb.ring.RemoveFront(n)
	return nil
}

// CloseWrite stops further writes. Buffered elements stay readable.
func (wb *WindowBuffer[T]) CloseWrite() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.closeWrite = true
	wb.cond.Broadcast()
	return nil
}

// CloseWithError closes both sides. Waiting readers return err, or
// io.ErrClosedPipe when err is nil. The first error wins.
func (wb *WindowBuffer[T]) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closeErr == nil {
		wb.closeErr = err
		wb.closeWrite = true
		wb.cond.Broadcast()
	}
	return nil
}

// Close is CloseWithError(io.ErrClosedPipe).
func (wb *WindowBuffer[T]) Close() error {
	return wb.CloseWithError(io.ErrClosedPipe)
}

// Error returns the error the window was closed with, if any.
func (wb *WindowBuffer[T]) Error() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.closeErr
}

// Reset drops all buffered elements.
func (wb *WindowBuffer[T]) Reset() {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.ring.Clear()
}

// Len returns the number of buffered elements.
func (wb *WindowBuffer[T]) Len() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.ring.Len()
}

// Cap returns the window size.
func (wb *WindowBuffer[T]) Cap() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.ring.Cap()
}

// Bytes returns a copy of the buffered elements, oldest first.
func (wb *WindowBuffer[T]) Bytes() []T {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.ring.ToSlice()
}
