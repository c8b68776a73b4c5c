package buffer

import (
	"fmt"
	"io"
	"sync"
)

// BlockBuffer is a bounded, thread-safe queue over a RingBuffer that never
// grows. Writers block while the ring is full and readers block while it is
// empty, which makes it a pipe with a fixed amount of memory between a
// producer and a consumer goroutine.
//
// Closing the write side lets readers drain what is buffered and then see
// io.EOF. Closing with an error fails every pending and future operation
// with that error.
type BlockBuffer[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	ring       *RingBuffer[T]
	closeWrite bool
	closeErr   error
}

// Block returns a BlockBuffer whose ring adopts buf as its storage. The
// capacity is len(buf), or 1 when buf is empty.
func Block[T any](buf []T) *BlockBuffer[T] {
	if len(buf) == 0 {
		buf = make([]T, 1)
	}
	ring, _ := Wrap(buf, 0, 0)
	bb := &BlockBuffer[T]{ring: ring}
	bb.cond = sync.NewCond(&bb.mu)
	return bb
}

// BlockN returns a BlockBuffer holding at most max(size, 1) elements.
func BlockN[T any](size int) *BlockBuffer[T] {
	return Block(make([]T, max(size, 0)))
}

func (bb *BlockBuffer[T]) readErrLocked() error {
	if bb.closeErr != nil {
		return fmt.Errorf("buffer: read from closed buffer: %w", bb.closeErr)
	}
	return nil
}

func (bb *BlockBuffer[T]) writeErrLocked() error {
	if bb.closeErr != nil {
		return fmt.Errorf("buffer: write to closed buffer: %w", bb.closeErr)
	}
	if bb.closeWrite {
		return fmt.Errorf("buffer: write to closed buffer: %w", io.ErrClosedPipe)
	}
	return nil
}

// awaitDataLocked waits until the ring holds an element. It returns io.EOF
// once the write side is closed and the ring is drained.
func (bb *BlockBuffer[T]) awaitDataLocked() error {
	for {
		if err := bb.readErrLocked(); err != nil {
			return err
		}
		if !bb.ring.IsEmpty() {
			return nil
		}
		if bb.closeWrite {
			return io.EOF
		}
		bb.cond.Wait()
	}
}

// awaitSpaceLocked waits until the ring has a free slot.
func (bb *BlockBuffer[T]) awaitSpaceLocked() error {
	for {
		if err := bb.writeErrLocked(); err != nil {
			return err
		}
		if bb.ring.Space() > 0 {
			return nil
		}
		bb.cond.Wait()
	}
}

// Read implements io.Reader. It waits for at least one element and copies as
// many as fit into p.
func (bb *BlockBuffer[T]) Read(p []T) (int, error) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if err := bb.awaitDataLocked(); err != nil {
		return 0, err
	}
	n := bb.ring.peek(p)
	bb.ring.RemoveFront(n)
	bb.cond.Broadcast()
	return n, nil
}

// Write implements io.Writer. It returns only when all of p is queued or
// the buffer is closed; on close the count of queued elements is returned
// with the error.
func (bb *BlockBuffer[T]) Write(p []T) (int, error) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if err := bb.writeErrLocked(); err != nil {
		return 0, err
	}
	written := 0
	for len(p) > 0 {
		if err := bb.awaitSpaceLocked(); err != nil {
			return written, err
		}
		n := min(bb.ring.Space(), len(p))
		bb.ring.PushBackSlice(p[:n])
		p = p[n:]
		written += n
		bb.cond.Broadcast()
	}
	return written, nil
}

// Peek copies up to len(p) buffered elements into p without consuming them.
// It does not wait.
func (bb *BlockBuffer[T]) Peek(p []T) int {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	n := bb.ring.peek(p)
	return n
}

// Discard drops up to n buffered elements.
func (bb *BlockBuffer[T]) Discard(n int) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.closeErr != nil {
		return fmt.Errorf("buffer: skip from closed buffer: %w", bb.closeErr)
	}
	bb.ring.RemoveFront(n)
	bb.cond.Broadcast()
	return nil
}

// Next removes and returns the oldest element, waiting for one if needed.
// ErrIteratorDone reports a drained buffer whose write side is closed.
func (bb *BlockBuffer[T]) Next() (T, error) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if err := bb.awaitDataLocked(); err != nil {
		var zero T
		if err == io.EOF {
			err = ErrIteratorDone
		}
		return zero, err
	}
	v, _ := bb.ring.PopFront()
	bb.cond.Broadcast()
	return v, nil
}

// Add queues a single element, waiting for space if needed.
func (bb *BlockBuffer[T]) Add(v T) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if err := bb.awaitSpaceLocked(); err != nil {
		return err
	}
	bb.ring.PushBack(v)
	bb.cond.Broadcast()
	return nil
}

// CloseWrite stops further writes. Buffered elements stay readable.
func (bb *BlockBuffer[T]) CloseWrite() error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	bb.closeWrite = true
	bb.cond.Broadcast()
	return nil
}

// CloseWithError closes both sides. Waiting readers and writers return err,
// or io.ErrClosedPipe when err is nil. The first error wins.
func (bb *BlockBuffer[T]) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.closeErr == nil {
		bb.closeErr = err
		bb.closeWrite = true
		bb.cond.Broadcast()
	}
	return nil
}

// Close is CloseWithError(io.ErrClosedPipe).
func (bb *BlockBuffer[T]) Close() error {
	return bb.CloseWithError(io.ErrClosedPipe)
}

// Error returns the error the buffer was closed with, if any.
func (bb *BlockBuffer[T]) Error() error {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.closeErr
}

// Reset drops all buffered elements. It does not reopen a closed buffer.
func (bb *BlockBuffer[T]) Reset() {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	bb.ring.Clear()
	bb.cond.Broadcast()
}

// Len returns the number of buffered elements.
func (bb *BlockBuffer[T]) Len() int {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.ring.Len()
}

// Cap returns the fixed capacity.
func (bb *BlockBuffer[T]) Cap() int {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.ring.Cap()
}

// Bytes returns a copy of the buffered elements, oldest first.
func (bb *BlockBuffer[T]) Bytes() []T {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.ring.ToSlice()
}
