package buffer

import "io"

// ByteQueue is the common surface of the thread-safe byte queues: a pipe
// that can be drained, inspected and closed from either side.
type ByteQueue interface {
	io.ReadWriteCloser
	CloseWrite() error
	CloseWithError(err error) error
	Error() error
	Discard(n int) error
	Reset()
	Bytes() []byte
	Len() int
}

var (
	_ ByteQueue = (*BlockBuffer[byte])(nil)
	_ ByteQueue = (*Buffer[byte])(nil)
	_ ByteQueue = (*WindowBuffer[byte])(nil)
)

// BlockBytes returns a bounded byte pipe holding at most size bytes.
func BlockBytes(size int) *BlockBuffer[byte] {
	return BlockN[byte](size)
}

// GrowBytes returns an unbounded byte queue starting at 1 KiB.
func GrowBytes() *Buffer[byte] {
	return N[byte](1 << 10)
}

// WindowBytes returns a queue keeping only the last size bytes written.
func WindowBytes(size int) *WindowBuffer[byte] {
	return WindowN[byte](size)
}
