// Package buffer provides a generic ring buffer sequence engine and the
// thread-safe streaming buffers built on top of it.
//
// RingBuffer is the core: a growable circular sequence with O(1) push and pop
// at both ends, random access, insertion and removal in the middle, and
// in-place compaction. It is not safe for concurrent use.
//
// ByteRing specializes RingBuffer for bytes. It decodes fixed-width integers
// and IEEE-754 floats from its front in either byte order, and Fill appends
// bytes from an io.Reader into its free capacity with as few reads as the
// current layout allows.
//
// Three thread-safe buffers wrap RingBuffer for producer/consumer use:
//
//   - BlockBuffer: A fixed-size circular buffer that blocks when full or empty.
//     Ideal for scenarios requiring predictable memory usage and flow control.
//
//   - Buffer: A growable buffer that automatically expands as needed.
//     Suitable for variable data sizes where the total size is unknown.
//
//   - WindowBuffer: A fixed-size buffer that overwrites oldest data when full.
//     Perfect for maintaining sliding windows of recent data.
//
// They implement io.Reader, io.Writer and io.Closer and provide graceful
// shutdown through CloseWrite() (allows reads to continue) or
// CloseWithError() (immediate closure).
//
// Example usage:
//
//	rb := buffer.BytesRing(64)
//	rb.Write([]byte{0x00, 0x2a, 0x3f, 0x80, 0x00, 0x00})
//
//	n, _ := rb.Uint16(buffer.BigEndian)  // 42
//	f, _ := rb.Float32(buffer.BigEndian) // 1.0
//
//	// Top up from a stream
//	_, err := rb.Fill(conn)
package buffer
