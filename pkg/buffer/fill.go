package buffer

import (
	"errors"
	"io"
)

// Fill appends bytes read from src into the ring's free capacity without
// growing it, issuing as few Read calls as the shape of the free region
// allows. It returns the number of bytes appended. When no byte was appended
// because src is exhausted, Fill returns 0, io.EOF.
//
// Fill never blocks on its own; any blocking comes from src.Read. A full ring
// returns 0, nil without touching src.
//
// The head never moves, except that an empty ring is rewound to index 0 so a
// single read can use the whole storage.
//
// When the free region wraps, the second read is attempted only if the first
// filled its whole chunk and did not report EOF. If the first read returned
// bytes and the second reports EOF, the bytes are returned with a nil error
// and EOF surfaces on the next call.
func (b *ByteRing) Fill(src io.Reader) (int, error) {
	rb := &b.RingBuffer
	c := len(rb.buf)
	switch space := c - rb.size; {
	case space == 0:
		return 0, nil
	case rb.size == 0:
		rb.head = 0
		return b.fillChunk(src, rb.buf)
	case space == 1:
		return b.fillByte(src)
	}

	tail := rb.phys(rb.size)
	if tail < rb.head {
		// The free region is the single gap between the end of the data and
		// the head.
		return b.fillChunk(src, rb.buf[tail:rb.head])
	}
	if rb.head == 0 {
		return b.fillChunk(src, rb.buf[tail:])
	}

	n1, err := b.fillChunk(src, rb.buf[tail:])
	if err != nil || n1 < c-tail {
		return n1, err
	}
	n2, err := b.fillChunk(src, rb.buf[:rb.head])
	if errors.Is(err, io.EOF) {
		return n1 + n2, nil
	}
	return n1 + n2, err
}

// fillChunk reads once into p, which must be the free storage directly after
// the last element, and appends what was read.
func (b *ByteRing) fillChunk(src io.Reader, p []byte) (int, error) {
	n, err := src.Read(p)
	b.size += n
	if err == nil {
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
	return n, err
}

// fillByte appends a single byte. Sources that can report single bytes are
// asked for exactly one.
func (b *ByteRing) fillByte(src io.Reader) (int, error) {
	tail := b.phys(b.size)
	br, ok := src.(io.ByteReader)
	if !ok {
		return b.fillChunk(src, b.buf[tail:tail+1])
	}
	c, err := br.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	b.buf[tail] = c
	b.size++
	return 1, nil
}
