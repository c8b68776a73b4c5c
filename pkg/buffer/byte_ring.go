package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ByteOrder selects how multi-byte values are laid out in a ByteRing. The zero
// value is BigEndian: the earliest pushed byte is the most significant.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

// ParseByteOrder accepts "big", "be", "little" and "le". The empty string
// means BigEndian.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "", "big", "be":
		return BigEndian, nil
	case "little", "le":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("buffer: byte order %q: %w", s, ErrInvalidArgument)
	}
}

// ByteRing is a RingBuffer of bytes that can decode fixed-width binary values
// from its front and fill its free space from an io.Reader.
//
// Every decode either removes exactly the bytes it consumed or, when too few
// bytes are buffered, fails with ErrInsufficientData and leaves the ring
// untouched.
type ByteRing struct {
	RingBuffer[byte]
}

var (
	_ io.Reader     = (*ByteRing)(nil)
	_ io.Writer     = (*ByteRing)(nil)
	_ io.ByteReader = (*ByteRing)(nil)
)

// BytesRing creates an empty ByteRing with the specified capacity. It panics
// if capacity is negative.
func BytesRing(capacity int) *ByteRing {
	return &ByteRing{RingBuffer: *RingN[byte](capacity)}
}

// WrapBytes creates a full ByteRing that adopts p as its storage.
func WrapBytes(p []byte) *ByteRing {
	return &ByteRing{RingBuffer: *From(p)}
}

// take decodes the first k bytes as an unsigned integer and removes them.
// Inline bytes are decoded straight from storage; bytes that wrap around the
// end of the storage are accumulated one at a time.
func (b *ByteRing) take(k int, order ByteOrder) (uint64, error) {
	rb := &b.RingBuffer
	if rb.size < k {
		return 0, fmt.Errorf("buffer: decode %d bytes with %d buffered: %w", k, rb.size, ErrInsufficientData)
	}
	var v uint64
	if h := rb.head; h+k <= len(rb.buf) {
		p := rb.buf[h : h+k]
		switch {
		case k == 1:
			v = uint64(p[0])
		case k == 2 && order == LittleEndian:
			v = uint64(binary.LittleEndian.Uint16(p))
		case k == 2:
			v = uint64(binary.BigEndian.Uint16(p))
		case k == 4 && order == LittleEndian:
			v = uint64(binary.LittleEndian.Uint32(p))
		case k == 4:
			v = uint64(binary.BigEndian.Uint32(p))
		case order == LittleEndian:
			v = binary.LittleEndian.Uint64(p)
		default:
			v = binary.BigEndian.Uint64(p)
		}
	} else {
		i := h
		for j := range k {
			c := uint64(rb.buf[i])
			if order == LittleEndian {
				v |= c << (8 * j)
			} else {
				v = v<<8 | c
			}
			if i++; i == len(rb.buf) {
				i = 0
			}
		}
	}
	rb.RemoveFront(k)
	return v, nil
}

// Uint8 removes and returns the first byte.
func (b *ByteRing) Uint8() (uint8, error) {
	v, err := b.take(1, BigEndian)
	return uint8(v), err
}

// Int8 removes the first byte and returns it as a signed value.
func (b *ByteRing) Int8() (int8, error) {
	v, err := b.take(1, BigEndian)
	return int8(v), err
}

// Uint16 removes the first 2 bytes and decodes them.
func (b *ByteRing) Uint16(order ByteOrder) (uint16, error) {
	v, err := b.take(2, order)
	return uint16(v), err
}

// Int16 removes the first 2 bytes and decodes them as a signed value.
func (b *ByteRing) Int16(order ByteOrder) (int16, error) {
	v, err := b.take(2, order)
	return int16(v), err
}

// Uint32 removes the first 4 bytes and decodes them.
func (b *ByteRing) Uint32(order ByteOrder) (uint32, error) {
	v, err := b.take(4, order)
	return uint32(v), err
}

// Int32 removes the first 4 bytes and decodes them as a signed value.
func (b *ByteRing) Int32(order ByteOrder) (int32, error) {
	v, err := b.take(4, order)
	return int32(v), err
}

// Uint64 removes the first 8 bytes and decodes them.
func (b *ByteRing) Uint64(order ByteOrder) (uint64, error) {
	return b.take(8, order)
}

// Int64 removes the first 8 bytes and decodes them as a signed value.
func (b *ByteRing) Int64(order ByteOrder) (int64, error) {
	v, err := b.take(8, order)
	return int64(v), err
}

// Float32 removes the first 4 bytes and reinterprets their integer decoding
// as an IEEE-754 single.
func (b *ByteRing) Float32(order ByteOrder) (float32, error) {
	v, err := b.take(4, order)
	return math.Float32frombits(uint32(v)), err
}

// Float64 removes the first 8 bytes and reinterprets their integer decoding
// as an IEEE-754 double.
func (b *ByteRing) Float64(order ByteOrder) (float64, error) {
	v, err := b.take(8, order)
	return math.Float64frombits(v), err
}

// ReadByte implements io.ByteReader.
func (b *ByteRing) ReadByte() (byte, error) {
	if b.size == 0 {
		return 0, io.EOF
	}
	return b.Uint8()
}

// Read implements io.Reader by moving bytes from the front of the ring into
// p. It returns io.EOF when the ring is empty.
func (b *ByteRing) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	n := b.peek(p)
	b.RemoveFront(n)
	return n, nil
}

// Write implements io.Writer by appending p, growing the ring as needed.
func (b *ByteRing) Write(p []byte) (int, error) {
	b.PushBackSlice(p)
	return len(p), nil
}

// Sum64 returns the xxhash of the buffered bytes in logical order. Rings
// holding the same bytes hash equally regardless of head offset or capacity.
func (b *ByteRing) Sum64() uint64 {
	var d xxhash.Digest
	d.Reset()
	first, second := b.Segments()
	d.Write(first)
	d.Write(second)
	return d.Sum64()
}
