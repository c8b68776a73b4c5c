package layout

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/Foxcapades/kps/pkg/buffer"
)

// ErrTruncated is returned when the source ends inside a record.
var ErrTruncated = errors.New("layout: truncated record")

// DefaultCapacity is the ring capacity used when NewDecoder is given 0.
const DefaultCapacity = 4096

// maxEmptyFills bounds consecutive fills that return no bytes and no error.
const maxEmptyFills = 100

// Stats counts the work done by a Decoder.
type Stats struct {
	Records int   `json:"records" yaml:"records"`
	Fills   int   `json:"fills" yaml:"fills"`
	Bytes   int64 `json:"bytes" yaml:"bytes"`
}

// Decoder reads fixed-size records from a byte stream. Bytes are buffered in
// a ByteRing that is topped up with Fill whenever fewer than one record's
// worth are buffered, so records are decoded straight out of the ring even
// when they straddle the end of its storage.
type Decoder struct {
	src    io.Reader
	ring   *buffer.ByteRing
	layout *Layout
	eof    bool
	stats  Stats
}

// NewDecoder returns a Decoder reading l-shaped records from src through a
// ring of the given capacity. A capacity of 0 means max(DefaultCapacity,
// l.Size()); any other capacity must hold at least one record.
func NewDecoder(src io.Reader, l *Layout, capacity int) (*Decoder, error) {
	size := l.Size()
	if capacity == 0 {
		capacity = max(DefaultCapacity, size)
	}
	if capacity < size {
		return nil, fmt.Errorf("layout: ring capacity %d below record size %d: %w", capacity, size, buffer.ErrInvalidArgument)
	}
	return &Decoder{
		src:    src,
		ring:   buffer.BytesRing(capacity),
		layout: l,
	}, nil
}

// Ring returns the decoder's buffer. It is owned by the decoder.
func (d *Decoder) Ring() *buffer.ByteRing {
	return d.ring
}

// Stats returns the counters so far.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Decode returns the next record. At a clean end of input it returns io.EOF;
// if the input ends inside a record it returns ErrTruncated.
func (d *Decoder) Decode() (Record, error) {
	if err := d.buffer(d.layout.Size()); err != nil {
		return nil, err
	}
	rec := make(Record, 0, len(d.layout.Fields))
	for _, f := range d.layout.Fields {
		v, err := d.field(f)
		if err != nil {
			return nil, fmt.Errorf("layout: field %q: %w", f.Name, err)
		}
		if !f.Hidden() {
			rec = append(rec, Value{Name: f.Name, Value: v})
		}
	}
	d.stats.Records++
	return rec, nil
}

// buffer fills the ring until it holds at least n bytes.
func (d *Decoder) buffer(n int) error {
	empty := 0
	for d.ring.Len() < n {
		if d.eof {
			if d.ring.Len() == 0 {
				return io.EOF
			}
			return fmt.Errorf("%w: %d of %d bytes", ErrTruncated, d.ring.Len(), n)
		}
		got, err := d.ring.Fill(d.src)
		d.stats.Fills++
		d.stats.Bytes += int64(got)
		slog.Debug("fill", "bytes", got, "len", d.ring.Len(), "head", d.ring.Head(), "layout", d.ring.Layout())
		switch {
		case errors.Is(err, io.EOF):
			d.eof = true
		case err != nil:
			return fmt.Errorf("layout: read: %w", err)
		case got == 0:
			if empty++; empty >= maxEmptyFills {
				return io.ErrNoProgress
			}
		default:
			empty = 0
		}
	}
	return nil
}

func (d *Decoder) field(f Field) (any, error) {
	rb := d.ring
	switch f.Kind {
	case Uint8:
		return rb.Uint8()
	case Int8:
		return rb.Int8()
	case Uint16:
		return rb.Uint16(f.Order)
	case Int16:
		return rb.Int16(f.Order)
	case Uint32:
		return rb.Uint32(f.Order)
	case Int32:
		return rb.Int32(f.Order)
	case Uint64:
		return rb.Uint64(f.Order)
	case Int64:
		return rb.Int64(f.Order)
	case Float32:
		return rb.Float32(f.Order)
	case Float64:
		return rb.Float64(f.Order)
	case Skip:
		rb.RemoveFront(f.Len)
		return nil, nil
	case Bytes:
		p := make([]byte, f.Len)
		_, err := rb.Read(p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown kind %v", f.Kind)
	}
}

// Records iterates over the remaining records. Iteration stops at the end
// of input; any other error is yielded once as the last element.
func (d *Decoder) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := d.Decode()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
