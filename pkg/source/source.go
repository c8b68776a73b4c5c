// Package source opens byte streams for decoding, transparently
// decompressing them.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/Foxcapades/kps/pkg/buffer"
)

// Compression names a stream compression format.
type Compression string

const (
	None   Compression = "none"
	Auto   Compression = "auto"
	Gzip   Compression = "gzip"
	Zstd   Compression = "zstd"
	Snappy Compression = "snappy"
	Zlib   Compression = "zlib"
)

// ErrUnknownCompression is returned for unsupported compression names.
var ErrUnknownCompression = errors.New("source: unknown compression")

// ParseCompression accepts the Compression names. The empty string means
// Auto.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "":
		return Auto, nil
	case None, Auto, Gzip, Zstd, Snappy, Zlib:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// sniffLen is the number of bytes Detect needs to recognize every format.
const sniffLen = 10

// Detect returns the compression whose magic number prefixes p, or None.
// zlib has no reliable magic number and is never detected.
func Detect(p []byte) Compression {
	switch {
	case bytes.HasPrefix(p, zstdMagic):
		return Zstd
	case bytes.HasPrefix(p, gzipMagic):
		return Gzip
	case bytes.HasPrefix(p, snappyMagic):
		return Snappy
	default:
		return None
	}
}

// Open opens path, or stdin for "-", and decompresses it with c.
func Open(path string, c Compression) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == "-" {
		f = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		f = file
	}
	r, err := NewReader(f, c)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stream{Reader: r, closers: []io.Closer{r, f}}, nil
}

// NewReader wraps r to decompress it with c. With Auto the first bytes of r
// are buffered in a ring to sniff the format and replayed to the decoder.
// Closing the result releases the decompressor, not r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Auto || c == "" {
		var err error
		if c, r, err = sniff(r); err != nil {
			return nil, err
		}
	}
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("source: gzip: %w", err)
		}
		return zr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("source: zlib: %w", err)
		}
		return zr, nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("source: zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

// sniff reads up to sniffLen bytes of r into a ring and returns the detected
// compression with a reader that replays them before the rest of r.
func sniff(r io.Reader) (Compression, io.Reader, error) {
	head := buffer.BytesRing(sniffLen)
	for head.Space() > 0 {
		n, err := head.Fill(r)
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("source: sniff: %w", err)
		}
	}
	c := Detect(head.ToSlice())
	return c, io.MultiReader(head, r), nil
}

// Readahead reads r on its own goroutine into a bounded queue of size bytes,
// so decompression overlaps with whatever consumes the result. A read error
// from r reaches the consumer after the bytes queued before it. Closing the
// result closes r.
func Readahead(r io.ReadCloser, size int) io.ReadCloser {
	ra := &readahead{
		q:    buffer.BlockBytes(size),
		src:  r,
		done: make(chan struct{}),
	}
	go ra.run()
	return ra
}

type readahead struct {
	q    *buffer.BlockBuffer[byte]
	src  io.ReadCloser
	done chan struct{}

	// err is set before the queue's write side is closed and read only
	// after the queue reports EOF.
	err error
}

func (ra *readahead) run() {
	defer close(ra.done)
	_, err := io.Copy(ra.q, ra.src)
	ra.err = err
	ra.q.CloseWrite()
}

func (ra *readahead) Read(p []byte) (int, error) {
	n, err := ra.q.Read(p)
	if err == io.EOF && ra.err != nil {
		return n, ra.err
	}
	return n, err
}

// Close stops the copy and waits for its in-flight read of src to return
// before closing src.
func (ra *readahead) Close() error {
	ra.q.Close()
	<-ra.done
	return ra.src.Close()
}

type stream struct {
	io.Reader
	closers []io.Closer
}

func (s *stream) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
