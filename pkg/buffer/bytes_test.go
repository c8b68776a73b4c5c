package buffer

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestByteQueues(t *testing.T) {
	tests := []struct {
		name string
		q    ByteQueue
		// kept is what a 6-byte write leaves readable.
		kept string
	}{
		{"block", BlockBytes(8), "abcdef"},
		{"grow", GrowBytes(), "abcdef"},
		{"window", WindowBytes(4), "cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.q
			if n, err := q.Write([]byte("abcdef")); n != 6 || err != nil {
				t.Fatalf("Write = %d, %v", n, err)
			}
			if got := string(q.Bytes()); got != tt.kept {
				t.Errorf("Bytes() got=%q, want %q", got, tt.kept)
			}
			if q.Len() != len(tt.kept) {
				t.Errorf("Len() = %d", q.Len())
			}

			if err := q.Discard(1); err != nil {
				t.Fatalf("Discard error: %v", err)
			}
			q.CloseWrite()
			got, err := io.ReadAll(q)
			if err != nil {
				t.Fatalf("ReadAll error: %v", err)
			}
			if string(got) != tt.kept[1:] {
				t.Errorf("ReadAll got=%q, want %q", got, tt.kept[1:])
			}

			q.Reset()
			if q.Error() != nil {
				t.Errorf("Error() before Close = %v", q.Error())
			}
			q.Close()
			if !errors.Is(q.Error(), io.ErrClosedPipe) {
				t.Errorf("Error() after Close = %v", q.Error())
			}
		})
	}
}

func TestBlockBytes_FeedsByteRing(t *testing.T) {
	q := BlockBytes(5)
	go func() {
		q.Write([]byte{0x00, 0x2a, 0xde, 0xad, 0xbe, 0xef})
		q.CloseWrite()
	}()

	rb := BytesRing(6)
	for rb.Space() > 0 {
		if _, err := rb.Fill(q); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("Fill error: %v", err)
		}
	}
	if !bytes.Equal(rb.ToSlice(), []byte{0x00, 0x2a, 0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("ring got=%x", rb.ToSlice())
	}
	if v, err := rb.Uint16(BigEndian); err != nil || v != 42 {
		t.Errorf("Uint16 got=%d, %v", v, err)
	}
	if v, err := rb.Uint32(BigEndian); err != nil || v != 0xdeadbeef {
		t.Errorf("Uint32 got=%x, %v", v, err)
	}
}
