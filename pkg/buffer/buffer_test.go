package buffer

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestBuffer_GrowsPastInitialCapacity(t *testing.T) {
	b := N[int](2)
	for i := range 5 {
		if err := b.Add(i); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	if b.Len() != 5 || b.Cap() < 5 {
		t.Errorf("Len=%d Cap=%d", b.Len(), b.Cap())
	}
	if !slices.Equal(b.Bytes(), []int{0, 1, 2, 3, 4}) {
		t.Errorf("got=%v", b.Bytes())
	}
}

func TestBuffer_ReusesFreedSlots(t *testing.T) {
	b := N[int](4)
	b.Write([]int{1, 2, 3})
	b.Read(make([]int, 2))
	// Head is at 2: three more values fit by wrapping, without growth.
	b.Write([]int{4, 5, 6})
	if b.Cap() != 4 {
		t.Errorf("Cap() = %d, want 4", b.Cap())
	}
	got := make([]int, 8)
	n, err := b.Read(got)
	if err != nil || !slices.Equal(got[:n], []int{3, 4, 5, 6}) {
		t.Errorf("Read got=%v, %v", got[:n], err)
	}
}

func TestBuffer_NextIsFIFO(t *testing.T) {
	b := N[string](0)
	b.Write([]string{"a", "b"})
	b.Add("c")
	b.CloseWrite()

	var got []string
	for {
		v, err := b.Next()
		if errors.Is(err, ErrIteratorDone) {
			break
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got=%v", got)
	}
}

func TestBuffer_ReaderWaitsForWriter(t *testing.T) {
	b := N[byte](4)
	var wg sync.WaitGroup
	var got []byte
	wg.Go(func() {
		var err error
		got, err = io.ReadAll(b)
		if err != nil {
			t.Errorf("ReadAll error: %v", err)
		}
	})

	for _, chunk := range []string{"ring ", "buffers ", "wrap"} {
		time.Sleep(time.Millisecond)
		b.Write([]byte(chunk))
	}
	b.CloseWrite()
	wg.Wait()

	if string(got) != "ring buffers wrap" {
		t.Errorf("got=%q", got)
	}
}

func TestBuffer_Discard(t *testing.T) {
	b := N[int](8)
	b.Write([]int{1, 2, 3, 4})

	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{1, 2, 3, 4}},
		{-1, []int{1, 2, 3, 4}},
		{1, []int{2, 3, 4}},
		{10, []int{}},
	}
	for _, tt := range tests {
		if err := b.Discard(tt.n); err != nil {
			t.Fatalf("Discard(%d) error: %v", tt.n, err)
		}
		if got := b.Bytes(); !slices.Equal(got, tt.want) {
			t.Errorf("after Discard(%d) got=%v, want %v", tt.n, got, tt.want)
		}
	}
	if b.Cap() != 8 {
		t.Errorf("Cap() = %d, want 8", b.Cap())
	}
}

func TestBuffer_Reset(t *testing.T) {
	b := N[int](2)
	b.Write([]int{1, 2, 3})
	capBefore := b.Cap()
	b.Reset()
	if b.Len() != 0 || b.Cap() != capBefore {
		t.Errorf("Len=%d Cap=%d, want 0 and %d", b.Len(), b.Cap(), capBefore)
	}
}

func TestBuffer_CloseWrite(t *testing.T) {
	b := N[int](2)
	b.Write([]int{7})
	b.CloseWrite()
	b.CloseWrite()

	if _, err := b.Write([]int{8}); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Write got=%v", err)
	}
	if err := b.Add(8); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Add got=%v", err)
	}

	got := make([]int, 2)
	if n, err := b.Read(got); n != 1 || err != nil || got[0] != 7 {
		t.Errorf("Read got=%v n=%d err=%v", got, n, err)
	}
	if _, err := b.Read(got); err != io.EOF {
		t.Errorf("Read on drained buffer got=%v, want EOF", err)
	}
}

func TestBuffer_CloseWithError(t *testing.T) {
	b := N[int](2)
	boom := errors.New("boom")

	done := make(chan error, 1)
	go func() {
		_, err := b.Next()
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	b.CloseWithError(boom)
	b.CloseWithError(errors.New("ignored"))

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Errorf("Next got=%v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("reader not woken by CloseWithError")
	}

	if !errors.Is(b.Error(), boom) {
		t.Errorf("Error() got=%v", b.Error())
	}
	if _, err := b.Write([]int{1}); !errors.Is(err, boom) {
		t.Errorf("Write got=%v", err)
	}
	if err := b.Discard(1); !errors.Is(err, boom) {
		t.Errorf("Discard got=%v", err)
	}
	if _, err := b.Read(make([]int, 1)); !errors.Is(err, boom) {
		t.Errorf("Read got=%v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after CloseWithError", b.Len())
	}
}

func TestBuffer_Close(t *testing.T) {
	b := N[int](2)
	b.Add(1)
	if err := b.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !errors.Is(b.Error(), io.ErrClosedPipe) {
		t.Errorf("Error() got=%v", b.Error())
	}
	if err := b.CloseWithError(nil); err != nil {
		t.Errorf("CloseWithError(nil) got=%v", err)
	}
}
