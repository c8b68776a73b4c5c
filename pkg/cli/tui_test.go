package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Foxcapades/kps/pkg/buffer"
)

func TestRingView(t *testing.T) {
	rb := buffer.BytesRing(8)
	rb.Write([]byte{1, 2, 3, 4, 5, 6})
	rb.RemoveFront(5)
	rb.Write([]byte{0xaa, 0xbb, 0xcc})

	// Storage: [cc . . . . 06 aa bb] with head at 5.
	out := RingView{
		Styles:  NewStyles(DefaultTheme),
		Title:   "ring",
		Ring:    rb,
		Columns: 4,
		Steps:   []string{"wrote 6", "removed 5"},
	}.Render()

	for _, want := range []string{"cap 8, len 4, head 5, wrapped, 50.0%", "06", "aa", "bb", "cc", "0004", "steps", "removed 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "02") || strings.Contains(out, "05") {
		t.Errorf("removed byte rendered:\n%s", out)
	}
	if n := strings.Count(out, "··"); n != 4 {
		t.Errorf("free cells = %d, want 4", n)
	}
	if w := lipgloss.Width(out); w == 0 {
		t.Error("empty render")
	}
}

func TestRingView_Empty(t *testing.T) {
	out := RingView{Styles: NewStyles(DefaultTheme), Title: "ring", Ring: buffer.BytesRing(0)}.Render()
	if !strings.Contains(out, "no storage") {
		t.Errorf("render = %s", out)
	}
}
