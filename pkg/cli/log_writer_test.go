package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestLogWriter(t *testing.T) {
	w := NewLogWriter(3)

	fmt.Fprintf(w, "one\ntwo\n")
	fmt.Fprintf(w, "three\n")
	fmt.Fprintf(w, "four\n")

	if got := w.Lines(); !slices.Equal(got, []string{"two", "three", "four"}) {
		t.Errorf("Lines() = %v", got)
	}

	var sent []string
	for len(w.Channel()) > 0 {
		sent = append(sent, <-w.Channel())
	}
	if !slices.Equal(sent, []string{"one", "two", "three", "four"}) {
		t.Errorf("channel = %v", sent)
	}
}

func TestLogWriter_Slog(t *testing.T) {
	w := NewLogWriter(10)
	log := slog.New(slog.NewTextHandler(w, nil))
	log.Info("fill", "n", 6)

	lines := w.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "msg=fill n=6") {
		t.Errorf("Lines() = %v", lines)
	}
}
