package cli

import (
	"strings"

	"github.com/Foxcapades/kps/pkg/buffer"
)

// LogBuffer keeps the most recent log lines, dropping the oldest when full.
type LogBuffer = buffer.WindowBuffer[string]

// NewLogBuffer creates a new buffer holding at most maxSize lines.
func NewLogBuffer(maxSize int) *LogBuffer {
	return buffer.WindowN[string](maxSize)
}

// LogWriter implements io.Writer and captures log output for display.
// Lines are kept in a LogBuffer and also sent, without blocking, on a
// notification channel.
type LogWriter struct {
	buf *LogBuffer
	ch  chan string
}

// NewLogWriter creates a new log writer with the given max lines.
func NewLogWriter(maxLines int) *LogWriter {
	return &LogWriter{
		buf: NewLogBuffer(maxLines),
		ch:  make(chan string, 100),
	}
}

// Write implements io.Writer. Multi-line input is split on newlines.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimRight(string(p), "\n")
	for line := range strings.SplitSeq(text, "\n") {
		_ = w.buf.Add(line)

		select {
		case w.ch <- line:
		default:
		}
	}
	return len(p), nil
}

// Lines returns all buffered lines, oldest first.
func (w *LogWriter) Lines() []string {
	return w.buf.Bytes()
}

// Channel returns the notification channel for new lines.
func (w *LogWriter) Channel() <-chan string {
	return w.ch
}
