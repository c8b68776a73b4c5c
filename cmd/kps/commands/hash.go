package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/pkg/buffer"
	"github.com/Foxcapades/kps/pkg/source"
)

var hashWindow int

var hashCmd = &cobra.Command{
	Use:   "hash [file...]",
	Short: "Hash the tail of a stream through a ring window",
	Long: `Stream each file (or stdin) through a byte ring of --window bytes, dropping
the oldest bytes as new ones arrive, and print the xxhash64 of the bytes left
in the window at the end. Streams whose last --window bytes match hash
equally, whatever their length.

Without --window the ring capacity from the profile is used.

Examples:
  kps hash --window 64 a.bin b.bin
  kps hash --window 1024 -F json capture.zst`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		window := s.Capacity
		if cmd.Flags().Changed("window") {
			window = hashWindow
		}
		if window <= 0 {
			return fmt.Errorf("window must be positive, got %d", window)
		}
		if len(args) == 0 {
			args = []string{"-"}
		}

		results := make([]tailHash, 0, len(args))
		for _, path := range args {
			h, err := hashTail(path, s.Compression, window)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results = append(results, h)
		}

		if !cmd.Flags().Changed("format") {
			w, closeOut, err := openOutput()
			if err != nil {
				return err
			}
			defer closeOut()
			for _, h := range results {
				fmt.Fprintf(w, "%s  %s\n", h.Sum64, h.Path)
			}
			return nil
		}
		return outputResult(results, s.Format)
	},
}

type tailHash struct {
	Path   string `json:"path" yaml:"path"`
	Bytes  int64  `json:"bytes" yaml:"bytes"`
	Window int    `json:"window" yaml:"window"`
	Sum64  string `json:"sum64" yaml:"sum64"`
}

// hashTail streams path through a ring of the given window and hashes what
// remains buffered at the end.
func hashTail(path string, c source.Compression, window int) (tailHash, error) {
	src, err := source.Open(path, c)
	if err != nil {
		return tailHash{}, err
	}
	defer src.Close()

	// The ring holds the window plus room for one read.
	chunk := max(window/4, 1)
	rb := buffer.BytesRing(window + chunk)
	var total int64
	for {
		if rb.Space() == 0 {
			rb.RemoveFront(chunk)
		}
		n, err := rb.Fill(src)
		total += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return tailHash{}, err
		}
	}
	rb.RemoveFront(rb.Len() - window)
	slog.Debug("hashed", "path", path, "bytes", total, "len", rb.Len(), "head", rb.Head())
	return tailHash{
		Path:   path,
		Bytes:  total,
		Window: window,
		Sum64:  fmt.Sprintf("%016x", rb.Sum64()),
	}, nil
}

func init() {
	hashCmd.Flags().IntVar(&hashWindow, "window", 0, "window size in bytes")

	rootCmd.AddCommand(hashCmd)
}
