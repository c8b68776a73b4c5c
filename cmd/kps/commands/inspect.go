package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/pkg/buffer"
	"github.com/Foxcapades/kps/pkg/cli"
	"github.com/Foxcapades/kps/pkg/encoding"
	"github.com/Foxcapades/kps/pkg/source"
)

var (
	inspectFills   int
	inspectConsume int
	inspectColumns int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Fill a ring from a stream and render its storage",
	Long: `Fill a byte ring from a file or stdin and render its physical storage.

Each round fills the ring's free space from the input, then consumes
--consume bytes from the front. After the last round the storage is drawn
cell by cell: the head cell is underlined and free cells are shown as ··.
The log of every round is listed under the cells.

With --format other than the default, the ring state is printed as a
document instead, with the buffered bytes in hex.

Examples:
  kps inspect frames.bin --capacity 16 --fills 3 --consume 6
  kps inspect frames.bin --capacity 32 -F json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		src, err := source.Open(path, s.Compression)
		if err != nil {
			return err
		}
		defer src.Close()

		steps := cli.NewLogWriter(2*max(inspectFills, 0) + 1)
		log := slog.New(slog.NewTextHandler(steps, &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
					return slog.Attr{}
				}
				return a
			},
		}))

		rb := buffer.BytesRing(s.Capacity)
		if err := fillRounds(cmd.Context(), log, rb, src, inspectFills, inspectConsume); err != nil {
			return err
		}

		if !cmd.Flags().Changed("format") {
			view := cli.RingView{
				Styles:  cli.NewStyles(cli.DefaultTheme),
				Title:   path,
				Ring:    rb,
				Columns: inspectColumns,
				Steps:   steps.Lines(),
			}
			w, closeOut, err := openOutput()
			if err != nil {
				return err
			}
			defer closeOut()
			_, err = fmt.Fprintln(w, view.Render())
			return err
		}
		return outputResult(ringState(rb, steps.Lines()), s.Format)
	},
}

// fillRounds fills rb from src and drops consume bytes from its front, rounds
// times, logging the ring after each step. It stops early at end of input.
func fillRounds(ctx context.Context, log *slog.Logger, rb *buffer.ByteRing, src io.Reader, rounds, consume int) error {
	for i := range rounds {
		n, err := rb.Fill(src)
		if errors.Is(err, io.EOF) {
			log.InfoContext(ctx, "eof", "round", i+1)
			return nil
		}
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "fill", "round", i+1, "n", n, "len", rb.Len(), "head", rb.Head(), "layout", rb.Layout())
		if consume > 0 {
			rb.RemoveFront(consume)
			log.InfoContext(ctx, "consume", "round", i+1, "n", consume, "len", rb.Len(), "head", rb.Head())
		}
	}
	return nil
}

// ringDoc is the document form of a ring's state.
type ringDoc struct {
	Capacity int              `json:"capacity" yaml:"capacity"`
	Len      int              `json:"len" yaml:"len"`
	Head     int              `json:"head" yaml:"head"`
	Layout   string           `json:"layout" yaml:"layout"`
	Sum64    string           `json:"sum64" yaml:"sum64"`
	Data     encoding.HexData `json:"data" yaml:"data"`
	Steps    []string         `json:"steps,omitempty" yaml:"steps,omitempty"`
}

func ringState(rb *buffer.ByteRing, steps []string) ringDoc {
	return ringDoc{
		Capacity: rb.Cap(),
		Len:      rb.Len(),
		Head:     rb.Head(),
		Layout:   rb.Layout().String(),
		Sum64:    fmt.Sprintf("%016x", rb.Sum64()),
		Data:     rb.ToSlice(),
		Steps:    steps,
	}
}

func init() {
	inspectCmd.Flags().IntVar(&inspectFills, "fills", 1, "number of fill rounds")
	inspectCmd.Flags().IntVar(&inspectConsume, "consume", 0, "bytes consumed from the front after each fill")
	inspectCmd.Flags().IntVar(&inspectColumns, "columns", 16, "cells per row")

	rootCmd.AddCommand(inspectCmd)
}
