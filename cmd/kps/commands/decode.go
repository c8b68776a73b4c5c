package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/pkg/buffer"
	"github.com/Foxcapades/kps/pkg/cli"
	"github.com/Foxcapades/kps/pkg/layout"
	"github.com/Foxcapades/kps/pkg/source"
)

var (
	decodeLayout    string
	decodeQuery     string
	decodeLimit     int
	decodeStats     bool
	decodeReadahead int
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode fixed-size binary records from a stream",
	Long: `Decode fixed-size binary records from a file or stdin ("-" or no argument).

The record layout is a comma-separated list of name:type fields, a path to a
YAML/JSON layout file, or @name for ~/.kps/kps/layouts/<name>.yaml.

Types: u8 i8 u16 i16 u32 i32 u64 i64 f32 f64 (multi-byte types take an
optional le/be suffix), skipN, bytesN. Fields named _ are read but not shown.

Example layout file:

  name: sensor
  byte_order: little
  filter: select(.temp > 30)
  fields:
    - {name: id, type: u16}
    - {name: temp, type: f32}
    - {name: _, type: skip2}

Examples:
  kps decode frames.bin -l "magic:u32, len:u16le, temp:f32"
  kps decode frames.zst -l @sensor --readahead 65536
  cat frames.bin | kps decode -l @sensor -F json -q '.temp'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		ref := decodeLayout
		if ref == "" {
			ref = s.Layout
		}
		l, filter, err := loadLayout(ref, s.Order)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("query") {
			if filter, err = layout.ParseFilter(decodeQuery); err != nil {
				return err
			}
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		src, err := source.Open(path, s.Compression)
		if err != nil {
			return err
		}
		if decodeReadahead > 0 {
			src = source.Readahead(src, decodeReadahead)
		}
		defer src.Close()

		dec, err := layout.NewDecoder(src, l, max(s.Capacity, l.Size()))
		if err != nil {
			return err
		}
		slog.Debug("decoding", "path", path, "layout", l.String(), "record_size", l.Size(), "capacity", dec.Ring().Cap())

		w, closeOut, err := openOutput()
		if err != nil {
			return err
		}
		defer closeOut()
		enc, err := cli.NewEncoder(w, s.Format, "")
		if err != nil {
			return err
		}

		for rec, err := range dec.Records() {
			if err != nil {
				return err
			}
			outs, err := filter.Apply(rec)
			if err != nil {
				return fmt.Errorf("record %d: %w", dec.Stats().Records-1, err)
			}
			for _, v := range outs {
				if err := enc.Encode(v); err != nil {
					return err
				}
			}
			if decodeLimit > 0 && dec.Stats().Records >= decodeLimit {
				break
			}
		}

		if decodeStats {
			st := dec.Stats()
			slog.Info("decoded", "records", st.Records, "fills", st.Fills, "bytes", cli.FormatBytes(st.Bytes))
		}
		return nil
	},
}

// loadLayout resolves a layout reference to a layout and the filter stored
// with it, if any.
func loadLayout(ref string, order buffer.ByteOrder) (*layout.Layout, *layout.Filter, error) {
	if ref == "" {
		return nil, nil, errors.New("--layout is required (or set layout in the profile)")
	}
	if paths, err := cli.NewPaths(appName); err == nil {
		ref = paths.ResolveLayout(ref)
	}

	if _, err := os.Stat(ref); err != nil {
		l, err := layout.Parse(ref, order)
		return l, nil, err
	}

	var f layout.File
	if err := cli.LoadDocument(ref, &f); err != nil {
		return nil, nil, err
	}
	l, err := f.Layout(order)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ref, err)
	}
	filter, err := layout.ParseFilter(f.Filter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ref, err)
	}
	return l, filter, nil
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeLayout, "layout", "l", "", "record layout expression, file or @name")
	decodeCmd.Flags().StringVarP(&decodeQuery, "query", "q", "", "jq expression applied to each record")
	decodeCmd.Flags().IntVarP(&decodeLimit, "limit", "n", 0, "stop after this many records (0 = all)")
	decodeCmd.Flags().BoolVar(&decodeStats, "stats", false, "log decoder statistics when done")
	decodeCmd.Flags().IntVar(&decodeReadahead, "readahead", 0, "decompress on a separate goroutine through a queue of this many bytes (0 = off)")

	rootCmd.AddCommand(decodeCmd)
}
