package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Foxcapades/kps/pkg/buffer"
	"github.com/Foxcapades/kps/pkg/cli"
	"github.com/Foxcapades/kps/pkg/source"
)

const appName = "kps"

var (
	// Global flags
	cfgFile     string
	profileName string
	outputFile  string
	format      string
	byteOrder   string
	compression string
	capacity    int
	verbose     bool

	// Global configuration (loaded at init time)
	globalConfig *cli.Config
	configErr    error
)

var rootCmd = &cobra.Command{
	Use:   "kps",
	Short: "Ring buffer stream tools",
	Long: `kps - decode and inspect binary streams through a ring buffer.

Streams are read through a fixed-capacity byte ring that is topped up from
the input and decoded in place, so records may straddle the end of the
ring's storage.

Configuration is stored in ~/.kps/kps/ and supports multiple profiles,
similar to kubectl's context management. A profile carries defaults for the
ring capacity, byte order, output format, compression and layout.

Examples:
  # Decode sensor frames from a zstd file as JSON lines
  kps decode frames.zst -l "id:u16, seq:u32le, temp:f32" -F json

  # Keep only hot readings
  kps decode frames.bin -l @sensor -q 'select(.temp > 30)'

  # Show how a 16-byte ring wraps after three fills
  kps inspect frames.bin --capacity 16 --fills 3 --consume 6

  # Save defaults in a profile
  kps config add-profile wire --capacity 256 --byte-order little
  kps config use-profile wire`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.kps/kps/config.yaml)")
	pf.StringVarP(&profileName, "profile", "p", "", "profile name to use")
	pf.StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	pf.StringVarP(&format, "format", "F", "", "output format: yaml, json, msgpack, raw, hex")
	pf.StringVar(&byteOrder, "byte-order", "", "default byte order: big or little")
	pf.StringVar(&compression, "compression", "", "input compression: auto, none, gzip, zstd, snappy, zlib")
	pf.IntVar(&capacity, "capacity", 0, "ring capacity in bytes")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	globalConfig, configErr = cli.LoadConfigWithPath(appName, cfgFile)
	if configErr != nil {
		slog.Warn("config unavailable, using defaults", "error", configErr)
	}
}

// getConfig returns the global configuration or the error that prevented
// loading it.
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configErr != nil {
			return nil, configErr
		}
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// settings are the effective options of a command: the resolved profile
// with explicit flags applied on top.
type settings struct {
	Capacity    int
	Order       buffer.ByteOrder
	Format      cli.OutputFormat
	Compression source.Compression
	Layout      string
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	p := cli.DefaultProfile()
	if cfg, err := getConfig(); err == nil {
		if p, err = cfg.ResolveProfile(profileName); err != nil {
			return nil, err
		}
	} else if profileName != "" {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") {
		p.Capacity = capacity
	}
	if flags.Changed("byte-order") {
		p.ByteOrder = byteOrder
	}
	if flags.Changed("format") {
		p.Format = format
	}
	if flags.Changed("compression") {
		p.Compression = compression
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &settings{
		Capacity: p.Capacity,
		Format:   cli.OutputFormat(p.Format),
		Layout:   p.Layout,
	}
	var err error
	if s.Order, err = p.Order(); err != nil {
		return nil, err
	}
	if s.Compression, err = source.ParseCompression(p.Compression); err != nil {
		return nil, err
	}
	slog.Debug("settings", "profile", p.Name, "capacity", s.Capacity, "order", s.Order,
		"format", s.Format, "compression", s.Compression)
	return s, nil
}

// openOutput returns the destination for results and a function to close it.
func openOutput() (io.Writer, func() error, error) {
	if outputFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// outputResult writes a single result in the effective format.
func outputResult(result any, f cli.OutputFormat) error {
	return cli.Output(result, cli.OutputOptions{
		Format: f,
		File:   outputFile,
	})
}
