package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatYAML outputs as YAML (default for terminal)
	FormatYAML OutputFormat = "yaml"
	// FormatJSON outputs as JSON, one document per line when streaming
	FormatJSON OutputFormat = "json"
	// FormatMsgpack outputs concatenated MessagePack values
	FormatMsgpack OutputFormat = "msgpack"
	// FormatRaw outputs bytes and strings as-is, other values as YAML
	FormatRaw OutputFormat = "raw"
	// FormatHex outputs a hex dump of bytes
	FormatHex OutputFormat = "hex"
)

// OutputOptions configures output behavior
type OutputOptions struct {
	// Format is the output format
	Format OutputFormat

	// File is the output file path (empty for stdout)
	File string

	// Indent is the indentation for JSON output. Streaming JSON is compact
	// unless Indent is set.
	Indent string

	// Writer is an optional custom writer (overrides File)
	Writer io.Writer
}

// Encoder writes a stream of values in one output format.
type Encoder struct {
	w      io.Writer
	format OutputFormat
	json   *json.Encoder
	mp     *msgpack.Encoder
	n      int
}

// NewEncoder returns an Encoder writing format to w.
func NewEncoder(w io.Writer, format OutputFormat, indent string) (*Encoder, error) {
	e := &Encoder{w: w, format: format}
	switch format {
	case FormatJSON:
		e.json = json.NewEncoder(w)
		if indent != "" {
			e.json.SetIndent("", indent)
		}
	case FormatMsgpack:
		e.mp = msgpack.NewEncoder(w)
		e.mp.SetCustomStructTag("json")
	case FormatYAML, "":
		e.format = FormatYAML
	case FormatRaw, FormatHex:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return e, nil
}

// Encode writes v. YAML values after the first are separated by a document
// marker.
func (e *Encoder) Encode(v any) error {
	defer func() { e.n++ }()
	switch e.format {
	case FormatJSON:
		return e.json.Encode(v)
	case FormatMsgpack:
		return e.mp.Encode(v)
	case FormatRaw:
		return e.raw(v)
	case FormatHex:
		return e.hex(v)
	default:
		return e.yaml(v)
	}
}

func (e *Encoder) yaml(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if e.n > 0 {
		if _, err := io.WriteString(e.w, "---\n"); err != nil {
			return err
		}
	}
	_, err = e.w.Write(data)
	return err
}

func (e *Encoder) raw(v any) error {
	switch v := v.(type) {
	case []byte:
		_, err := e.w.Write(v)
		return err
	case string:
		_, err := io.WriteString(e.w, v)
		return err
	default:
		return e.yaml(v)
	}
}

func (e *Encoder) hex(v any) error {
	switch v := v.(type) {
	case []byte:
		d := hex.Dumper(e.w)
		if _, err := d.Write(v); err != nil {
			return err
		}
		return d.Close()
	default:
		return e.yaml(v)
	}
}

// Output writes the result to the configured destination
func Output(result any, opts OutputOptions) error {
	var w io.Writer = os.Stdout

	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	enc, err := NewEncoder(w, opts.Format, indent)
	if err != nil {
		return err
	}
	return enc.Encode(result)
}

// PrintSuccess prints a success message with checkmark
func PrintSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
