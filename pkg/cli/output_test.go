package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]any{
		"name":  "test",
		"value": 123,
	}

	if err := Output(data, OutputOptions{Format: FormatJSON, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("name = %v, want %q", result["name"], "test")
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("Output should be indented by default, got: %s", buf.String())
	}
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer

	if err := Output(map[string]any{"name": "test"}, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "name: test") {
		t.Errorf("Output should contain 'name: test', got: %s", buf.String())
	}
}

func TestOutput_Msgpack(t *testing.T) {
	var buf bytes.Buffer

	if err := Output(map[string]int{"count": 42}, OutputOptions{Format: FormatMsgpack, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]int
	if err := msgpack.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid msgpack output: %v", err)
	}
	if result["count"] != 42 {
		t.Errorf("count = %d, want 42", result["count"])
	}
}

func TestOutput_Raw(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"bytes", []byte("raw binary data"), "raw binary data"},
		{"string", "raw string data", "raw string data"},
		{"other falls back to yaml", map[string]int{"count": 42}, "count: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Output(tt.data, OutputOptions{Format: FormatRaw, Writer: &buf}); err != nil {
				t.Fatalf("Output error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestOutput_Hex(t *testing.T) {
	var buf bytes.Buffer

	if err := Output([]byte("kps"), OutputOptions{Format: FormatHex, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "00000000  6b 70 73") {
		t.Errorf("Output = %q", buf.String())
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	if err := Output("data", OutputOptions{Format: "invalid", Writer: &buf}); err == nil {
		t.Error("Output should fail for unsupported format")
	}
}

func TestOutput_ToFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "output.json")

	if err := Output(map[string]string{"key": "value"}, OutputOptions{Format: FormatJSON, File: filePath}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	var result map[string]string
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Invalid JSON in file: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestEncoder_Stream(t *testing.T) {
	t.Run("json lines", func(t *testing.T) {
		var buf bytes.Buffer
		enc, err := NewEncoder(&buf, FormatJSON, "")
		if err != nil {
			t.Fatal(err)
		}
		enc.Encode(map[string]int{"n": 1})
		enc.Encode(map[string]int{"n": 2})
		if buf.String() != "{\"n\":1}\n{\"n\":2}\n" {
			t.Errorf("got=%q", buf.String())
		}
	})

	t.Run("yaml documents", func(t *testing.T) {
		var buf bytes.Buffer
		enc, _ := NewEncoder(&buf, FormatYAML, "")
		enc.Encode(map[string]int{"n": 1})
		enc.Encode(map[string]int{"n": 2})
		if buf.String() != "n: 1\n---\nn: 2\n" {
			t.Errorf("got=%q", buf.String())
		}
	})

	t.Run("msgpack values", func(t *testing.T) {
		var buf bytes.Buffer
		enc, _ := NewEncoder(&buf, FormatMsgpack, "")
		enc.Encode(1)
		enc.Encode("two")

		dec := msgpack.NewDecoder(&buf)
		n, err := dec.DecodeInt()
		if err != nil || n != 1 {
			t.Errorf("first = %d, %v", n, err)
		}
		s, err := dec.DecodeString()
		if err != nil || s != "two" {
			t.Errorf("second = %q, %v", s, err)
		}
	})
}

func TestOutputFormat_Constants(t *testing.T) {
	for format, want := range map[OutputFormat]string{
		FormatYAML:    "yaml",
		FormatJSON:    "json",
		FormatMsgpack: "msgpack",
		FormatRaw:     "raw",
		FormatHex:     "hex",
	} {
		if string(format) != want {
			t.Errorf("format = %q, want %q", format, want)
		}
	}
}
