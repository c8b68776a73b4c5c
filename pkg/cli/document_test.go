package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type testDoc struct {
	Name   string   `yaml:"name" json:"name"`
	Fields []string `yaml:"fields" json:"fields"`
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"yaml", "layout.yaml", "name: frame\nfields: [a, b]\n"},
		{"yml", "layout.yml", "name: frame\nfields:\n  - a\n  - b\n"},
		{"json", "layout.json", `{"name":"frame","fields":["a","b"]}`},
		{"unknown extension", "layout", `{"name":"frame","fields":["a","b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc testDoc
			if err := ParseDocument([]byte(tt.data), tt.file, &doc); err != nil {
				t.Fatalf("ParseDocument error: %v", err)
			}
			if doc.Name != "frame" || len(doc.Fields) != 2 || doc.Fields[1] != "b" {
				t.Errorf("got=%+v", doc)
			}
		})
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	var doc testDoc
	if err := ParseDocument([]byte("{not json"), "x.json", &doc); err == nil {
		t.Error("expected JSON error")
	}
	if err := ParseDocument([]byte("name: [unclosed"), "x.yaml", &doc); err == nil {
		t.Error("expected YAML error")
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte("name: frame\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var doc testDoc
	if err := LoadDocument(path, &doc); err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if doc.Name != "frame" {
		t.Errorf("Name = %q, want %q", doc.Name, "frame")
	}

	if err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"), &doc); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveDocument(t *testing.T) {
	dir := t.TempDir()
	want := testDoc{Name: "frame", Fields: []string{"a", "b"}}

	for _, file := range []string{"doc.yaml", "doc.json"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(dir, file)
			if err := SaveDocument(path, want); err != nil {
				t.Fatalf("SaveDocument error: %v", err)
			}
			var got testDoc
			if err := LoadDocument(path, &got); err != nil {
				t.Fatalf("LoadDocument error: %v", err)
			}
			if got.Name != want.Name || len(got.Fields) != 2 || got.Fields[0] != "a" {
				t.Errorf("got=%+v", got)
			}
		})
	}

	if err := SaveDocument(filepath.Join(dir, "missing", "doc.yaml"), want); err == nil {
		t.Error("expected error for missing directory")
	}
}
