package layout

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

var testRecord = Record{
	{"zeta", uint16(7)},
	{"alpha", int8(-3)},
	{"temp", float32(1.5)},
	{"big", uint64(math.MaxUint64)},
	{"raw", []byte{0xde, 0xad}},
}

func TestRecord_Get(t *testing.T) {
	if v, ok := testRecord.Get("temp"); !ok || v != float32(1.5) {
		t.Errorf("Get(temp) = %v, %v", v, ok)
	}
	if _, ok := testRecord.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestRecord_Map(t *testing.T) {
	want := map[string]any{
		"zeta":  7,
		"alpha": -3,
		"temp":  1.5,
		"big":   float64(math.MaxUint64),
		"raw":   "dead",
	}
	if diff := cmp.Diff(want, testRecord.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_JSON(t *testing.T) {
	data, err := json.Marshal(testRecord[:3])
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"zeta":7,"alpha":-3,"temp":1.5}` {
		t.Errorf("got=%s", got)
	}
}

func TestRecord_YAML(t *testing.T) {
	data, err := yaml.Marshal(testRecord[:2])
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "zeta: 7\nalpha: -3\n" {
		t.Errorf("got=%q", got)
	}
}

func TestRecord_Msgpack(t *testing.T) {
	data, err := msgpack.Marshal(testRecord)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := msgpack.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if raw, ok := m["raw"].([]byte); !ok || string(raw) != "\xde\xad" {
		t.Errorf("raw = %#v", m["raw"])
	}

	var back Record
	if err := msgpack.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != len(testRecord) {
		t.Fatalf("len = %d", len(back))
	}
	for i, v := range back {
		if v.Name != testRecord[i].Name {
			t.Errorf("field %d = %q, want %q", i, v.Name, testRecord[i].Name)
		}
	}
	if v, _ := back.Get("big"); v != uint64(math.MaxUint64) {
		t.Errorf("big = %#v", v)
	}
}
