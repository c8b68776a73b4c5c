package layout

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Value is one named field value of a Record.
type Value struct {
	Name  string
	Value any
}

// Record is a decoded record. Values keep the layout's field order and
// their wire types (uint16, float32, []byte, ...).
type Record []Value

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, v := range r {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Map returns the record as a map of JSON-compatible values: integers become
// int (or float64 when they overflow it), floats become float64 and byte
// fields become hex strings.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, v := range r {
		m[v.Name] = plain(v.Value)
	}
	return m
}

func plain(v any) any {
	switch v := v.(type) {
	case uint8:
		return int(v)
	case int8:
		return int(v)
	case uint16:
		return int(v)
	case int16:
		return int(v)
	case uint32:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint64:
		if v > math.MaxInt {
			return float64(v)
		}
		return int(v)
	case float32:
		return float64(v)
	case []byte:
		return hex.EncodeToString(v)
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler, keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(plain(v.Value))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", v.Name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, keeping field order.
func (r Record) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(r))
	for i, v := range r {
		ms[i] = yaml.MapItem{Key: v.Name, Value: plain(v.Value)}
	}
	return ms, nil
}

// EncodeMsgpack implements msgpack.CustomEncoder. Values keep their wire
// types, so byte fields are encoded as binary.
func (r Record) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(r)); err != nil {
		return err
	}
	for _, v := range r {
		if err := enc.EncodeString(v.Name); err != nil {
			return err
		}
		if err := enc.Encode(v.Value); err != nil {
			return fmt.Errorf("field %q: %w", v.Name, err)
		}
	}
	return nil
}

// DecodeMsgpack implements msgpack.CustomDecoder. Values come back with the
// types msgpack chooses for them.
func (r *Record) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		*r = nil
		return nil
	}
	out := make(Record, 0, n)
	for range n {
		name, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := dec.DecodeInterface()
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out = append(out, Value{Name: name, Value: v})
	}
	*r = out
	return nil
}
