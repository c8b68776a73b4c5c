package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Foxcapades/kps/pkg/buffer"
)

// ErrInvalidLayout is returned for malformed layout expressions and files.
var ErrInvalidLayout = errors.New("layout: invalid layout")

// Kind is the wire type of a field.
type Kind uint8

const (
	Uint8 Kind = iota + 1
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float32
	Float64
	// Skip discards Len bytes.
	Skip
	// Bytes keeps Len raw bytes.
	Bytes
)

var kindNames = map[Kind]string{
	Uint8: "u8", Int8: "i8",
	Uint16: "u16", Int16: "i16",
	Uint32: "u32", Int32: "i32",
	Uint64: "u64", Int64: "i64",
	Float32: "f32", Float64: "f64",
	Skip: "skip", Bytes: "bytes",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// width returns the encoded size of fixed-width kinds and 0 otherwise.
func (k Kind) width() int {
	switch k {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	}
	return 0
}

// Field is one fixed-size element of a record.
type Field struct {
	Name string
	Kind Kind
	Len  int // Skip and Bytes only

	// Order is always BigEndian for single-byte and raw fields.
	Order buffer.ByteOrder
}

// Size returns the number of bytes the field occupies.
func (f Field) Size() int {
	if w := f.Kind.width(); w > 0 {
		return w
	}
	return f.Len
}

// Hidden reports whether the field is consumed without being emitted.
func (f Field) Hidden() bool {
	return f.Kind == Skip || f.Name == "_"
}

func (f Field) String() string {
	switch {
	case f.Kind == Skip || f.Kind == Bytes:
		return fmt.Sprintf("%s:%s%d", f.Name, f.Kind, f.Len)
	case f.Kind.width() > 1:
		return fmt.Sprintf("%s:%s%s", f.Name, f.Kind, orderSuffix(f.Order))
	default:
		return fmt.Sprintf("%s:%s", f.Name, f.Kind)
	}
}

func orderSuffix(o buffer.ByteOrder) string {
	if o == buffer.LittleEndian {
		return "le"
	}
	return "be"
}

// Layout is an ordered list of fields making up one fixed-size record.
type Layout struct {
	Name   string
	Fields []Field
}

// Size returns the record size in bytes.
func (l *Layout) Size() int {
	n := 0
	for _, f := range l.Fields {
		n += f.Size()
	}
	return n
}

// String renders the layout as an expression Parse accepts, with every byte
// order spelled out.
func (l *Layout) String() string {
	parts := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// File returns the document form of l. Field types carry their byte order,
// so the file does not depend on a default.
func (l *Layout) File() *File {
	f := &File{Name: l.Name, Fields: make([]FieldSpec, len(l.Fields))}
	for i, fd := range l.Fields {
		f.Fields[i] = FieldSpec{
			Name: fd.Name,
			Type: strings.TrimPrefix(fd.String(), fd.Name+":"),
		}
	}
	return f
}

// Parse parses a layout expression such as
//
//	magic:u32, len:u16le, temp:f32, _:skip4, id:bytes16
//
// Multi-byte numeric types take an optional "le" or "be" suffix; without
// one they use order. Entries are separated by commas or whitespace.
func Parse(expr string, order buffer.ByteOrder) (*Layout, error) {
	entries := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	specs := make([]FieldSpec, 0, len(entries))
	for _, e := range entries {
		name, typ, ok := strings.Cut(e, ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q is not name:type", ErrInvalidLayout, e)
		}
		specs = append(specs, FieldSpec{Name: name, Type: typ})
	}
	return build("", specs, order)
}

// File is the YAML or JSON form of a layout.
type File struct {
	Name      string      `yaml:"name,omitempty" json:"name,omitempty"`
	ByteOrder string      `yaml:"byte_order,omitempty" json:"byte_order,omitempty"`
	Fields    []FieldSpec `yaml:"fields" json:"fields"`

	// Filter is an optional jq expression applied to every record.
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`
}

// FieldSpec is one field of a File. Order overrides both the type suffix and
// the file's byte order.
type FieldSpec struct {
	Name  string `yaml:"name" json:"name"`
	Type  string `yaml:"type" json:"type"`
	Order string `yaml:"order,omitempty" json:"order,omitempty"`
}

// Layout builds the layout described by f. order is used when f sets no
// byte order.
func (f *File) Layout(order buffer.ByteOrder) (*Layout, error) {
	if f.ByteOrder != "" {
		o, err := buffer.ParseByteOrder(f.ByteOrder)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		order = o
	}
	return build(f.Name, f.Fields, order)
}

func build(name string, specs []FieldSpec, order buffer.ByteOrder) (*Layout, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidLayout)
	}
	l := &Layout{Name: name, Fields: make([]Field, 0, len(specs))}
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		f, err := parseField(s, order)
		if err != nil {
			return nil, err
		}
		if !f.Hidden() {
			if seen[f.Name] {
				return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidLayout, f.Name)
			}
			seen[f.Name] = true
		}
		l.Fields = append(l.Fields, f)
	}
	return l, nil
}

func parseField(s FieldSpec, order buffer.ByteOrder) (Field, error) {
	name := strings.TrimSpace(s.Name)
	typ := strings.ToLower(strings.TrimSpace(s.Type))
	if name == "" {
		return Field{}, fmt.Errorf("%w: field with type %q has no name", ErrInvalidLayout, s.Type)
	}
	f := Field{Name: name, Order: order}

	for _, k := range []Kind{Skip, Bytes} {
		if rest, ok := strings.CutPrefix(typ, k.String()); ok {
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 {
				return Field{}, fmt.Errorf("%w: field %q: %s needs a positive length", ErrInvalidLayout, name, k)
			}
			return Field{Name: name, Kind: k, Len: n}, nil
		}
	}

	switch {
	case strings.HasSuffix(typ, "le"):
		f.Order, typ = buffer.LittleEndian, strings.TrimSuffix(typ, "le")
	case strings.HasSuffix(typ, "be"):
		f.Order, typ = buffer.BigEndian, strings.TrimSuffix(typ, "be")
	}
	for k, kn := range kindNames {
		if kn == typ && k.width() > 0 {
			f.Kind = k
		}
	}
	if f.Kind == 0 {
		return Field{}, fmt.Errorf("%w: field %q: unknown type %q", ErrInvalidLayout, name, s.Type)
	}
	if s.Order != "" {
		o, err := buffer.ParseByteOrder(s.Order)
		if err != nil {
			return Field{}, fmt.Errorf("%w: field %q: %w", ErrInvalidLayout, name, err)
		}
		f.Order = o
	}
	if f.Kind.width() == 1 {
		f.Order = buffer.BigEndian
	}
	return f, nil
}
