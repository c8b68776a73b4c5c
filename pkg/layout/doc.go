// Package layout decodes streams of fixed-size binary records.
//
// A Layout lists the fields of one record. It is parsed from a compact
// expression or built from a YAML/JSON File:
//
//	l, err := layout.Parse("magic:u32, len:u16le, temp:f32, _:skip4", buffer.BigEndian)
//
// A Decoder buffers the stream in a buffer.ByteRing, topping it up with
// Fill, and decodes each field with the ring's codec:
//
//	dec, err := layout.NewDecoder(r, l, 0)
//	for rec, err := range dec.Records() {
//		...
//	}
//
// Records marshal to JSON and YAML in field order and to MessagePack with
// their wire types. A Filter runs a jq query over each record.
package layout
