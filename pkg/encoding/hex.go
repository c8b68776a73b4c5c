// Package encoding provides byte types with readable text encodings.
package encoding

import (
	"encoding/hex"
	"fmt"
)

// HexData is a byte slice that encodes as a lowercase hex string in JSON,
// YAML and any other format that honors encoding.TextMarshaler.
type HexData []byte

// MarshalText implements encoding.TextMarshaler.
func (h HexData) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(out, h)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Upper and lower case
// digits are accepted.
func (h *HexData) UnmarshalText(text []byte) error {
	out := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(out, text); err != nil {
		return fmt.Errorf("encoding: hex data: %w", err)
	}
	*h = out
	return nil
}

// String returns the hex form.
func (h HexData) String() string {
	return hex.EncodeToString(h)
}
