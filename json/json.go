// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"
)

// Codec implements replacer.Codec for JSON.
// HTML characters are written as-is rather than escaped.
type Codec struct{}

// New returns a JSON codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for JSON.
func (c *Codec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as compact JSON.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return c.MarshalIndent(v, "", "")
}

// MarshalIndent encodes v as JSON with each element on its own line.
func (c *Codec) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
