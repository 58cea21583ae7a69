// Package yaml provides a YAML codec implementation.
package yaml

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// defaultIndent is the number of spaces yaml.v3 nests blocks by.
const defaultIndent = 4

// Codec implements replacer.Codec for YAML.
type Codec struct{}

// New returns a YAML codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for YAML.
func (c *Codec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// MarshalIndent encodes v as YAML nested by the width of indent, without
// the trailing newline. YAML has no line prefix, so prefix is ignored.
func (c *Codec) MarshalIndent(v any, _, indent string) ([]byte, error) {
	width := len(indent)
	if width == 0 {
		width = defaultIndent
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(width)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes YAML data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
