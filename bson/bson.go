// Package bson provides a BSON codec implementation.
package bson

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Codec implements replacer.Codec for BSON.
//
// BSON documents must be maps or structs at the root. Decoding into an
// *any produces plain map[string]any and []any values instead of the
// driver's document types.
type Codec struct{}

// New returns a BSON codec.
func New() *Codec {
	return &Codec{}
}

// ContentType returns the MIME type for BSON.
func (c *Codec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *Codec) Unmarshal(data []byte, v any) error {
	out, ok := v.(*any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*out = plain(doc)
	return nil
}

// plain converts driver document types into plain Go containers.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		return plainMap(t)
	case map[string]any:
		return plainMap(t)
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.A:
		return plainList(t)
	case []any:
		return plainList(t)
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

func plainList(l []any) []any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = plain(v)
	}
	return out
}
