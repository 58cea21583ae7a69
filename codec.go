package replacer

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// IndentMarshaler is implemented by codecs with a human-readable indented form.
// Print uses it when available and falls back to Marshal otherwise.
type IndentMarshaler interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}
