package replacer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zoobzio/replacer/json"
)

// DefaultIndent is the indentation Print uses unless WithIndent is given.
const DefaultIndent = "  "

// Serializer renders value graphs through a Policy and a Codec.
//
// Serializers are safe for concurrent use. Output written by Print is
// serialized so concurrent prints never interleave.
type Serializer struct {
	codec    Codec
	policy   *Policy
	indent   string
	maxDepth int

	mu  sync.Mutex // guards writes to out
	out io.Writer
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithCodec sets the codec used to render and parse. Defaults to JSON.
func WithCodec(c Codec) Option {
	return func(s *Serializer) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithPolicy sets the policy consulted for every key. A nil policy applies
// the encoder's native rules only.
func WithPolicy(p *Policy) Option {
	return func(s *Serializer) {
		s.policy = p
	}
}

// WithOutput sets where Print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Serializer) {
		if w != nil {
			s.out = w
		}
	}
}

// WithIndent sets the indentation Print uses.
func WithIndent(indent string) Option {
	return func(s *Serializer) {
		s.indent = indent
	}
}

// WithMaxDepth bounds how deeply the encoder descends. Values <= 0 use
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(s *Serializer) {
		s.maxDepth = n
	}
}

// New creates a Serializer.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		codec:    json.New(),
		indent:   DefaultIndent,
		maxDepth: DefaultMaxDepth,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codec returns the serializer's codec.
func (s *Serializer) Codec() Codec {
	return s.codec
}

// Policy returns the serializer's policy, which may be nil.
func (s *Serializer) Policy() *Policy {
	return s.policy
}

func (s *Serializer) replacer() Replacer {
	if s.policy == nil {
		return nil
	}
	return s.policy.Edit
}

// Tree walks v through the policy and returns the plain tree the codec
// renders, without rendering it.
func (s *Serializer) Tree(ctx context.Context, v any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Encode(v, s.replacer(), s.maxDepth)
}

// Marshal walks v through the policy and renders it with the codec.
func (s *Serializer) Marshal(ctx context.Context, v any) ([]byte, error) {
	return s.marshal(ctx, v, false)
}

// MarshalIndent is like Marshal but uses the codec's indented form when it
// has one.
func (s *Serializer) MarshalIndent(ctx context.Context, v any) ([]byte, error) {
	return s.marshal(ctx, v, true)
}

func (s *Serializer) marshal(ctx context.Context, v any, indented bool) ([]byte, error) {
	contentType := s.codec.ContentType()
	typeName := rootTypeName(v)

	start := time.Now()
	emitTransformStart(ctx, contentType, typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitTransformComplete(ctx, contentType, typeName, len(retData), time.Since(start), retErr)
	}()

	tree, err := s.Tree(ctx, v)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	if im, ok := s.codec.(IndentMarshaler); ok && indented {
		retData, err = im.MarshalIndent(tree, "", s.indent)
	} else {
		retData, err = s.codec.Marshal(tree)
	}
	if err != nil {
		retErr = newCodecError(ErrMarshal, contentType, err)
		retData = nil
		return nil, retErr
	}
	return retData, nil
}

// Transform walks v through the policy, renders it, and parses the result
// back into a plain value with the same codec.
func (s *Serializer) Transform(ctx context.Context, v any) (any, error) {
	data, err := s.Marshal(ctx, v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := s.codec.Unmarshal(data, &out); err != nil {
		return nil, newCodecError(ErrUnmarshal, s.codec.ContentType(), err)
	}
	return out, nil
}

// Print writes an indented rendering of v, followed by a newline, to the
// serializer's output.
func (s *Serializer) Print(ctx context.Context, v any) error {
	data, err := s.MarshalIndent(ctx, v)
	if err == nil {
		s.mu.Lock()
		_, err = fmt.Fprintf(s.out, "%s\n", data)
		s.mu.Unlock()
	}
	emitPrintComplete(ctx, s.codec.ContentType(), rootTypeName(v), len(data), err)
	return err
}

func rootTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return TypeNameOf(v)
}
