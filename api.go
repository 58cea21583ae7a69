// Package replacer customizes how arbitrary Go value graphs are rendered to
// structured text.
//
// A Policy is consulted for every key/value pair while the value graph is
// walked depth first, and decides whether the pair is dropped, passed
// through, or rebuilt into a plain map.
//
// # Policy Settings
//
// A policy has four independent settings:
//
//   - excluded keys: property names dropped at any depth (default "__proto__")
//   - targets: the type tags whose values are rebuilt (default "object")
//   - key strategy: which own properties a rebuilt value keeps
//   - methods: zero-argument methods invoked on every rebuilt value
//
// Excluded keys are checked first, so an excluded key is dropped even when
// its value would otherwise have been rebuilt, and nothing beneath it is
// visited.
//
// # Basic Usage
//
//	type User struct {
//	    ID       string `json:"id"`
//	    Password string `json:"password"`
//	}
//
//	func (u User) Initials() string { ... }
//
//	p := replacer.NewPolicy(
//	    replacer.WithExcludedKeys("password"),
//	    replacer.WithMethods("Initials"),
//	)
//
//	out, _ := replacer.Transform(user, p)
//	// map[id:42 User:map[Initials:AL]]
//
//	_ = replacer.Print(user, p)
//
// # Key Strategies
//
// Go's own value model supplies the property categories:
//
//   - enumerable: exported fields the encoder renders, string map keys, list indices
//   - all-string: enumerable plus unexported fields, `json:"-"` fields, and "length"
//   - symbol: map entries whose keys are not strings
//   - all: every property above
//
// # Method Outcomes
//
// Each configured method is looked up on the value (pointer receivers
// included) or as a func-valued property. Its result is recorded under the
// value's type name:
//
//	{"id": "42", "User": {"Initials": "AL"}}
//
// A returned error or a panic is recorded as "Error in <method>: <failure>"
// and never aborts rendering. Absent methods and methods without results
// record nothing.
//
// # Codecs
//
// Rendering is delegated to a Codec. JSON is the default; the following
// codec packages are available:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - xml - XML encoding (application/xml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Override Interfaces
//
// Types can bypass reflection:
//
//   - TypeNamer: supplies the namespace key for method outcomes
//   - Invoker: performs method invocation itself
package replacer

import "context"

// Transform renders v as JSON through p and parses the result back into a
// plain value. A nil p applies the encoder's native rules only.
func Transform(v any, p *Policy) (any, error) {
	return New(WithPolicy(p)).Transform(context.Background(), v)
}

// Marshal renders v as compact JSON through p.
func Marshal(v any, p *Policy) ([]byte, error) {
	return New(WithPolicy(p)).Marshal(context.Background(), v)
}

// MarshalIndent renders v as indented JSON through p.
func MarshalIndent(v any, p *Policy, indent string) ([]byte, error) {
	return New(WithPolicy(p), WithIndent(indent)).MarshalIndent(context.Background(), v)
}

// Print writes v as indented JSON through p to standard output.
func Print(v any, p *Policy) error {
	return New(WithPolicy(p)).Print(context.Background(), v)
}
