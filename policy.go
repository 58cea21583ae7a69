package replacer

import (
	"context"
	"sort"
)

// DefaultExcludedKeys are excluded when no WithExcludedKeys option is given.
var DefaultExcludedKeys = []string{"__proto__"}

// Policy decides, per key and value, what the encoder renders.
//
// A Policy has four independent settings: keys to drop anywhere in the
// graph, the type tags whose values are rebuilt into plain maps, the key
// strategy used when copying properties, and method names to invoke on every
// rebuilt value. Policies are immutable once built and safe for concurrent
// use; invoked methods may have side effects of their own.
type Policy struct {
	excluded map[string]struct{}
	methods  []string
	targets  map[TypeTag]struct{}
	strategy KeyStrategy
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy)

// WithExcludedKeys replaces the set of keys dropped from the output.
// Matching is exact and applies at every depth, including the root key "".
func WithExcludedKeys(keys ...string) PolicyOption {
	return func(p *Policy) {
		p.excluded = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			p.excluded[k] = struct{}{}
		}
	}
}

// WithMethods sets the zero-argument methods invoked on every rebuilt value.
// Methods are invoked in the given order.
func WithMethods(names ...string) PolicyOption {
	return func(p *Policy) {
		p.methods = append([]string(nil), names...)
	}
}

// WithTargets replaces the set of type tags whose values are rebuilt.
func WithTargets(tags ...TypeTag) PolicyOption {
	return func(p *Policy) {
		p.targets = make(map[TypeTag]struct{}, len(tags))
		for _, t := range tags {
			p.targets[t] = struct{}{}
		}
	}
}

// WithKeyStrategy sets which own properties are copied into rebuilt values.
// Unrecognised strategies behave like KeysEnumerable.
func WithKeyStrategy(s KeyStrategy) PolicyOption {
	return func(p *Policy) {
		p.strategy = ParseKeyStrategy(string(s))
	}
}

// NewPolicy creates a Policy.
//
// Defaults: excluded keys DefaultExcludedKeys, no methods, targets
// {TypeObject}, strategy KeysEnumerable.
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{strategy: KeysEnumerable}
	WithExcludedKeys(DefaultExcludedKeys...)(p)
	WithTargets(TypeObject)(p)

	for _, opt := range opts {
		opt(p)
	}

	emitPolicyCreated(context.Background(), p)
	return p
}

// Edit is the per-node decision function. It returns the value to render in
// place of value, or false to omit key entirely.
//
// Excluded keys are dropped before anything else. Non-nil values whose type
// tag is targeted are rebuilt into a fresh map holding their non-callable
// properties and, under the value's type name, the outcome of each configured
// method. Everything else passes through unchanged.
func (p *Policy) Edit(key string, value any) (any, bool) {
	if _, ok := p.excluded[key]; ok {
		return nil, false
	}

	if _, ok := p.targets[TagOf(value)]; !ok || isNil(value) {
		return value, true
	}

	result := make(map[string]any)
	for _, prop := range Keys(value, p.strategy) {
		if TagOf(prop.Value) == TypeFunction {
			continue
		}
		result[prop.Name] = prop.Value
	}

	var namespace map[string]any
	for _, name := range p.methods {
		outcome := Invoke(value, name)
		if !outcome.IsSome() {
			continue
		}
		if namespace == nil {
			namespace = make(map[string]any)
			result[TypeNameOf(value)] = namespace
		}
		namespace[name] = outcome.UnwrapOr(nil)
	}

	return result, true
}

// Replacer returns Edit bound to p.
func (p *Policy) Replacer() Replacer {
	return p.Edit
}

// ExcludedKeys returns the excluded keys in sorted order.
func (p *Policy) ExcludedKeys() []string {
	keys := make([]string, 0, len(p.excluded))
	for k := range p.excluded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Methods returns the configured method names in invocation order.
func (p *Policy) Methods() []string {
	return append([]string(nil), p.methods...)
}

// Targets returns the targeted type tags in sorted order.
func (p *Policy) Targets() []TypeTag {
	tags := make([]TypeTag, 0, len(p.targets))
	for t := range p.targets {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// KeyStrategy returns the configured key strategy.
func (p *Policy) KeyStrategy() KeyStrategy {
	return p.strategy
}
