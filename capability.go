package replacer

import "strings"

// TypeTag is the runtime type category a policy can target.
// Use these constants with WithTargets or in config files: `targets: [object]`
type TypeTag string

const (
	// TypeObject matches structs, maps, and pointers to either.
	TypeObject TypeTag = "object"

	// TypeArray matches slices and arrays.
	TypeArray TypeTag = "array"

	// TypeString matches string kinds.
	TypeString TypeTag = "string"

	// TypeNumber matches integer, unsigned, and floating point kinds.
	TypeNumber TypeTag = "number"

	// TypeBoolean matches bool kinds.
	TypeBoolean TypeTag = "boolean"

	// TypeFunction matches func values.
	TypeFunction TypeTag = "function"
)

// KeyStrategy selects which own properties of a matched value are copied.
type KeyStrategy string

const (
	// KeysEnumerable copies only properties the encoder would render natively.
	KeysEnumerable KeyStrategy = "enumerable"

	// KeysAllString copies every string-named property, hidden ones included.
	KeysAllString KeyStrategy = "all-string"

	// KeysSymbol copies map entries whose keys are not strings.
	KeysSymbol KeyStrategy = "symbol"

	// KeysAll copies string-named and symbol properties.
	KeysAll KeyStrategy = "all"
)

// validTypeTags contains all valid type tags for config validation.
var validTypeTags = map[TypeTag]bool{
	TypeObject:   true,
	TypeArray:    true,
	TypeString:   true,
	TypeNumber:   true,
	TypeBoolean:  true,
	TypeFunction: true,
}

// validKeyStrategies contains all valid key strategies for config validation.
var validKeyStrategies = map[KeyStrategy]bool{
	KeysEnumerable: true,
	KeysAllString:  true,
	KeysSymbol:     true,
	KeysAll:        true,
}

// IsValidTypeTag returns true if the tag is a known type tag.
func IsValidTypeTag(tag TypeTag) bool {
	return validTypeTags[tag]
}

// IsValidKeyStrategy returns true if the strategy is a known key strategy.
// The plural "symbols" spelling is accepted.
func IsValidKeyStrategy(s KeyStrategy) bool {
	return validKeyStrategies[normalizeStrategy(s)]
}

// ParseKeyStrategy converts a strategy name to a KeyStrategy.
// Unrecognised names fall back to KeysEnumerable.
func ParseKeyStrategy(name string) KeyStrategy {
	s := normalizeStrategy(KeyStrategy(name))
	if !validKeyStrategies[s] {
		return KeysEnumerable
	}
	return s
}

func normalizeStrategy(s KeyStrategy) KeyStrategy {
	s = KeyStrategy(strings.ToLower(strings.TrimSpace(string(s))))
	if s == "symbols" {
		return KeysSymbol
	}
	return s
}
