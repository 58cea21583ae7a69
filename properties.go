package replacer

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// PropertyKind classifies an own property of a value.
type PropertyKind int

const (
	// PropertyEnumerable is a string-named property the encoder renders natively.
	PropertyEnumerable PropertyKind = iota

	// PropertyHidden is a string-named property the encoder never renders:
	// unexported fields, `json:"-"` fields, empty omitempty fields, lengths.
	PropertyHidden

	// PropertySymbol is a map entry whose key is not a string.
	PropertySymbol
)

// Property is a single own property of a value.
type Property struct {
	Name  string
	Value any
	Kind  PropertyKind
}

// Keys returns the own properties of value selected by strategy, in order.
// Unrecognised strategies behave like KeysEnumerable.
func Keys(value any, strategy KeyStrategy) []Property {
	props := ownProperties(value)

	var keep func(Property) bool
	switch normalizeStrategy(strategy) {
	case KeysAllString:
		keep = func(p Property) bool { return p.Kind != PropertySymbol }
	case KeysSymbol:
		keep = func(p Property) bool { return p.Kind == PropertySymbol }
	case KeysAll:
		return props
	default:
		keep = func(p Property) bool { return p.Kind == PropertyEnumerable }
	}

	out := props[:0:0]
	for _, p := range props {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ownProperties lists every own property of value in natural order:
// string-named properties first, symbol entries last.
func ownProperties(value any) []Property {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return structProperties(rv)
	case reflect.Map:
		return mapProperties(rv)
	case reflect.Slice, reflect.Array:
		return indexProperties(rv)
	case reflect.String:
		return []Property{{Name: "length", Value: utf8.RuneCountInString(rv.String()), Kind: PropertyHidden}}
	default:
		return nil
	}
}

func structProperties(rv reflect.Value) []Property {
	plan := planFor(rv.Type())
	rv = addressable(rv)

	props := make([]Property, 0, len(plan.fields))
	for _, f := range plan.fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// promoted through a nil embedded pointer
			continue
		}
		kind := PropertyEnumerable
		if f.hidden() || (f.omitEmpty && isEmptyValue(fv)) {
			kind = PropertyHidden
		}
		props = append(props, Property{Name: f.name, Value: interfaceOf(fv), Kind: kind})
	}
	return props
}

func mapProperties(rv reflect.Value) []Property {
	var named, symbols []Property
	iter := rv.MapRange()
	for iter.Next() {
		k, v := iter.Key(), iter.Value()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() == reflect.String {
			named = append(named, Property{Name: k.String(), Value: interfaceOf(v), Kind: PropertyEnumerable})
			continue
		}
		symbols = append(symbols, Property{Name: keyText(k), Value: interfaceOf(v), Kind: PropertySymbol})
	}
	sortProperties(named)
	sortProperties(symbols)
	return append(named, symbols...)
}

func indexProperties(rv reflect.Value) []Property {
	n := rv.Len()
	props := make([]Property, 0, n+1)
	for i := 0; i < n; i++ {
		props = append(props, Property{Name: strconv.Itoa(i), Value: interfaceOf(rv.Index(i)), Kind: PropertyEnumerable})
	}
	return append(props, Property{Name: "length", Value: n, Kind: PropertyHidden})
}

func sortProperties(props []Property) {
	sort.SliceStable(props, func(i, j int) bool { return props[i].Name < props[j].Name })
}

// keyText renders a non-string map key.
func keyText(k reflect.Value) string {
	key := interfaceOf(k)
	if tm, ok := key.(encoding.TextMarshaler); ok {
		if text, err := tm.MarshalText(); err == nil {
			return string(text)
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(key)
}

// addressable returns rv itself when addressable, otherwise an addressable copy.
func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv
	}
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	return cp
}

// interfaceOf returns the value held by v, reading through unexported fields.
func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.CanInterface() {
		return v.Interface()
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface()
	}
	return nil
}
