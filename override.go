package replacer

import "reflect"

// Override interfaces allow types to bypass reflection-based lookups.
// When a type implements one of these interfaces, the Policy calls the
// interface method instead of inspecting the value through reflection.
//
// These interfaces suit generated code and types without a meaningful Go
// type name (anonymous structs, generic instantiations, map aliases).

// TypeNamer supplies the namespace key under which method results are
// recorded. Without it the dereferenced Go type name is used.
type TypeNamer interface {
	TypeName() string
}

// Invoker bypasses reflection when a policy invokes a named method.
type Invoker interface {
	// InvokeMethod calls the named zero-argument method.
	// ok reports whether the method exists; a non-nil err is captured as a
	// failure description instead of being returned to the caller.
	InvokeMethod(name string) (result any, ok bool, err error)
}

// implements reports whether value, or a pointer to a copy of it, satisfies I.
// Pointer receivers are reached through the copy so that plain struct values
// behave like the pointers they were taken from.
func implements[I any](value any) (I, bool) {
	if v, ok := value.(I); ok {
		return v, true
	}

	var zero I
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() == reflect.Pointer {
		return zero, false
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	if v, ok := ptr.Interface().(I); ok {
		return v, true
	}
	return zero, false
}
