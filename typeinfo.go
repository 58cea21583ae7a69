package replacer

import "reflect"

// TagOf returns the runtime type tag of value.
// Pointers are followed to the type they point at; a nil reference reports
// TypeObject. Kinds with no textual form (channels, complex numbers) report "".
func TagOf(value any) TypeTag {
	if value == nil {
		return TypeObject
	}
	return tagOfType(reflect.TypeOf(value))
}

func tagOfType(rt reflect.Type) TypeTag {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	switch rt.Kind() {
	case reflect.Struct, reflect.Map, reflect.Interface:
		return TypeObject
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.String:
		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Bool:
		return TypeBoolean
	case reflect.Func:
		return TypeFunction
	default:
		return ""
	}
}

// isNil reports whether value is nil or a nil reference of any kind.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// kindNames are the namespace keys used for values whose type has no name.
var kindNames = map[TypeTag]string{
	TypeObject:   "Object",
	TypeArray:    "Array",
	TypeString:   "String",
	TypeNumber:   "Number",
	TypeBoolean:  "Boolean",
	TypeFunction: "Function",
}

// TypeNameOf returns the display name of value's runtime type.
// Resolution order: TypeNamer, the Go type name of the dereferenced type,
// then a name derived from the type tag.
func TypeNameOf(value any) string {
	if value == nil {
		return kindNames[TypeObject]
	}
	if n, ok := implements[TypeNamer](value); ok {
		return n.TypeName()
	}

	rt := reflect.TypeOf(value)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if rt.Name() != "" {
		return rt.Name()
	}
	if name, ok := kindNames[tagOfType(rt)]; ok {
		return name
	}
	return rt.Kind().String()
}
