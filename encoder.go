package replacer

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds how deeply the encoder descends into a value graph.
const DefaultMaxDepth = 1000

// Replacer decides what the encoder renders for a key/value pair.
// The root value is offered under the empty key. Returning false omits the
// key; inside a list the slot renders as null instead.
type Replacer func(key string, value any) (any, bool)

// identity distinguishes reference values on the current path.
type identity struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// encoder walks a value graph depth first, offering every key/value pair to
// the replacer before rendering or descending into it.
type encoder struct {
	replacer Replacer
	maxDepth int
	path     []string
	active   map[identity]struct{}
}

// Encode walks v and returns a plain tree of map[string]any, []any, string,
// int64, uint64, float64, bool and nil values. A nil replacer applies the
// encoder's native rules only.
func Encode(v any, replacer Replacer, maxDepth int) (any, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	e := &encoder{
		replacer: replacer,
		maxDepth: maxDepth,
		active:   make(map[identity]struct{}),
	}

	out, ok, err := e.property("", v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRootOmitted
	}
	return out, nil
}

// property handles a single key/value pair: resolve, replace, render.
func (e *encoder) property(key string, value any) (any, bool, error) {
	if len(e.path) > e.maxDepth {
		return nil, false, fmt.Errorf("%w (%d) at %q", ErrDepth, e.maxDepth, e.pathString())
	}

	value, err := e.resolve(value)
	if err != nil {
		return nil, false, err
	}

	original := value
	if e.replacer != nil {
		var keep bool
		value, keep = e.replacer(key, value)
		if !keep {
			return nil, false, nil
		}
	}

	// Only values that are descended into count toward a cycle. The original
	// is tracked so cycles running through rebuilt maps are still caught.
	release, err := e.enter(original)
	if err != nil {
		return nil, false, err
	}
	defer release()
	if !sameIdentity(original, value) {
		releaseReplaced, err := e.enter(value)
		if err != nil {
			return nil, false, err
		}
		defer releaseReplaced()
	}

	return e.render(reflect.ValueOf(value))
}

// enter marks a reference value as active on the current path.
func (e *encoder) enter(value any) (func(), error) {
	id, ok := identityOf(value)
	if !ok {
		return func() {}, nil
	}
	if _, seen := e.active[id]; seen {
		return nil, &CycleError{Path: e.pathString(), Type: id.typ}
	}
	e.active[id] = struct{}{}
	return func() { delete(e.active, id) }, nil
}

func sameIdentity(a, b any) bool {
	ia, okA := identityOf(a)
	ib, okB := identityOf(b)
	return okA == okB && ia == ib
}

// resolve applies a value's own marshaling methods before the replacer sees it.
func (e *encoder) resolve(value any) (any, error) {
	if isNil(value) {
		return value, nil
	}

	switch m := value.(type) {
	case json.Marshaler:
		data, err := m.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %T at %q: %w", value, e.pathString(), err)
		}
		var out any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("marshal %T at %q: %w", value, e.pathString(), err)
		}
		return out, nil
	case encoding.TextMarshaler:
		text, err := m.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("marshal %T at %q: %w", value, e.pathString(), err)
		}
		return string(text), nil
	}
	return value, nil
}

// render converts a value the replacer kept into its tree form.
// The boolean is false for values with no textual form that are omitted.
func (e *encoder) render(rv reflect.Value) (any, bool, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, true, nil
	case reflect.Bool:
		return rv.Bool(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, true, nil
		}
		return f, true, nil
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, true, nil
		}
		return e.render(rv.Elem())
	case reflect.Func:
		return nil, false, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, true, nil
		}
		return e.renderMap(rv)
	case reflect.Struct:
		return e.renderStruct(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, true, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(rv.Bytes()), true, nil
		}
		return e.renderList(rv)
	case reflect.Array:
		return e.renderList(rv)
	default:
		return nil, false, &UnsupportedTypeError{Path: e.pathString(), Type: rv.Type()}
	}
}

func (e *encoder) renderMap(rv reflect.Value) (any, bool, error) {
	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := mapKey(iter.Key())
		if !ok {
			continue
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	out := make(map[string]any, len(entries))
	for _, en := range entries {
		child, ok, err := e.child(en.key, interfaceOf(en.value))
		if err != nil {
			return nil, false, err
		}
		if ok {
			out[en.key] = child
		}
	}
	return out, true, nil
}

func (e *encoder) renderStruct(rv reflect.Value) (any, bool, error) {
	out := make(map[string]any)
	for _, p := range structProperties(rv) {
		if p.Kind != PropertyEnumerable {
			continue
		}
		child, ok, err := e.child(p.Name, p.Value)
		if err != nil {
			return nil, false, err
		}
		if ok {
			out[p.Name] = child
		}
	}
	return out, true, nil
}

func (e *encoder) renderList(rv reflect.Value) (any, bool, error) {
	out := make([]any, rv.Len())
	for i := range out {
		child, ok, err := e.child(strconv.Itoa(i), interfaceOf(rv.Index(i)))
		if err != nil {
			return nil, false, err
		}
		if ok {
			out[i] = child
		}
	}
	return out, true, nil
}

// child descends into a nested key.
func (e *encoder) child(key string, value any) (any, bool, error) {
	e.path = append(e.path, key)
	defer func() { e.path = e.path[:len(e.path)-1] }()
	return e.property(key, value)
}

func (e *encoder) pathString() string {
	if len(e.path) == 0 {
		return "."
	}
	return strings.Join(e.path, ".")
}

// mapKey renders a map key the way the encoder's native rules allow:
// strings, integers and TextMarshalers. Other keys are not representable.
func mapKey(k reflect.Value) (string, bool) {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String(), true
	}
	if tm, ok := interfaceOf(k).(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", false
		}
		return string(text), true
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), true
	}
	return "", false
}

// identityOf returns the identity of reference values that can form cycles.
func identityOf(value any) (identity, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}, true
	default:
		return identity{}, false
	}
}
