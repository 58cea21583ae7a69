package replacer

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

// fieldPlan describes how to read a single struct field.
type fieldPlan struct {
	index     []int  // reflect.Value.FieldByIndex access path
	name      string // property name (json tag name or Go field name)
	exported  bool   // false for unexported fields
	skipped   bool   // true for `json:"-"`
	omitEmpty bool   // true for `json:",omitempty"`
}

// hidden reports whether the field is invisible to the native encoder.
func (f fieldPlan) hidden() bool {
	return !f.exported || f.skipped
}

// structPlan holds the ordered field plans for a struct type.
type structPlan struct {
	fields []fieldPlan
}

// plans caches struct plans per reflect.Type.
var plans sync.Map

// RegisterType scans T with sentinel and warms the plan cache for T and the
// module types it references. Registration is optional; unregistered types
// are scanned with reflection on first use.
func RegisterType[T any]() {
	rt := reflect.TypeFor[T]()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return
	}
	// sentinel strips a single pointer level; deeper ones fall back to reflection.
	_, _ = sentinel.TryScan[T]()
	plans.Store(rt, buildStructPlan(rt))
}

// planFor returns the cached plan for a struct type, building it on first use.
func planFor(rt reflect.Type) *structPlan {
	if cached, ok := plans.Load(rt); ok {
		return cached.(*structPlan)
	}
	plan, _ := plans.LoadOrStore(rt, buildStructPlan(rt))
	return plan.(*structPlan)
}

// buildStructPlan scans a struct type. Direct fields come first in
// declaration order, followed by fields promoted from embedded structs.
// A promoted field never shadows a name that is already taken.
func buildStructPlan(rt reflect.Type) *structPlan {
	taken := make(map[string]bool)
	visiting := map[reflect.Type]bool{rt: true}
	return &structPlan{fields: scanFields(rt, nil, taken, visiting)}
}

// structField is one declared field of a struct, sourced from sentinel
// metadata when the type has been scanned and from reflection otherwise.
type structField struct {
	index     []int
	name      string
	typ       reflect.Type
	tag       string
	tagged    bool
	exported  bool
	anonymous bool
}

// metadataFor returns the sentinel metadata cached for rt. sentinel keys its
// cache by bare type name, so the package path and every field must agree.
func metadataFor(rt reflect.Type) (sentinel.Metadata, bool) {
	if rt.Name() == "" {
		return sentinel.Metadata{}, false
	}
	meta, ok := sentinel.Lookup(rt.Name())
	if !ok || meta.PackageName != rt.PkgPath() || len(meta.Fields) != exportedCount(rt) {
		return sentinel.Metadata{}, false
	}
	for _, fm := range meta.Fields {
		if len(fm.Index) != 1 || fm.Index[0] >= rt.NumField() {
			return sentinel.Metadata{}, false
		}
		sf := rt.Field(fm.Index[0])
		if sf.Name != fm.Name || sf.Type != fm.ReflectType || sf.Tag.Get("json") != fm.Tags["json"] {
			return sentinel.Metadata{}, false
		}
	}
	return meta, true
}

func exportedCount(rt reflect.Type) int {
	n := 0
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			n++
		}
	}
	return n
}

// declaredFields lists rt's own fields in declaration order. Exported fields
// come from sentinel metadata when available; unexported fields are never
// reported by sentinel and are always read through reflection.
func declaredFields(rt reflect.Type) []structField {
	fields := make([]structField, 0, rt.NumField())

	meta, ok := metadataFor(rt)
	if ok {
		for _, fm := range meta.Fields {
			tag, tagged := fm.Tags["json"]
			fields = append(fields, structField{
				index:     fm.Index,
				name:      fm.Name,
				typ:       fm.ReflectType,
				tag:       tag,
				tagged:    tagged,
				exported:  true,
				anonymous: rt.Field(fm.Index[0]).Anonymous,
			})
		}
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if ok && sf.IsExported() {
			continue
		}
		tag, tagged := sf.Tag.Lookup("json")
		fields = append(fields, structField{
			index:     sf.Index,
			name:      sf.Name,
			typ:       sf.Type,
			tag:       tag,
			tagged:    tagged,
			exported:  sf.IsExported(),
			anonymous: sf.Anonymous,
		})
	}

	if ok {
		sort.SliceStable(fields, func(i, j int) bool {
			return fields[i].index[0] < fields[j].index[0]
		})
	}
	return fields
}

// scanFields recursively processes fields and embedded structs.
func scanFields(rt reflect.Type, parentIndex []int, taken map[string]bool, visiting map[reflect.Type]bool) []fieldPlan {
	var fields []fieldPlan
	var embedded []structField

	for _, sf := range declaredFields(rt) {
		name, opts, tagged := parseJSONTag(sf.tag, sf.tagged)

		if sf.anonymous && name == "" && opts != "-" {
			ft := sf.typ
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				embedded = append(embedded, sf)
				continue
			}
		}

		if name == "" {
			name = sf.name
		}
		if taken[name] {
			continue
		}
		taken[name] = true

		fields = append(fields, fieldPlan{
			index:     append(append([]int{}, parentIndex...), sf.index...),
			name:      name,
			exported:  sf.exported,
			skipped:   tagged && opts == "-",
			omitEmpty: strings.Contains(","+opts+",", ",omitempty,"),
		})
	}

	for _, sf := range embedded {
		ft := sf.typ
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if visiting[ft] {
			continue
		}
		visiting[ft] = true
		index := append(append([]int{}, parentIndex...), sf.index...)
		fields = append(fields, scanFields(ft, index, taken, visiting)...)
		delete(visiting, ft)
	}

	return fields
}

// parseJSONTag splits a json tag value into its name and options.
// `json:"-"` is reported as an empty name with opts "-".
func parseJSONTag(val string, ok bool) (name, opts string, tagged bool) {
	if !ok {
		return "", "", false
	}
	if val == "-" {
		return "", "-", true
	}
	name, opts, _ = strings.Cut(val, ",")
	return name, opts, true
}

// isEmptyValue reports whether v is empty in the omitempty sense.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
