package replacer

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/tarantool/go-option"
)

var errorType = reflect.TypeFor[error]()

// Invoke calls the zero-argument method or func-valued property called name
// on value and returns its outcome.
//
// The result is None when the member is absent, is not callable without
// arguments, or returns nothing. A failure, whether a returned error or a
// panic, is recovered and reported as Some("Error in <name>: <failure>").
// A nil result is a real outcome and is reported as Some(nil).
func Invoke(value any, name string) option.Generic[any] {
	if isNil(value) || name == "" {
		return option.None[any]()
	}

	if inv, ok := implements[Invoker](value); ok {
		result, found, err := inv.InvokeMethod(name)
		if !found {
			return option.None[any]()
		}
		if err != nil {
			return option.Some[any](failure(value, name, err))
		}
		return option.Some(result)
	}

	fn, ok := callable(value, name)
	if !ok {
		return option.None[any]()
	}
	return call(value, name, fn)
}

// callable resolves name to a func value that accepts zero arguments.
func callable(value any, name string) (reflect.Value, bool) {
	rv := reflect.ValueOf(value)

	fn := rv.MethodByName(name)
	if !fn.IsValid() && rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		fn = ptr.MethodByName(name)
	}

	if !fn.IsValid() {
		for _, p := range Keys(value, KeysAllString) {
			if p.Name != name || p.Value == nil {
				continue
			}
			pv := reflect.ValueOf(p.Value)
			if pv.Kind() == reflect.Func && !pv.IsNil() {
				fn = pv
			}
			break
		}
	}

	if !fn.IsValid() {
		return reflect.Value{}, false
	}

	ft := fn.Type()
	if ft.NumIn() == 0 || (ft.IsVariadic() && ft.NumIn() == 1) {
		return fn, true
	}
	return reflect.Value{}, false
}

// call invokes fn and folds its results into a single outcome.
func call(value any, name string, fn reflect.Value) (out option.Generic[any]) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			out = option.Some[any](failure(value, name, err))
		}
	}()

	results := fn.Call(nil)

	var values []any
	for _, res := range results {
		if res.Type().Implements(errorType) {
			if nilable(res) && res.IsNil() {
				continue
			}
			return option.Some[any](failure(value, name, res.Interface().(error)))
		}
		values = append(values, res.Interface())
	}

	switch {
	case len(results) == 0:
		return option.None[any]()
	case len(values) == 0:
		return option.Some[any](nil)
	case len(values) == 1:
		return option.Some(values[0])
	default:
		return option.Some[any](values)
	}
}

func nilable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}

// failure describes a failed invocation and reports it.
func failure(value any, name string, err error) string {
	if err == nil {
		err = errors.New("unknown failure")
	}
	emitMethodFailed(context.Background(), TypeNameOf(value), name, err)
	return fmt.Sprintf("Error in %s: %v", name, err)
}
