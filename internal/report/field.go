package report

import (
	"reflect"
	"strconv"
	"strings"
)

// Field locates a column value inside a record: either a dotted path into
// the record or a function deriving the value from the whole record.
type Field[T any] struct {
	path string
	fn   func(T) any
}

func Literal[T any](path string) Field[T] { return Field[T]{path: path} }

func Derived[T any](fn func(T) any) Field[T] { return Field[T]{fn: fn} }

// Resolve returns the value f designates in rec, nil when absent.
func Resolve[T any](rec T, f Field[T]) any {
	if f.fn != nil {
		return f.fn(rec)
	}
	v, ok := Navigate(rec, f.path)
	if !ok {
		return nil
	}
	return v
}

// Navigate walks a dotted path through structs, pointers, string-keyed maps
// and slices (numeric segments). Struct fields match their json name first,
// then their Go name, both case-insensitively. Any missing or nil segment
// yields ok=false.
func Navigate(v any, path string) (any, bool) {
	cur := reflect.ValueOf(v)
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			var ok bool
			if cur, ok = step(cur, seg); !ok {
				return nil, false
			}
		}
	}
	cur, ok := indirect(cur)
	if !ok || !cur.CanInterface() {
		return nil, false
	}
	return cur.Interface(), true
}

func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func step(v reflect.Value, seg string) (reflect.Value, bool) {
	v, ok := indirect(v)
	if !ok {
		return v, false
	}
	switch v.Kind() {
	case reflect.Struct:
		return structField(v, seg)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		out := v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
		return out, out.IsValid()
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(i), true
	}
	return reflect.Value{}, false
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	fields := reflect.VisibleFields(v.Type())
	match := func(pick func(reflect.StructField) string) (reflect.Value, bool) {
		for _, sf := range fields {
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			if strings.EqualFold(pick(sf), name) {
				fv, err := v.FieldByIndexErr(sf.Index)
				return fv, err == nil
			}
		}
		return reflect.Value{}, false
	}
	if fv, ok := match(jsonName); ok {
		return fv, true
	}
	return match(func(sf reflect.StructField) string { return sf.Name })
}

func jsonName(sf reflect.StructField) string {
	tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if tag == "-" {
		return ""
	}
	return tag
}
