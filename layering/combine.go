package layering

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	// ErrConfigMergeConflict indicates two records supplied different values
	// for a field that has no merge function.
	ErrConfigMergeConflict = errors.New("layering: config merge conflict")
	// ErrNotStruct indicates CombineStructs was instantiated with a
	// non-struct type.
	ErrNotStruct = errors.New("layering: type must be a struct")
)

// ConflictError names the field that could not be merged.
type ConflictError struct {
	Field    string
	Current  any
	Incoming any
}

func (e *ConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s for field %q", ErrConfigMergeConflict, e.Field)
}

func (e *ConflictError) Unwrap() error {
	return ErrConfigMergeConflict
}

// MergeFunc combines the value already stored for a field with a differing
// incoming value.
type MergeFunc func(current, incoming any) any

// MergeFuncs maps field names to their merge functions.
type MergeFuncs map[string]MergeFunc

// CombineConfigs merges partial configuration records in order. The first
// record to supply a field sets it; a later record supplying a different
// value needs a merge function for that field, otherwise the merge fails
// with a *ConflictError. Missing keys and nil values count as absent. Fields
// still absent afterwards are taken from defaults.
//
// Values are compared structurally: two distinct maps or slices with equal
// contents do not conflict. Functions are equal only when they share a type
// and code pointer.
func CombineConfigs(configs []map[string]any, merge MergeFuncs, defaults map[string]any) (map[string]any, error) {
	result := make(map[string]any)
	for _, config := range configs {
		for _, key := range sortedKeys(config) {
			incoming := config[key]
			if incoming == nil {
				continue
			}
			current, ok := result[key]
			if !ok || current == nil {
				result[key] = incoming
				continue
			}
			if sameValue(reflect.ValueOf(current), reflect.ValueOf(incoming)) {
				continue
			}
			fn := merge[key]
			if fn == nil {
				return nil, &ConflictError{Field: key, Current: current, Incoming: incoming}
			}
			result[key] = fn(current, incoming)
		}
	}
	for key, value := range defaults {
		if current, ok := result[key]; ok && current != nil {
			continue
		}
		if value != nil {
			result[key] = value
		}
	}
	return result, nil
}

// CombineStructs applies the CombineConfigs rule to the exported fields of a
// struct type. Zero-valued fields count as absent and merge functions are
// keyed by Go field name.
func CombineStructs[T any](configs []T, merge MergeFuncs, defaults *T) (T, error) {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil || typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("%w: %v", ErrNotStruct, typ)
	}

	result := reflect.New(typ).Elem()
	for _, config := range configs {
		incoming := reflect.ValueOf(config)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			value := incoming.Field(i)
			if value.IsZero() {
				continue
			}
			target := result.Field(i)
			if target.IsZero() {
				target.Set(cloneValue(value))
				continue
			}
			if sameValue(target, value) {
				continue
			}
			fn := merge[field.Name]
			if fn == nil {
				return zero, &ConflictError{Field: field.Name, Current: target.Interface(), Incoming: value.Interface()}
			}
			merged := fn(target.Interface(), value.Interface())
			if err := assign(target, merged, field.Name); err != nil {
				return zero, err
			}
		}
	}

	if defaults != nil {
		fallback := reflect.ValueOf(*defaults)
		for i := 0; i < typ.NumField(); i++ {
			if !typ.Field(i).IsExported() {
				continue
			}
			if target := result.Field(i); target.IsZero() {
				target.Set(cloneValue(fallback.Field(i)))
			}
		}
	}
	return result.Interface().(T), nil
}

func assign(target reflect.Value, value any, field string) error {
	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(target.Type()):
		target.Set(v)
	case v.Type().ConvertibleTo(target.Type()):
		target.Set(v.Convert(target.Type()))
	default:
		return fmt.Errorf("layering: merge function for field %q returned %T, want %s", field, value, target.Type())
	}
	return nil
}

// sameValue compares deeply; functions are equal when they share code.
func sameValue(a, b reflect.Value) bool {
	if a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if a.Kind() == reflect.Func && b.Kind() == reflect.Func {
		return a.Type() == b.Type() && a.Pointer() == b.Pointer()
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func sortedKeys(config map[string]any) []string {
	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
