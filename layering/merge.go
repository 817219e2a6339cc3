package layering

import (
	"fmt"
	"reflect"
	"strconv"
)

// Overlay is the result of merging layers ordered strongest first.
type Overlay[T any] struct {
	Value T
	// Sources maps each dotted field path of Value to the index of the layer
	// that supplied it. Map keys and slice indexes are path segments too.
	Sources map[string]int
}

// Merge overlays layers strongest first. Scalars and array elements come
// from the strongest layer; nil pointers, maps, slices and interfaces fall
// through to weaker layers; maps merge key by key and a non-nil slice
// replaces weaker ones wholesale. Unexported struct fields are left zero.
func Merge[T any](layers ...T) Overlay[T] {
	overlay := Overlay[T]{Sources: make(map[string]int)}
	if len(layers) == 0 {
		return overlay
	}
	candidates := make([]layer, len(layers))
	for i := range layers {
		candidates[i] = layer{index: i, value: reflect.ValueOf(&layers[i]).Elem()}
	}
	m := merger{sources: overlay.Sources}
	merged := m.merge("", reflect.TypeOf((*T)(nil)).Elem(), candidates)
	overlay.Value, _ = merged.Interface().(T)
	return overlay
}

// MergeLayers returns only the merged value of Merge.
func MergeLayers[T any](layers ...T) T {
	return Merge(layers...).Value
}

// Clone returns a deep copy of value.
func Clone[T any](value T) T {
	return Merge(value).Value
}

// cloneValue deep copies v through a single-layer merge.
func cloneValue(v reflect.Value) reflect.Value {
	m := merger{sources: make(map[string]int)}
	return m.merge("", v.Type(), []layer{{value: v}})
}

type layer struct {
	index int
	value reflect.Value
}

type merger struct {
	sources map[string]int
}

func (m merger) merge(path string, typ reflect.Type, layers []layer) reflect.Value {
	out := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Pointer:
		present := nonNil(layers)
		if len(present) == 0 {
			return out
		}
		for i := range present {
			present[i].value = present[i].value.Elem()
		}
		target := reflect.New(typ.Elem())
		target.Elem().Set(m.merge(path, typ.Elem(), present))
		out.Set(target)
	case reflect.Interface:
		present := nonNil(layers)
		if len(present) == 0 {
			return out
		}
		concrete := present[0].value.Elem().Type()
		same := present[:0]
		for _, candidate := range present {
			if elem := candidate.value.Elem(); elem.Type() == concrete {
				same = append(same, layer{index: candidate.index, value: elem})
			}
		}
		out.Set(m.merge(path, concrete, same))
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			fields := make([]layer, len(layers))
			for j, candidate := range layers {
				fields[j] = layer{index: candidate.index, value: candidate.value.Field(i)}
			}
			out.Field(i).Set(m.merge(join(path, field.Name), field.Type, fields))
		}
	case reflect.Map:
		present := nonNil(layers)
		if len(present) == 0 {
			return out
		}
		out.Set(reflect.MakeMap(typ))
		for _, key := range unionKeys(present) {
			var entries []layer
			for _, candidate := range present {
				if value := candidate.value.MapIndex(key); value.IsValid() {
					entries = append(entries, layer{index: candidate.index, value: value})
				}
			}
			out.SetMapIndex(key, m.merge(join(path, fmt.Sprint(key.Interface())), typ.Elem(), entries))
		}
	case reflect.Slice:
		present := nonNil(layers)
		if len(present) == 0 {
			return out
		}
		winner := present[0]
		size := winner.value.Len()
		out.Set(reflect.MakeSlice(typ, size, size))
		for i := 0; i < size; i++ {
			element := []layer{{index: winner.index, value: winner.value.Index(i)}}
			out.Index(i).Set(m.merge(join(path, strconv.Itoa(i)), typ.Elem(), element))
		}
	case reflect.Array:
		for i := 0; i < typ.Len(); i++ {
			elements := make([]layer, len(layers))
			for j, candidate := range layers {
				elements[j] = layer{index: candidate.index, value: candidate.value.Index(i)}
			}
			out.Index(i).Set(m.merge(join(path, strconv.Itoa(i)), typ.Elem(), elements))
		}
	default:
		if len(layers) == 0 {
			return out
		}
		out.Set(layers[0].value)
		m.sources[path] = layers[0].index
	}
	return out
}

// nonNil returns a fresh slice so callers may rewrite the entries.
func nonNil(layers []layer) []layer {
	out := make([]layer, 0, len(layers))
	for _, candidate := range layers {
		if !candidate.value.IsNil() {
			out = append(out, candidate)
		}
	}
	return out
}

// unionKeys lists map keys strongest layer first, each key once.
func unionKeys(layers []layer) []reflect.Value {
	seen := make(map[any]struct{})
	var keys []reflect.Value
	for _, candidate := range layers {
		for _, key := range candidate.value.MapKeys() {
			if _, ok := seen[key.Interface()]; ok {
				continue
			}
			seen[key.Interface()] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}

func join(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
