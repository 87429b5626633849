package kvon

import (
	"fmt"
	"reflect"
)

// Build converts a tree of plain Go values into a Value. It understands
// nil, bool, string, all integer and float kinds, string-keyed maps, slices
// and arrays, plus Value and Primitive themselves. It performs no parsing;
// it exists so literal trees can be written directly in Go:
//
//	v, err := kvon.Build(map[string]any{
//		"name":  "box",
//		"size":  []any{4, 2, 9.5},
//		"empty": nil,
//	})
func Build(x any) (Value, error) {
	return build(reflect.ValueOf(x))
}

// MustBuild is Build but panics on error, for fixtures and tests.
func MustBuild(x any) Value {
	v, err := Build(x)
	if err != nil {
		panic(err)
	}
	return v
}

func build(rv reflect.Value) (Value, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Value{}, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Value{}, nil
	}

	switch x := rv.Interface().(type) {
	case Value:
		return x, nil
	case Primitive:
		return FromPrimitive(x), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return FromPrimitive(Bool(rv.Bool())), nil
	case reflect.String:
		return FromPrimitive(String(rv.String())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromPrimitive(Number(float32(rv.Int()))), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromPrimitive(Number(float32(rv.Uint()))), nil
	case reflect.Float32, reflect.Float64:
		return FromPrimitive(Number(float32(rv.Float()))), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("kvon: cannot build value from %s, map keys must be strings", rv.Type())
		}
		entries := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := build(iter.Value())
			if err != nil {
				return Value{}, err
			}
			entries[iter.Key().String()] = v
		}
		return Object(entries), nil
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			v, err := build(rv.Index(i))
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	}
	return Value{}, fmt.Errorf("kvon: cannot build value from %s", rv.Type())
}
