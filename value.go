package kvon

// primitiveKind discriminates the leaf variants. The zero value is null so
// that an uninitialized Primitive is a valid value.
type primitiveKind uint8

const (
	primNull primitiveKind = iota
	primNumber
	primString
	primBool
)

// Primitive is a leaf value: a number, a piece of text, a boolean, or null.
// KVON numbers are 32-bit floats.
type Primitive struct {
	kind primitiveKind
	num  float32
	str  string
	b    bool
}

// Number returns a numeric primitive.
func Number(n float32) Primitive {
	return Primitive{kind: primNumber, num: n}
}

// String returns a text primitive.
func String(s string) Primitive {
	return Primitive{kind: primString, str: s}
}

// Bool returns a boolean primitive.
func Bool(b bool) Primitive {
	return Primitive{kind: primBool, b: b}
}

// Null returns the null primitive.
func Null() Primitive {
	return Primitive{}
}

// IsNull reports whether the primitive is null.
func (p Primitive) IsNull() bool { return p.kind == primNull }

// AsNumber returns the numeric value and whether the primitive is a number.
func (p Primitive) AsNumber() (float32, bool) {
	return p.num, p.kind == primNumber
}

// AsString returns the text value and whether the primitive is a string.
func (p Primitive) AsString() (string, bool) {
	return p.str, p.kind == primString
}

// AsBool returns the boolean value and whether the primitive is a boolean.
func (p Primitive) AsBool() (bool, bool) {
	return p.b, p.kind == primBool
}

// valueKind discriminates the Value variants. The zero value is a primitive,
// which combined with Primitive's zero value makes the zero Value null.
type valueKind uint8

const (
	valPrimitive valueKind = iota
	valObject
	valArray
)

// Value is a node of a decoded document tree: a primitive, an object mapping
// unique names to values, or an ordered array of values. Trees are acyclic by
// construction; the grammar cannot express sharing.
type Value struct {
	kind valueKind
	prim Primitive
	obj  map[string]Value
	arr  []Value
}

// FromPrimitive wraps a primitive as a Value.
func FromPrimitive(p Primitive) Value {
	return Value{prim: p}
}

// Object returns an object value holding the given entries. The map is used
// as-is, not copied; a nil map yields an empty object.
func Object(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{kind: valObject, obj: entries}
}

// Array returns an array value holding the given elements in order. Empty
// arrays normalize to a nil backing slice so they compare equal however they
// were produced.
func Array(elems ...Value) Value {
	if len(elems) == 0 {
		elems = nil
	}
	return Value{kind: valArray, arr: elems}
}

// KeyValue returns an object with a single entry. Block arrays use this shape
// for `- key: value` elements.
func KeyValue(key string, v Value) Value {
	return Object(map[string]Value{key: v})
}

// IsPrimitive reports whether the value is a primitive.
func (v Value) IsPrimitive() bool { return v.kind == valPrimitive }

// IsObject reports whether the value is an object.
func (v Value) IsObject() bool { return v.kind == valObject }

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool { return v.kind == valArray }

// AsPrimitive returns the primitive and whether the value holds one.
func (v Value) AsPrimitive() (Primitive, bool) {
	return v.prim, v.kind == valPrimitive
}

// AsObject returns the entry map and whether the value is an object.
func (v Value) AsObject() (map[string]Value, bool) {
	return v.obj, v.kind == valObject
}

// AsArray returns the elements and whether the value is an array.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == valArray
}

// Get looks up an entry of an object value. It returns false when the value
// is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != valObject {
		return Value{}, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// Interface converts the value tree into plain Go data: nil, float64, string,
// bool, map[string]any and []any. Numbers widen to float64 for compatibility
// with encoding/json and friends.
func (v Value) Interface() any {
	switch v.kind {
	case valObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	case valArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	default:
		switch v.prim.kind {
		case primNumber:
			return float64(v.prim.num)
		case primString:
			return v.prim.str
		case primBool:
			return v.prim.b
		default:
			return nil
		}
	}
}
