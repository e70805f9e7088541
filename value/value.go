// Package value provides the dynamic value type backing template rendering.
//
// A Value holds one node of the caller-supplied document tree: null, a
// boolean, a number, a string, an array, or a string-keyed map. Templates
// are logic-less, so the surface is intentionally small: type inspection,
// map key lookup, array indexing, and conversion to text.
//
// Values are typically built from plain Go data:
//
//	doc := value.FromAny(map[string]any{
//	    "users": []any{
//	        map[string]any{"id": 0, "name": "User 0"},
//	    },
//	})
//
// or assembled explicitly:
//
//	doc := value.FromMap(map[string]value.Value{
//	    "name":  value.FromString("World"),
//	    "count": value.FromInt(42),
//	})
//
// A Value is a non-owning view: sequences and maps reference the underlying
// Go slice or map, and the renderer never mutates them. A document may
// therefore be shared read-only across concurrent renders.
package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Kind describes the type of a Value.
type Kind int

const (
	// KindNull represents null/nil. Null is falsy for sections and
	// interpolates as the empty string.
	KindNull Kind = iota

	// KindBool represents a boolean.
	KindBool

	// KindNumber represents an int64 or float64.
	KindNumber

	// KindString represents UTF-8 text.
	KindString

	// KindSeq represents an ordered sequence. A section bound to a
	// sequence repeats once per element.
	KindSeq

	// KindMap represents a string-keyed mapping. Maps are the only kind
	// that participates in name lookup.
	KindMap

	// KindInvalid represents a corrupt value; not produced by any
	// constructor in this package.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSeq:
		return "sequence"
	case KindMap:
		return "map"
	case KindInvalid:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Value represents a dynamically typed value in the document tree.
//
// The zero Value is null.
type Value struct {
	data any
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// True returns the boolean true value.
func True() Value {
	return Value{data: true}
}

// False returns the boolean false value.
func False() Value {
	return Value{data: false}
}

// FromBool creates a Value from a boolean.
func FromBool(v bool) Value {
	return Value{data: v}
}

// FromInt creates a Value from an int64.
func FromInt(v int64) Value {
	return Value{data: v}
}

// FromFloat creates a Value from a float64.
func FromFloat(v float64) Value {
	return Value{data: v}
}

// FromString creates a Value from a string.
func FromString(v string) Value {
	return Value{data: v}
}

// FromSlice creates a Value from a slice of Values.
//
// The slice is referenced, not copied.
func FromSlice(v []Value) Value {
	return Value{data: v}
}

// FromMap creates a Value from a map of string to Value.
//
// The map is referenced, not copied.
func FromMap(v map[string]Value) Value {
	return Value{data: v}
}

// FromAny creates a Value from any Go value using reflection.
//
// Conversions:
//   - nil -> Null()
//   - bool -> FromBool()
//   - int/uint types -> FromInt()
//   - float types -> FromFloat() (whole floats become integers, matching
//     the numbers produced by JSON and YAML decoders)
//   - string -> FromString()
//   - slices/arrays -> FromSlice() (recursively)
//   - maps -> FromMap() (recursively; non-string keys are formatted)
//   - structs -> FromMap() (exported fields, honoring json tags)
//   - pointers/interfaces -> dereferenced and converted
func FromAny(v any) Value {
	if v == nil {
		return Null()
	}
	if val, ok := v.(Value); ok {
		return val
	}
	return fromReflectValue(reflect.ValueOf(v))
}

func fromReflectValue(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Null()
	}
	if rv.CanInterface() {
		if val, ok := rv.Interface().(Value); ok {
			return val
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromInt(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return FromInt(int64(f))
		}
		return FromFloat(f)
	case reflect.String:
		return FromString(rv.String())
	case reflect.Slice, reflect.Array:
		slice := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			slice[i] = fromReflectValue(rv.Index(i))
		}
		return FromSlice(slice)
	case reflect.Map:
		m := make(map[string]Value)
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			var key string
			if k.Kind() == reflect.String {
				key = k.String()
			} else {
				key = fmt.Sprintf("%v", k.Interface())
			}
			m[key] = fromReflectValue(iter.Value())
		}
		return FromMap(m)
	case reflect.Struct:
		return fromStruct(rv)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return fromReflectValue(rv.Elem())
	default:
		return Value{data: rv.Interface()}
	}
}

func fromStruct(rv reflect.Value) Value {
	t := rv.Type()
	m := make(map[string]Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}
		m[name] = fromReflectValue(rv.Field(i))
	}
	return FromMap(m)
}

// Kind returns the kind of value.
func (v Value) Kind() Kind {
	switch v.data.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64, float64:
		return KindNumber
	case string:
		return KindString
	case []Value:
		return KindSeq
	case map[string]Value:
		return KindMap
	default:
		return KindInvalid
	}
}

// IsNull returns true if the value is null.
func (v Value) IsNull() bool {
	return v.data == nil
}

// IsTrue returns the truthiness of the value.
//
// Null and false are falsy; everything else is truthy. Section repetition
// for sequences is decided by length, not by IsTrue.
func (v Value) IsTrue() bool {
	switch d := v.data.(type) {
	case nil:
		return false
	case bool:
		return d
	default:
		return true
	}
}

// AsString returns the string value if it is one.
func (v Value) AsString() (string, bool) {
	s, ok := v.data.(string)
	return s, ok
}

// AsInt returns the integer value if it is one, or a float with no
// fractional part.
func (v Value) AsInt() (int64, bool) {
	switch d := v.data.(type) {
	case int64:
		return d, true
	case float64:
		if d == math.Trunc(d) {
			return int64(d), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat returns the float value if the value is numeric.
func (v Value) AsFloat() (float64, bool) {
	switch d := v.data.(type) {
	case int64:
		return float64(d), true
	case float64:
		return d, true
	default:
		return 0, false
	}
}

// AsBool returns the boolean value if it is one.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok
}

// AsSlice returns the sequence elements if the value is a sequence.
func (v Value) AsSlice() ([]Value, bool) {
	s, ok := v.data.([]Value)
	return s, ok
}

// AsMap returns the underlying map if the value is a map.
func (v Value) AsMap() (map[string]Value, bool) {
	m, ok := v.data.(map[string]Value)
	return m, ok
}

// Get looks up a key if the value is a map. The second return is false
// when the value is not a map or the key is absent. The empty string is an
// ordinary key.
func (v Value) Get(key string) (Value, bool) {
	m, ok := v.data.(map[string]Value)
	if !ok {
		return Value{}, false
	}
	item, ok := m[key]
	return item, ok
}

// Len returns the element count if the value is a sequence, otherwise 0.
func (v Value) Len() int {
	if s, ok := v.data.([]Value); ok {
		return len(s)
	}
	return 0
}

// Index returns the element at position i if the value is a sequence.
// Out-of-range indexes return null.
func (v Value) Index(i int) Value {
	if s, ok := v.data.([]Value); ok && i >= 0 && i < len(s) {
		return s[i]
	}
	return Value{}
}

// String returns the text representation used for interpolation.
//
// Null interpolates as nothing; sequences and maps fall back to their
// debug representation.
func (v Value) String() string {
	switch d := v.data.(type) {
	case nil:
		return ""
	case bool:
		if d {
			return "true"
		}
		return "false"
	case int64:
		return fmt.Sprintf("%d", d)
	case float64:
		if math.IsInf(d, 1) {
			return "inf"
		}
		if math.IsInf(d, -1) {
			return "-inf"
		}
		if math.IsNaN(d) {
			return "nan"
		}
		if d == math.Trunc(d) && math.Abs(d) < 1e15 {
			return fmt.Sprintf("%.1f", d)
		}
		return fmt.Sprintf("%g", d)
	case string:
		return d
	case []Value, map[string]Value:
		return v.Repr()
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Repr returns a debug representation of the value.
func (v Value) Repr() string {
	switch d := v.data.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", d)
	case []Value:
		var parts []string
		for _, item := range d {
			parts = append(parts, item.Repr())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Value:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%q: %s", k, d[k].Repr()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.String()
	}
}

// Equal reports value equality for primitives and deep equality for
// sequences and maps. Numbers compare across int64/float64 storage.
func (v Value) Equal(other Value) bool {
	switch d := v.data.(type) {
	case nil:
		return other.data == nil
	case bool:
		o, ok := other.AsBool()
		return ok && d == o
	case int64, float64:
		if other.Kind() != KindNumber {
			return false
		}
		a, _ := v.AsFloat()
		b, _ := other.AsFloat()
		return a == b
	case string:
		o, ok := other.AsString()
		return ok && d == o
	case []Value:
		o, ok := other.AsSlice()
		if !ok || len(d) != len(o) {
			return false
		}
		for i := range d {
			if !d[i].Equal(o[i]) {
				return false
			}
		}
		return true
	case map[string]Value:
		o, ok := other.AsMap()
		if !ok || len(d) != len(o) {
			return false
		}
		for k, item := range d {
			ov, present := o[k]
			if !present || !item.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
