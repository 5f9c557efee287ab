// Package jsonvalue is a tagged-variant model of JSON documents. Content
// files have arbitrary shapes, so the loader works on these values instead
// of fixed structs. Objects keep their document key order and numbers keep
// their original text.
package jsonvalue

import (
	"encoding/json"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name.
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
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single JSON node. The concrete types are Null, Bool, Number,
// String, Array and *Object.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number in its original textual form.
type Number json.Number

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return json.Number(n).Float64()
}

// IsComposite reports whether v is an array or an object.
func IsComposite(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindArray || k == KindObject
}

// IsNull reports whether v is absent or the null literal.
func IsNull(v Value) bool {
	return v == nil || v.Kind() == KindNull
}

// Object is a JSON object that remembers key insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Kind implements Value.
func (o *Object) Kind() Kind { return KindObject }

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key. New keys are appended; existing keys keep their
// position.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy: the key list and field map are new, the
// values are shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	out := &Object{
		keys:   make([]string, len(o.keys)),
		fields: make(map[string]Value, len(o.fields)),
	}
	copy(out.keys, o.keys)
	for k, v := range o.fields {
		out.fields[k] = v
	}
	return out
}

// GetString returns the string stored under key.
func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// GetStrings returns the string elements of the array stored under key.
// Non-string elements are skipped.
func (o *Object) GetStrings(key string) []string {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	arr, ok := v.(Array)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(String); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// Strings builds an array of strings.
func Strings(values []string) Array {
	arr := make(Array, len(values))
	for i, s := range values {
		arr[i] = String(s)
	}
	return arr
}

// Equal reports whether a and b hold the same JSON document. Object key
// order is ignored; numbers compare by text, then by numeric value.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		bv := b.(Number)
		if av == bv {
			return true
		}
		af, errA := av.Float64()
		bf, errB := bv.Float64()
		return errA == nil && errB == nil && af == bf
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		keys := av.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			other, ok := bv.Get(k)
			if !ok {
				return false
			}
			mine, _ := av.Get(k)
			if !Equal(mine, other) {
				return false
			}
		}
		return true
	}
	return false
}
