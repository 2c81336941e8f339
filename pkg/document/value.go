// Package document implements the value type used for pipeline documents.
//
// A pipeline definition is a heterogeneous, dynamically shaped document. Instead of
// passing map[string]interface{} around, every node is a Value whose Kind tells the
// caller which accessor is valid.
package document

import (
	"math"
	"sort"
)

type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ListKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single node of a document. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	l    []Value
	m    Map
}

// Map is a document mapping of field name to value.
type Map map[string]Value

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }
func Int(i int64) Value { return Value{kind: IntKind, i: i} }
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }
func String(s string) Value { return Value{kind: StringKind, s: s} }
func List(vs ...Value) Value { return Value{kind: ListKind, l: vs} }
func Object(m Map) Value { return Value{kind: MapKind, m: m} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == NullKind }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == IntKind
}

// AsFloat returns the numeric value of both int and float values.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case IntKind:
		return float64(v.i), true
	case FloatKind:
		return v.f, true
	}
	return 0, false
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == StringKind
}

func (v Value) AsList() ([]Value, bool) {
	return v.l, v.kind == ListKind
}

func (v Value) AsMap() (Map, bool) {
	return v.m, v.kind == MapKind
}

// Equal reports deep structural equality. Numbers compare by value, so Int(1)
// equals Float(1).
func (v Value) Equal(o Value) bool {
	if v.isNumber() && o.isNumber() {
		if v.kind == IntKind && o.kind == IntKind {
			return v.i == o.i
		}
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case StringKind:
		return v.s == o.s
	case ListKind:
		if len(v.l) != len(o.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(o.l[i]) {
				return false
			}
		}
		return true
	case MapKind:
		return v.m.Equal(o.m)
	}
	return false
}

func (v Value) isNumber() bool {
	return v.kind == IntKind || v.kind == FloatKind
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case ListKind:
		if v.l == nil {
			return v
		}
		l := make([]Value, len(v.l))
		for i := range v.l {
			l[i] = v.l[i].Clone()
		}
		return Value{kind: ListKind, l: l}
	case MapKind:
		return Value{kind: MapKind, m: v.m.Clone()}
	default:
		return v
	}
}

// Equal reports whether both maps hold the same keys with equal values.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m. A nil map stays nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v.Clone()
	}
	return c
}

func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the keys of m in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Maps wraps each map as a Value, producing a list value.
func Maps(ms []Map) Value {
	l := make([]Value, len(ms))
	for i, m := range ms {
		l[i] = Object(m)
	}
	return Value{kind: ListKind, l: l}
}
