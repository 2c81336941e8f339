package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrUnsupportedType = errors.New("document: unsupported type")

// FromAny converts plain Go values, as produced by the YAML and JSON decoders,
// into a Value.
func FromAny(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case Map:
		return Object(t.Clone()), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("%w: number %q", ErrUnsupportedType, t.String())
		}
		return Float(f), nil
	case string:
		return String(t), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any:
		l := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			l[i] = v
		}
		return List(l...), nil
	case []map[string]any:
		l := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			l[i] = v
		}
		return List(l...), nil
	case map[string]any:
		m := make(Map, len(t))
		for k, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Null(), fmt.Errorf("%s: %w", k, err)
			}
			m[k] = v
		}
		return Object(m), nil
	case map[any]any:
		m := make(Map, len(t))
		for k, e := range t {
			key := fmt.Sprint(k)
			v, err := FromAny(e)
			if err != nil {
				return Null(), fmt.Errorf("%s: %w", key, err)
			}
			m[key] = v
		}
		return Object(m), nil
	default:
		return Null(), fmt.Errorf("%w: %T", ErrUnsupportedType, in)
	}
}

// MapFromAny converts a plain map into a Map.
func MapFromAny(in map[string]any) (Map, error) {
	if in == nil {
		return nil, nil
	}
	v, err := FromAny(in)
	if err != nil {
		return nil, err
	}
	m, _ := v.AsMap()
	return m, nil
}

func fromUint(u uint64) Value {
	if u > 1<<63-1 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

// ToAny converts v back into plain Go values. Lists always convert to a non-nil
// slice and maps to a non-nil map.
func (v Value) ToAny() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	case StringKind:
		return v.s
	case ListKind:
		l := make([]any, len(v.l))
		for i := range v.l {
			l[i] = v.l[i].ToAny()
		}
		return l
	case MapKind:
		return v.m.ToAny()
	default:
		return nil
	}
}

func (m Map) ToAny() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.ToAny()
	}
	return out
}
