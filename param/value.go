package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raultapia/rush/errors"
)

// Kind identifies the variant a Value holds
type Kind int

// Possible value kinds
const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindList
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value holds one parameter value as a tagged variant over bool, int64,
// float64, string, and ordered lists of Value. A Value is immutable once
// constructed; reloads replace it wholesale.
//
// Conversions are explicit and checked. Two widenings are allowed:
// bool to int (false=0, true=1) and int to float. Everything else returns
// errors.ErrTypeMismatch.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
}

// Bool constructs a boolean Value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs an integer Value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float constructs a floating point Value
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String constructs a string Value.
//
// Note Value also implements fmt.Stringer via the String method; the
// constructor takes an argument, the renderer does not.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List constructs a list Value from the given elements
func List(elems ...Value) Value {
	list := make([]Value, len(elems))
	copy(list, elems)
	return Value{kind: KindList, list: list}
}

// NewValue wraps a raw dynamic value from a parameter source. Supported
// shapes are bool, any integer width, float32/64, string, and slices of
// supported shapes (including []any). Anything else returns
// errors.ErrTypeMismatch.
func NewValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(int64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case []Value:
		return List(v...), nil
	case []any:
		list := make([]Value, 0, len(v))
		for i, elem := range v {
			val, err := NewValue(elem)
			if err != nil {
				return Value{}, fmt.Errorf("list element %d: %w", i, err)
			}
			list = append(list, val)
		}
		return Value{kind: KindList, list: list}, nil
	case []bool:
		return newListValue(v, func(b bool) Value { return Bool(b) }), nil
	case []int:
		return newListValue(v, func(i int) Value { return Int(int64(i)) }), nil
	case []int64:
		return newListValue(v, func(i int64) Value { return Int(i) }), nil
	case []float64:
		return newListValue(v, func(f float64) Value { return Float(f) }), nil
	case []string:
		return newListValue(v, func(s string) Value { return String(s) }), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T: %w", raw, errors.ErrTypeMismatch)
	}
}

func newListValue[T any](elems []T, wrap func(T) Value) Value {
	list := make([]Value, 0, len(elems))
	for _, e := range elems {
		list = append(list, wrap(e))
	}
	return Value{kind: KindList, list: list}
}

// Kind returns the variant the Value holds
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the value as a boolean
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, convErr(v.kind, KindBool)
	}
	return v.b, nil
}

// AsInt returns the value as a 64-bit integer. Booleans widen to 0/1.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, convErr(v.kind, KindInt)
	}
}

// AsFloat returns the value as a float64. Integers widen to float.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	default:
		return 0, convErr(v.kind, KindFloat)
	}
}

// AsString returns the value as a string
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", convErr(v.kind, KindString)
	}
	return v.s, nil
}

// AsList returns the elements of a list value
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, convErr(v.kind, KindList)
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out, nil
}

// As converts a Value to the requested scalar type with the same widening
// rules as the As* methods.
func As[T bool | int64 | float64 | string](v Value) (T, error) {
	var zero T
	switch p := any(&zero).(type) {
	case *bool:
		b, err := v.AsBool()
		if err != nil {
			return zero, err
		}
		*p = b
	case *int64:
		i, err := v.AsInt()
		if err != nil {
			return zero, err
		}
		*p = i
	case *float64:
		f, err := v.AsFloat()
		if err != nil {
			return zero, err
		}
		*p = f
	case *string:
		s, err := v.AsString()
		if err != nil {
			return zero, err
		}
		*p = s
	}
	return zero, nil
}

// AsListOf converts a list value to a homogeneous slice. Every element must
// convert to T or the whole conversion fails. The returned slice is always
// freshly allocated; callers replace their container rather than append.
func AsListOf[T bool | int64 | float64 | string](v Value) ([]T, error) {
	elems, err := v.AsList()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		x, err := As[T](elem)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		out = append(out, x)
	}
	return out, nil
}

// String renders the value in human-readable form for diagnostics and
// logging. The format carries no semantic contract.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, elem := range v.list {
			parts[i] = elem.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

func convErr(from, to Kind) error {
	return fmt.Errorf("cannot convert %s to %s: %w", from, to, errors.ErrTypeMismatch)
}
