package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the dynamic type held by a Value.
type ValueKind uint8

// Supported value kinds.
const (
	// KindNull is an absent value.
	KindNull ValueKind = iota
	// KindString is a text value.
	KindString
	// KindBool is a boolean value.
	KindBool
	// KindInt is a signed integer value.
	KindInt
	// KindFloat is a floating point value.
	KindFloat
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a loosely typed field value. Values are comparable with == and
// can be used as map keys. Equality is exact: StringValue("1") != IntValue(1).
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// NullValue returns the absent value.
func NullValue() Value { return Value{} }

// StringValue returns a text value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a floating point value.
// NaN is normalised to Null since it never compares equal to itself.
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		return NullValue()
	}
	return Value{kind: KindFloat, f: f}
}

// ValueOf converts a Go value into a Value.
// Supported inputs are nil, string, bool, the integer and float types,
// json.Number and Value itself.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint:
		return ValueOf(uint64(x))
	case uint64:
		if x > math.MaxInt64 {
			return NullValue(), fmt.Errorf("%w: integer %d overflows int64", ErrInvalidInput, x)
		}
		return IntValue(int64(x)), nil
	case float32:
		return FloatValue(float64(x)), nil
	case float64:
		return FloatValue(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return IntValue(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return NullValue(), fmt.Errorf("%w: number %q", ErrInvalidInput, x.String())
		}
		return FloatValue(f), nil
	default:
		return NullValue(), fmt.Errorf("%w: unsupported value type %T", ErrInvalidInput, v)
	}
}

// MustValue is like ValueOf but panics on unsupported input.
// Intended for literals in tests and generators.
func MustValue(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Kind returns the dynamic type of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsEmpty reports whether the value is absent or the empty string.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.s == "")
}

// Text returns the text form used for composite key concatenation.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindNull {
		return "<null>"
	}
	return v.Text()
}

// Interface returns the value as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return nil
	}
}

// MarshalJSON encodes the value as its plain JSON counterpart.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Integral numbers become Int.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := decodeJSON(data, &raw); err != nil {
		return err
	}
	val, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
