package domain

import (
	"strconv"
	"strings"
)

// Token is a comparable key used to match a record's parent reference
// against other records' own keys. A token holds one value, or a pair of
// values for tuple-mode composite keys. Tokens are usable as map keys.
type Token struct {
	head  Value
	tail  Value
	arity uint8
}

// SingleToken returns a one-value token.
func SingleToken(v Value) Token {
	return Token{head: v, arity: 1}
}

// PairToken returns a structured two-value token.
func PairToken(first, second Value) Token {
	return Token{head: first, tail: second, arity: 2}
}

// TextToken is shorthand for SingleToken(StringValue(s)).
func TextToken(s string) Token {
	return SingleToken(StringValue(s))
}

// Arity returns the number of values in the token.
func (t Token) Arity() int { return int(t.arity) }

// Values returns the token's values.
func (t Token) Values() []Value {
	switch t.arity {
	case 1:
		return []Value{t.head}
	case 2:
		return []Value{t.head, t.tail}
	default:
		return nil
	}
}

// IsEmpty reports whether every value of the token is empty.
func (t Token) IsEmpty() bool {
	return t.head.IsEmpty() && t.tail.IsEmpty()
}

// String returns a human-readable form: the value for single tokens,
// "(a, b)" for pairs.
func (t Token) String() string {
	if t.arity == 2 {
		return "(" + t.head.Text() + ", " + t.tail.Text() + ")"
	}
	return t.head.Text()
}

// Encode returns an unambiguous text encoding including value kinds.
// Two tokens are equal exactly when their encodings are equal.
func (t Token) Encode() string {
	var b strings.Builder
	for i, v := range t.Values() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.Kind().String())
		b.WriteByte(':')
		b.WriteString(strconv.Quote(v.Text()))
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so tokens render as
// plain strings in JSON output.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
