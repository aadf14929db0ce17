// Package relation provides the typed value model, schemas, and the
// primary-key-ordered tuple container at the core of the engine.
package relation

import (
	"strconv"
	"strings"
)

// Type represents an attribute data type.
type Type int

const (
	TypeUnknown Type = iota
	TypeInt
	TypeStr
)

// String returns the declared name of the type.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeStr:
		return "STR"
	default:
		return "UNKNOWN"
	}
}

// ParseType converts a string to a Type.
func ParseType(s string) Type {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INT", "INTEGER":
		return TypeInt
	case "STR", "STRING", "TEXT":
		return TypeStr
	default:
		return TypeUnknown
	}
}

// Value represents a typed scalar. The Type tag selects which field is
// meaningful; there is no null and no implicit coercion.
type Value struct {
	Type Type
	Int  int64
	Str  string
}

// NewInt creates an INT value.
func NewInt(v int64) Value {
	return Value{Type: TypeInt, Int: v}
}

// NewStr creates a STR value.
func NewStr(v string) Value {
	return Value{Type: TypeStr, Str: v}
}

// String returns a human-readable representation.
func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeStr:
		return v.Str
	default:
		return "?"
	}
}

// Compare orders values totally: first by type tag (INT before STR), then
// by natural scalar order within the type.
// Returns: -1 if v < other, 0 if equal, 1 if v > other.
func (v Value) Compare(other Value) int {
	if v.Type != other.Type {
		if v.Type < other.Type {
			return -1
		}
		return 1
	}
	switch v.Type {
	case TypeInt:
		switch {
		case v.Int < other.Int:
			return -1
		case v.Int > other.Int:
			return 1
		}
		return 0
	case TypeStr:
		return strings.Compare(v.Str, other.Str)
	default:
		return 0
	}
}

// Equal reports whether two values have the same type and scalar.
func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}
