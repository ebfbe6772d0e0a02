package action

import (
	"fmt"
	"strconv"
	"strings"
)

// VariantType is the shape of a command parameter or state.
type VariantType int

const (
	TypeNone VariantType = iota
	TypeBool
	TypeString
)

func (t VariantType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	}
	return "unknown"
}

// Variant is a command parameter or state value. The zero value carries no
// value at all.
type Variant struct {
	typ VariantType
	b   bool
	s   string
}

// None is the empty parameter.
var None = Variant{}

// Bool wraps a boolean.
func Bool(b bool) Variant { return Variant{typ: TypeBool, b: b} }

// Str wraps a string.
func Str(s string) Variant { return Variant{typ: TypeString, s: s} }

// Type returns the variant's shape.
func (v Variant) Type() VariantType { return v.typ }

// Bool returns the boolean payload and whether v holds one.
func (v Variant) Bool() (bool, bool) { return v.b, v.typ == TypeBool }

// Str returns the string payload and whether v holds one.
func (v Variant) Str() (string, bool) { return v.s, v.typ == TypeString }

// String formats v the way accelerator literals are written: true, 'eraser'.
func (v Variant) String() string {
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeString:
		return "'" + v.s + "'"
	}
	return ""
}

// ParseLiteral reads a literal parameter as written in accelerator tables
// and on the command line. Empty input yields None, true/false yield booleans,
// anything else is a string with optional single or double quotes removed.
func ParseLiteral(s string) Variant {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return None
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Str(unquote(s))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseFor reads s as a value of type t. It is stricter than ParseLiteral:
// a boolean parameter only accepts strconv.ParseBool forms.
func ParseFor(t VariantType, s string) (Variant, error) {
	s = strings.TrimSpace(s)
	switch t {
	case TypeNone:
		if s != "" {
			return None, fmt.Errorf("unexpected parameter %q", s)
		}
		return None, nil
	case TypeBool:
		if s == "" {
			return None, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return None, fmt.Errorf("invalid boolean %q: %w", s, err)
		}
		return Bool(b), nil
	case TypeString:
		if s == "" {
			return None, nil
		}
		return Str(unquote(s)), nil
	}
	return None, fmt.Errorf("unsupported parameter type %v", t)
}
