package object

import (
	"strconv"
	"strings"

	"exin/internal/diag"
)

// ParseLiteral parses typ's lexeme into a fresh Object (spec.md §4.4
// "LITERAL: parse the lexeme once to validate"). STR lexemes are already
// decoded by the scanner and need no further parsing.
func ParseLiteral(pos diag.Pos, kind Kind, lexeme string) (*Object, error) {
	switch kind {
	case CHAR:
		if len(lexeme) != 1 {
			return nil, diag.New(diag.ValueError, pos, "malformed char literal %q", lexeme)
		}
		return NewChar(lexeme[0]), nil
	case INT:
		n, err := strconv.Atoi(lexeme)
		if err != nil {
			return nil, diag.New(diag.ValueError, pos, "malformed int literal %q", lexeme)
		}
		return NewInt(n), nil
	case FLOAT:
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, diag.New(diag.ValueError, pos, "malformed float literal %q", lexeme)
		}
		return NewFloat(f), nil
	case STR:
		return NewStrString(lexeme), nil
	default:
		return nil, diag.New(diag.DesignError, pos, "literal of kind %v has no parser", kind)
	}
}

// String renders o the way `+` string-concatenation and `print` do: CHAR and
// STR are rendered as their raw bytes, numerics with Go's default %v
// formatting, and LIST bracketed/comma-joined. This is the "convert to
// string" side of spec.md §4.6's `+` coercion rule.
func (o *Object) String() string {
	switch o.Kind {
	case CHAR:
		return string(o.CharVal)
	case INT:
		return strconv.Itoa(o.IntVal)
	case FLOAT:
		return strconv.FormatFloat(o.FloatVal, 'g', -1, 64)
	case STR:
		return string(o.StrVal)
	case NONE:
		return "none"
	case LIST:
		var b strings.Builder
		b.WriteByte('[')
		for n := o.Head; n != nil; n = n.Next {
			if n != o.Head {
				b.WriteString(", ")
			}
			b.WriteString(n.Elem.String())
		}
		b.WriteByte(']')
		return b.String()
	case LISTNODE:
		return o.Elem.String()
	default:
		return "?"
	}
}

// ToChar converts a STR to a CHAR the way str_to_char does (spec.md §4.6
// "Conversions from string"): the string must be exactly one character or
// one recognised escape already decoded by the scanner, so here it is just
// a single-byte check.
func ToChar(pos diag.Pos, s []byte) (*Object, error) {
	if len(s) != 1 {
		return nil, diag.New(diag.ValueError, pos, "cannot convert %q to char", s)
	}
	return NewChar(s[0]), nil
}

// ToInt converts a STR to an INT the way str_to_int does: base-10, accepting
// a trailing non-digit suffix (only the integer prefix converts).
func ToInt(pos diag.Pos, s []byte) (*Object, error) {
	str := strings.TrimSpace(string(s))
	i := 0
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	start := i
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}
	if i == start {
		return nil, diag.New(diag.ValueError, pos, "cannot convert %q to int", s)
	}
	n, err := strconv.Atoi(str[:i])
	if err != nil {
		return nil, diag.New(diag.ValueError, pos, "int conversion of %q overflowed", s)
	}
	return NewInt(n), nil
}

// ToFloat converts a STR to a FLOAT the way str_to_float does: C-style
// floating syntax, trailing-suffix rule.
func ToFloat(pos diag.Pos, s []byte) (*Object, error) {
	str := strings.TrimSpace(string(s))
	i := 0
	if i < len(str) && (str[i] == '+' || str[i] == '-') {
		i++
	}
	start := i
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}
	if i < len(str) && str[i] == '.' {
		i++
		for i < len(str) && str[i] >= '0' && str[i] <= '9' {
			i++
		}
	}
	if i < len(str) && (str[i] == 'e' || str[i] == 'E') {
		j := i + 1
		if j < len(str) && (str[j] == '+' || str[j] == '-') {
			j++
		}
		k := j
		for k < len(str) && str[k] >= '0' && str[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	if i == start {
		return nil, diag.New(diag.ValueError, pos, "cannot convert %q to float", s)
	}
	f, err := strconv.ParseFloat(str[:i], 64)
	if err != nil {
		return nil, diag.New(diag.ValueError, pos, "float conversion of %q overflowed", s)
	}
	return NewFloat(f), nil
}
