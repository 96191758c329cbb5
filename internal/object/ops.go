package object

import (
	"exin/internal/diag"
)

// Bool coerces o to a boolean the way spec.md §4.6 "Boolean coercion"
// requires: numeric kinds are true iff nonzero; any other kind is a
// ValueError.
func Bool(pos diag.Pos, o *Object) (bool, error) {
	u := Unwrap(o)
	switch u.Kind {
	case CHAR:
		return u.CharVal != 0, nil
	case INT:
		return u.IntVal != 0, nil
	case FLOAT:
		return u.FloatVal != 0, nil
	default:
		return false, diag.New(diag.ValueError, pos, "%v has no boolean value", u.Kind)
	}
}

func isNumeric(k Kind) bool { return k == CHAR || k == INT || k == FLOAT }

// IsNumeric reports whether o's kind is CHAR, INT or FLOAT.
func (o *Object) IsNumeric() bool { return isNumeric(Unwrap(o).Kind) }

// AsInt coerces a numeric o to int, truncating FLOAT.
func (o *Object) AsInt() int { return asInt(Unwrap(o)) }

// AsFloat coerces a numeric o to float64.
func (o *Object) AsFloat() float64 { return asFloat(Unwrap(o)) }

// numKind returns the result kind of combining a and b numerically: FLOAT if
// either is FLOAT, else INT if either is INT, else CHAR (spec.md §4.6
// "Result type of arithmetic"; the design note's intended fix for the
// source's copy-paste bug in the INT branch is applied here: `a.Kind ==
// INT || b.Kind == INT`).
func numKind(a, b Kind) Kind {
	if a == FLOAT || b == FLOAT {
		return FLOAT
	}
	if a == INT || b == INT {
		return INT
	}
	return CHAR
}

func asFloat(o *Object) float64 {
	switch o.Kind {
	case CHAR:
		return float64(o.CharVal)
	case INT:
		return float64(o.IntVal)
	case FLOAT:
		return o.FloatVal
	default:
		return 0
	}
}

func asInt(o *Object) int {
	switch o.Kind {
	case CHAR:
		return int(o.CharVal)
	case INT:
		return o.IntVal
	case FLOAT:
		return int(o.FloatVal)
	default:
		return 0
	}
}

func fromKind(k Kind, f float64, i int) *Object {
	switch k {
	case FLOAT:
		return NewFloat(f)
	case INT:
		return NewInt(i)
	default:
		return NewChar(byte(i))
	}
}

// Arith applies +, -, *, /, % between two numeric operands with the
// coercion rule of spec.md §4.6.
func Arith(pos diag.Pos, op BinOp, a, b *Object) (*Object, error) {
	a, b = Unwrap(a), Unwrap(b)
	k := numKind(a.Kind, b.Kind)

	if op == OpMod && k == FLOAT {
		return nil, diag.New(diag.ModNotAllowedError, pos, "%% not allowed on float")
	}
	if (op == OpDiv || op == OpMod) && ((k == FLOAT && asFloat(b) == 0) || (k != FLOAT && asInt(b) == 0)) {
		return nil, diag.New(diag.DivisionByZeroError, pos, "division by zero")
	}

	if k == FLOAT {
		x, y := asFloat(a), asFloat(b)
		switch op {
		case OpAdd:
			return NewFloat(x + y), nil
		case OpSub:
			return NewFloat(x - y), nil
		case OpMul:
			return NewFloat(x * y), nil
		case OpDiv:
			return NewFloat(x / y), nil
		}
	}
	x, y := asInt(a), asInt(b)
	switch op {
	case OpAdd:
		return fromKind(k, 0, x+y), nil
	case OpSub:
		return fromKind(k, 0, x-y), nil
	case OpMul:
		return fromKind(k, 0, x*y), nil
	case OpDiv:
		return fromKind(k, 0, x/y), nil
	case OpMod:
		return fromKind(k, 0, x%y), nil
	}
	return nil, diag.New(diag.DesignError, pos, "unhandled arithmetic op %v", op)
}

// BinOp names the arithmetic operators Arith understands.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

// Add implements `+` across all three overloads in spec.md §4.6's dispatch
// table: numeric add, string auto-concat, and list concatenation.
func Add(pos diag.Pos, a, b *Object) (*Object, error) {
	a, b = Unwrap(a), Unwrap(b)
	switch {
	case isNumeric(a.Kind) && isNumeric(b.Kind):
		return Arith(pos, OpAdd, a, b)
	case a.Kind == LIST && b.Kind == LIST:
		out := NewList()
		for n := a.Head; n != nil; n = n.Next {
			out.Append(Copy(n.Elem))
		}
		for n := b.Head; n != nil; n = n.Next {
			out.Append(Copy(n.Elem))
		}
		return out, nil
	default:
		return NewStrString(a.String() + b.String()), nil
	}
}

// Mul implements `*`: numeric multiply, or string/list repetition when one
// side is numeric (negative counts clamp to 0).
func Mul(pos diag.Pos, a, b *Object) (*Object, error) {
	a, b = Unwrap(a), Unwrap(b)
	switch {
	case isNumeric(a.Kind) && isNumeric(b.Kind):
		return Arith(pos, OpMul, a, b)
	case isNumeric(a.Kind) && b.Kind == STR:
		return repeatStr(b, asInt(a)), nil
	case a.Kind == STR && isNumeric(b.Kind):
		return repeatStr(a, asInt(b)), nil
	case isNumeric(a.Kind) && b.Kind == LIST:
		return repeatList(b, asInt(a)), nil
	case a.Kind == LIST && isNumeric(b.Kind):
		return repeatList(a, asInt(b)), nil
	default:
		return nil, diag.New(diag.TypeError, pos, "* not defined for %v and %v", a.Kind, b.Kind)
	}
}

func repeatStr(s *Object, n int) *Object {
	if n < 0 {
		n = 0
	}
	out := make([]byte, 0, len(s.StrVal)*n)
	for i := 0; i < n; i++ {
		out = append(out, s.StrVal...)
	}
	return NewStr(out)
}

func repeatList(l *Object, n int) *Object {
	if n < 0 {
		n = 0
	}
	out := NewList()
	for i := 0; i < n; i++ {
		for c := l.Head; c != nil; c = c.Next {
			out.Append(Copy(c.Elem))
		}
	}
	return out
}

// CmpOp names the comparison operators.
type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpLe
	CmpGt
	CmpGe
	CmpEq
	CmpNe
)

// Equal implements `==` across all kinds: numeric/numeric, string/string
// and list/list compare by value; cross-type comparisons are always false
// (and `!=` always true).
func Equal(a, b *Object) bool {
	a, b = Unwrap(a), Unwrap(b)
	switch {
	case isNumeric(a.Kind) && isNumeric(b.Kind):
		if a.Kind == FLOAT || b.Kind == FLOAT {
			return asFloat(a) == asFloat(b)
		}
		return asInt(a) == asInt(b)
	case a.Kind == STR && b.Kind == STR:
		return string(a.StrVal) == string(b.StrVal)
	case a.Kind == LIST && b.Kind == LIST:
		x, y := a.Head, b.Head
		for x != nil && y != nil {
			if !Equal(x.Elem, y.Elem) {
				return false
			}
			x, y = x.Next, y.Next
		}
		return x == nil && y == nil
	case a.Kind == NONE && b.Kind == NONE:
		return true
	default:
		return false
	}
}

// Compare implements `<` `<=` `>` `>=`, defined only for numeric/numeric
// operands (spec.md §4.6).
func Compare(pos diag.Pos, op CmpOp, a, b *Object) (bool, error) {
	a, b = Unwrap(a), Unwrap(b)
	if !isNumeric(a.Kind) || !isNumeric(b.Kind) {
		return false, diag.New(diag.TypeError, pos, "%v not defined between %v and %v", op, a.Kind, b.Kind)
	}
	var x, y float64
	x, y = asFloat(a), asFloat(b)
	switch op {
	case CmpLt:
		return x < y, nil
	case CmpLe:
		return x <= y, nil
	case CmpGt:
		return x > y, nil
	case CmpGe:
		return x >= y, nil
	default:
		return false, diag.New(diag.DesignError, pos, "unhandled comparison op %v", op)
	}
}

// In implements the `in` operator: the right side must be a sequence (STR
// or LIST); returns true iff `==` matches some element.
func In(pos diag.Pos, needle, haystack *Object) (bool, error) {
	haystack = Unwrap(haystack)
	switch haystack.Kind {
	case STR:
		n := Unwrap(needle)
		if n.Kind != CHAR {
			return false, nil
		}
		for _, c := range haystack.StrVal {
			if c == n.CharVal {
				return true, nil
			}
		}
		return false, nil
	case LIST:
		for c := haystack.Head; c != nil; c = c.Next {
			if Equal(needle, c.Elem) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, diag.New(diag.TypeError, pos, "in: right operand must be a sequence, got %v", haystack.Kind)
	}
}

// Neg implements unary `-`: returns 0 - x preserving type.
func Neg(pos diag.Pos, o *Object) (*Object, error) {
	u := Unwrap(o)
	if !isNumeric(u.Kind) {
		return nil, diag.New(diag.TypeError, pos, "unary - not defined for %v", u.Kind)
	}
	return Arith(pos, OpSub, fromKind(u.Kind, 0, 0), u)
}

// LogicalNot implements unary `!`: INT 0/1 from boolean coercion.
func LogicalNot(pos diag.Pos, o *Object) (*Object, error) {
	b, err := Bool(pos, o)
	if err != nil {
		return nil, err
	}
	if b {
		return NewInt(0), nil
	}
	return NewInt(1), nil
}

// And implements the `and` operator: numeric operands, INT 0/1 result.
func And(pos diag.Pos, a, b *Object) (*Object, error) {
	x, err := Bool(pos, a)
	if err != nil {
		return nil, err
	}
	y, err := Bool(pos, b)
	if err != nil {
		return nil, err
	}
	if x && y {
		return NewInt(1), nil
	}
	return NewInt(0), nil
}

// Or implements the `or` operator.
func Or(pos diag.Pos, a, b *Object) (*Object, error) {
	x, err := Bool(pos, a)
	if err != nil {
		return nil, err
	}
	y, err := Bool(pos, b)
	if err != nil {
		return nil, err
	}
	if x || y {
		return NewInt(1), nil
	}
	return NewInt(0), nil
}
