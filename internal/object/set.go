package object

import "exin/internal/diag"

// Set copies value into target in place (spec.md §4.5 "ASSIGNMENT: For =,
// copy value into target in-place via the target's set operation"). A STR
// target accepts any value, auto-converting it to its string form first;
// every other target kind requires a same-kind (coercible numeric) value.
func (target *Object) Set(pos diag.Pos, value *Object) error {
	value = Unwrap(value)
	switch target.Kind {
	case STR:
		target.StrVal = []byte(value.String())
		return nil
	case CHAR:
		if !isNumeric(value.Kind) {
			return diag.New(diag.TypeError, pos, "cannot assign %v to char", value.Kind)
		}
		target.CharVal = byte(asInt(value))
		return nil
	case INT:
		if !isNumeric(value.Kind) {
			return diag.New(diag.TypeError, pos, "cannot assign %v to int", value.Kind)
		}
		target.IntVal = asInt(value)
		return nil
	case FLOAT:
		if !isNumeric(value.Kind) {
			return diag.New(diag.TypeError, pos, "cannot assign %v to float", value.Kind)
		}
		target.FloatVal = asFloat(value)
		return nil
	case LIST:
		if value.Kind != LIST {
			return diag.New(diag.TypeError, pos, "cannot assign %v to list", value.Kind)
		}
		for n := target.Head; n != nil; {
			next := n.Next
			Release(n.Elem)
			n = next
		}
		target.Head, target.Tail = nil, nil
		for n := value.Head; n != nil; n = n.Next {
			target.Append(Copy(n.Elem))
		}
		return nil
	default:
		return diag.New(diag.DesignError, pos, "cannot assign to %v", target.Kind)
	}
}
