package object

// Copy produces a deep, independent value for every kind (spec.md §4.6
// "Copy semantics"): list copy recursively copies elements, and copying a
// LISTNODE returns a copy of its contained object. The result has refcount
// 1, owned by the caller.
func Copy(o *Object) *Object {
	switch o.Kind {
	case NONE:
		return None
	case CHAR:
		return NewChar(o.CharVal)
	case INT:
		return NewInt(o.IntVal)
	case FLOAT:
		return NewFloat(o.FloatVal)
	case STR:
		return NewStr(o.StrVal)
	case LIST:
		out := NewList()
		for n := o.Head; n != nil; n = n.Next {
			out.Append(Copy(n.Elem))
		}
		return out
	case LISTNODE:
		return Copy(o.Elem)
	default:
		return None
	}
}
