package object

import "exin/internal/diag"

// Method invokes o's `.name(args)` trailer (spec.md §4.6 "Methods"): `len()`
// on STR and LIST, `append(x)`, `insert(i,x)`, `remove(i)` on LIST. args
// have already been evaluated; Method takes ownership of them. An unknown
// method name is a SyntaxError, matching the static checker's arity/name
// validation for built-ins.
func (o *Object) Method(pos diag.Pos, name string, args []*Object) (*Object, error) {
	u := Unwrap(o)
	switch name {
	case "len":
		if len(args) != 0 {
			return nil, diag.New(diag.SyntaxError, pos, "len() takes no arguments")
		}
		if u.Kind != STR && u.Kind != LIST {
			return nil, diag.New(diag.TypeError, pos, "len() not defined for %v", u.Kind)
		}
		return NewInt(u.Len()), nil
	case "append":
		if u.Kind != LIST {
			return nil, diag.New(diag.TypeError, pos, "append() not defined for %v", u.Kind)
		}
		if len(args) != 1 {
			return nil, diag.New(diag.SyntaxError, pos, "append() takes exactly one argument")
		}
		u.Append(args[0])
		return Ref(u), nil
	case "insert":
		if u.Kind != LIST {
			return nil, diag.New(diag.TypeError, pos, "insert() not defined for %v", u.Kind)
		}
		if len(args) != 2 {
			return nil, diag.New(diag.SyntaxError, pos, "insert() takes exactly two arguments")
		}
		idx := Unwrap(args[0])
		if idx.Kind != INT && idx.Kind != CHAR {
			return nil, diag.New(diag.TypeError, pos, "insert() index must be numeric")
		}
		u.Insert(asInt(idx), args[1])
		Release(args[0])
		return Ref(u), nil
	case "remove":
		if u.Kind != LIST {
			return nil, diag.New(diag.TypeError, pos, "remove() not defined for %v", u.Kind)
		}
		if len(args) != 1 {
			return nil, diag.New(diag.SyntaxError, pos, "remove() takes exactly one argument")
		}
		idx := Unwrap(args[0])
		if idx.Kind != INT && idx.Kind != CHAR {
			return nil, diag.New(diag.TypeError, pos, "remove() index must be numeric")
		}
		result := u.Remove(asInt(idx))
		Release(args[0])
		return result, nil
	default:
		return nil, diag.New(diag.SyntaxError, pos, "unknown method %q on %v", name, u.Kind)
	}
}

// HasMethod reports whether name is a valid method for kind, and its arity.
func HasMethod(kind Kind, name string) (arity int, ok bool) {
	switch name {
	case "len":
		return 0, kind == STR || kind == LIST
	case "append":
		return 1, kind == LIST
	case "insert":
		return 2, kind == LIST
	case "remove":
		return 1, kind == LIST
	default:
		return 0, false
	}
}
