// Package builtin holds EXIN's free-function registry: chr, ord, type
// (spec.md §4.6 "Built-in free functions"). Entries are kept sorted by name
// so Lookup can binary search, mirroring internal/token's keyword table.
package builtin

import (
	"sort"

	"exin/internal/diag"
	"exin/internal/object"
)

// Func implements one built-in. args have already been evaluated and are
// owned by the call; Func must release every arg it consumes.
type Func func(pos diag.Pos, args []*object.Object) (*object.Object, error)

type entry struct {
	Name string
	Argc int
	Fn   Func
}

var table = []entry{
	{"chr", 1, chr},
	{"ord", 1, ord},
	{"type", 1, typeOf},
}

func init() {
	sort.Slice(table, func(i, j int) bool { return table[i].Name < table[j].Name })
}

func find(name string) (entry, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].Name >= name })
	if i < len(table) && table[i].Name == name {
		return table[i], true
	}
	return entry{}, false
}

// IsBuiltin reports whether name names a built-in, for the parser to tag
// FUNCTION_CALL.IsBuiltin the way the original's is_builtin does.
func IsBuiltin(name string) bool {
	_, ok := find(name)
	return ok
}

// Argc returns the declared arity of a built-in, for the checker's arity
// validation. ok is false if name is not a built-in.
func Argc(name string) (argc int, ok bool) {
	e, ok := find(name)
	return e.Argc, ok
}

// Call invokes a built-in by name.
func Call(pos diag.Pos, name string, args []*object.Object) (*object.Object, error) {
	e, ok := find(name)
	if !ok {
		return nil, diag.New(diag.DesignError, pos, "unknown builtin %q", name)
	}
	return e.Fn(pos, args)
}

func chr(pos diag.Pos, args []*object.Object) (*object.Object, error) {
	n := object.Unwrap(args[0])
	if !n.IsNumeric() {
		object.Release(args[0])
		return nil, diag.New(diag.TypeError, pos, "chr() expects a number")
	}
	if v := n.AsInt(); v < 0 || v > 255 {
		object.Release(args[0])
		return nil, diag.New(diag.TypeError, pos, "chr() argument %d out of range 0..255", v)
	}
	result := object.NewStr([]byte{byte(n.AsInt())})
	object.Release(args[0])
	return result, nil
}

func ord(pos diag.Pos, args []*object.Object) (*object.Object, error) {
	s := object.Unwrap(args[0])
	if s.Kind != object.STR || s.Len() != 1 {
		object.Release(args[0])
		return nil, diag.New(diag.TypeError, pos, "ord() expects a single-character string")
	}
	result := object.NewInt(int(s.StrVal[0]))
	object.Release(args[0])
	return result, nil
}

func typeOf(pos diag.Pos, args []*object.Object) (*object.Object, error) {
	u := object.Unwrap(args[0])
	result := object.NewStrString(u.TypeName())
	object.Release(args[0])
	return result, nil
}
