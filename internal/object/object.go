// Package object implements EXIN's runtime value model (spec.md §3, §4.6):
// seven object kinds (CHAR, INT, FLOAT, STR, LIST, LISTNODE, NONE) sharing a
// common header of type tag, reference count, and kind-specific payload.
//
// Rather than the C source's struct-of-function-pointers vtable, each Object
// is a single tagged value and dispatch is done by switching on Kind — the
// design note's "single sum type... dispatch by match". Object lifetime
// still follows the source's deterministic reference counting exactly
// (spec.md §3 invariants, §8 "no object is freed while still reachable"),
// since the testable properties require immediate destruction at last
// release, not merely eventual GC.
package object

import "fmt"

// Kind discriminates an Object.
type Kind int

const (
	NONE Kind = iota
	CHAR
	INT
	FLOAT
	STR
	LIST
	LISTNODE
)

func (k Kind) String() string {
	switch k {
	case NONE:
		return "none"
	case CHAR:
		return "char"
	case INT:
		return "int"
	case FLOAT:
		return "float"
	case STR:
		return "str"
	case LIST:
		return "list"
	case LISTNODE:
		return "listnode"
	default:
		return "?"
	}
}

// Object is a runtime EXIN value. Only the fields relevant to Kind are
// meaningful; this mirrors the C union but keeps the Go representation
// simple and inspectable in tests/dumps.
type Object struct {
	Kind     Kind
	refcount int

	CharVal  byte
	IntVal   int
	FloatVal float64
	StrVal   []byte

	// LIST: doubly-linked chain of LISTNODE objects.
	Head, Tail *Object

	// LISTNODE: links within the owning LIST, plus the wrapped value.
	Prev, Next *Object
	Elem       *Object
}

// None is the shared "no value" sentinel. Its refcount is never consulted by
// lifetime rules (spec.md §3 invariants).
var None = &Object{Kind: NONE}

// NewChar, NewInt, NewFloat, NewStr and NewList each allocate a fresh Object
// with refcount 1 (spec.md §3 "Lifecycle").
func NewChar(b byte) *Object      { return &Object{Kind: CHAR, refcount: 1, CharVal: b} }
func NewInt(i int) *Object        { return &Object{Kind: INT, refcount: 1, IntVal: i} }
func NewFloat(f float64) *Object  { return &Object{Kind: FLOAT, refcount: 1, FloatVal: f} }
func NewStr(s []byte) *Object     { return &Object{Kind: STR, refcount: 1, StrVal: append([]byte(nil), s...)} }
func NewStrString(s string) *Object { return NewStr([]byte(s)) }
func NewList() *Object            { return &Object{Kind: LIST, refcount: 1} }

func newListNode(elem *Object) *Object {
	return &Object{Kind: LISTNODE, refcount: 1, Elem: Ref(elem)}
}

// Refcount exposes the current count, for tests asserting spec.md §8's
// "o.refcount ≥ 1 for every reachable object" invariant.
func (o *Object) Refcount() int { return o.refcount }

// Ref increments o's refcount (a no-op, returning o unchanged, for the None
// singleton) and returns o, mirroring every "outgoing ownership" point in
// spec.md §3: pushed to the operand stack, bound to an identifier, stored in
// a listnode, or returned from an operator.
func Ref(o *Object) *Object {
	if o != nil && o != None {
		o.refcount++
	}
	return o
}

// Release decrements o's refcount and frees it immediately once the count
// reaches zero (spec.md §3 "An object is destroyed the instant its refcount
// reaches 0").
func Release(o *Object) {
	if o == nil || o == None {
		return
	}
	o.refcount--
	if o.refcount <= 0 {
		free(o)
	}
}

func free(o *Object) {
	switch o.Kind {
	case LIST:
		for n := o.Head; n != nil; {
			next := n.Next
			Release(n.Elem)
			n.Elem, n.Prev, n.Next = nil, nil, nil
			n = next
		}
		o.Head, o.Tail = nil, nil
	case LISTNODE:
		Release(o.Elem)
		o.Elem = nil
	}
}

// Unwrap returns o.Elem if o is a LISTNODE, else o itself — "op1, op2 may be
// unwrapped from LISTNODE before dispatch" (spec.md §4.6).
func Unwrap(o *Object) *Object {
	if o != nil && o.Kind == LISTNODE {
		return o.Elem
	}
	return o
}

// TypeName returns the user-visible type name used by the `type` builtin.
func (o *Object) TypeName() string { return Unwrap(o).Kind.String() }

// GoString supports %#v and debug dumps.
func (o *Object) GoString() string {
	u := Unwrap(o)
	switch u.Kind {
	case CHAR:
		return fmt.Sprintf("CHAR(%q rc=%d)", rune(u.CharVal), o.refcount)
	case INT:
		return fmt.Sprintf("INT(%d rc=%d)", u.IntVal, o.refcount)
	case FLOAT:
		return fmt.Sprintf("FLOAT(%g rc=%d)", u.FloatVal, o.refcount)
	case STR:
		return fmt.Sprintf("STR(%q rc=%d)", u.StrVal, o.refcount)
	case LIST:
		return fmt.Sprintf("LIST(len=%d rc=%d)", u.Len(), o.refcount)
	case NONE:
		return "NONE"
	default:
		return fmt.Sprintf("%v(rc=%d)", u.Kind, o.refcount)
	}
}
