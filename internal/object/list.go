package object

import "exin/internal/diag"

// Len returns the number of elements for LIST or STR kinds.
func (o *Object) Len() int {
	switch o.Kind {
	case STR:
		return len(o.StrVal)
	case LIST:
		n := 0
		for c := o.Head; c != nil; c = c.Next {
			n++
		}
		return n
	default:
		return 0
	}
}

// Append wraps x in a new LISTNODE and links it at the tail (spec.md §4.6
// "List operations"). Append takes ownership of one reference to x (the
// caller's reference is transferred in, matching how `.append(x)` consumes
// its evaluated argument).
func (o *Object) Append(x *Object) {
	n := &Object{Kind: LISTNODE, refcount: 1, Elem: x}
	if o.Tail == nil {
		o.Head, o.Tail = n, n
	} else {
		n.Prev = o.Tail
		o.Tail.Next = n
		o.Tail = n
	}
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	return i
}

// nodeAt returns the LISTNODE at position i (already normalised for
// negative indices), or nil if out of range.
func (o *Object) nodeAt(i int) *Object {
	length := o.Len()
	i = normalizeIndex(i, length)
	if i < 0 || i >= length {
		return nil
	}
	n := o.Head
	for ; i > 0; i-- {
		n = n.Next
	}
	return n
}

// Item returns the element at index i (spec.md §4.6): for STR a new CHAR,
// for LIST the contained object with its refcount incremented. Returns a
// *diag.Error of Kind IndexError if i is out of range.
func (o *Object) Item(pos diag.Pos, i int) (*Object, error) {
	switch o.Kind {
	case STR:
		i = normalizeIndex(i, len(o.StrVal))
		if i < 0 || i >= len(o.StrVal) {
			return nil, diag.New(diag.IndexError, pos, "string index %d out of range", i)
		}
		return NewChar(o.StrVal[i]), nil
	case LIST:
		n := o.nodeAt(i)
		if n == nil {
			return nil, diag.New(diag.IndexError, pos, "list index %d out of range", i)
		}
		return Ref(n.Elem), nil
	default:
		return nil, diag.New(diag.TypeError, pos, "%v is not a sequence", o.Kind)
	}
}

func clampSlice(n, length int) int {
	if n < 0 {
		n += length
		if n < 0 {
			n = 0
		}
	}
	if n > length {
		n = length
	}
	return n
}

// SliceRange returns the half-open, clamped range [start, end) over o's
// length, normalising negative indices by adding len then clamping to
// [0, len] (spec.md §8 "Slicing clamps ... never raises IndexError").
func SliceRange(start, end, length int) (int, int) {
	s := clampSlice(start, length)
	e := clampSlice(end, length)
	if s > e {
		e = s
	}
	return s, e
}

// Slice returns a new sequence of the same kind containing o[start:end)
// (spec.md §4.5 "SLICE").
func (o *Object) Slice(start, end int) *Object {
	s, e := SliceRange(start, end, o.Len())
	switch o.Kind {
	case STR:
		return NewStr(o.StrVal[s:e])
	case LIST:
		out := NewList()
		n := o.Head
		for i := 0; i < s && n != nil; i++ {
			n = n.Next
		}
		for i := s; i < e && n != nil; i++ {
			out.Append(Ref(n.Elem))
			n = n.Next
		}
		return out
	default:
		return nil
	}
}

// Insert places a new LISTNODE wrapping x before the resolved position
// (spec.md §4.6): a negative index counts from the end; inserting into an
// empty list always yields a single-node list regardless of index; an index
// at or beyond len appends (original_source clarification, see
// SPEC_FULL.md).
func (o *Object) Insert(index int, x *Object) {
	if o.Head == nil {
		o.Append(x)
		return
	}
	length := o.Len()
	i := normalizeIndex(index, length)
	if i <= 0 {
		n := &Object{Kind: LISTNODE, refcount: 1, Elem: x, Next: o.Head}
		o.Head.Prev = n
		o.Head = n
		return
	}
	if i >= length {
		o.Append(x)
		return
	}
	at := o.nodeAt(i)
	n := &Object{Kind: LISTNODE, refcount: 1, Elem: x, Prev: at.Prev, Next: at}
	at.Prev.Next = n
	at.Prev = n
}

// Remove unlinks the node at index, returning its contained object with the
// listnode's reference transferred to the caller (so destroying the
// listnode does not free it), or None if index is out of range (spec.md
// §4.6 "remove(index)").
func (o *Object) Remove(index int) *Object {
	n := o.nodeAt(index)
	if n == nil {
		return None
	}
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		o.Head = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		o.Tail = n.Prev
	}
	elem := n.Elem // transfer the listnode's reference to the caller
	n.Elem, n.Prev, n.Next = nil, nil, nil
	return elem
}
