// Package scope implements EXIN's identifier/scope system (spec.md §4.7):
// name resolution against only the innermost (local) and global frames —
// intermediate frames from outer function calls are never visible. This is
// the "two-level lookup", deliberately not lexical; see spec.md §9's open
// question about whether that is by design.
package scope

import (
	"exin/internal/ast"
	"exin/internal/object"
)

// IdentKind discriminates a bound name.
type IdentKind int

const (
	Variable IdentKind = iota
	Function
)

// Identifier is one bound name within a Frame.
type Identifier struct {
	Kind   IdentKind
	Name   string
	Object *object.Object // for Variable
	Func   *ast.FuncDecl  // for Function
	next   *Identifier
}

// Frame is one level of the scope stack: either the single global frame or
// the innermost local frame of the current function call. A Frame owns its
// identifier list.
type Frame struct {
	first *Identifier
}

// Each calls fn for every Identifier bound in f, most-recently-declared
// first, for debug dumping (spec.md §6 "-d16"/"-d32").
func (f *Frame) Each(fn func(*Identifier)) {
	for id := f.first; id != nil; id = id.next {
		fn(id)
	}
}

func (f *Frame) find(name string) *Identifier {
	for id := f.first; id != nil; id = id.next {
		if id.Name == name {
			return id
		}
	}
	return nil
}

// add links a new Identifier at the head of f, returning nil if name
// already exists in this frame (spec.md §4.7 "add").
func (f *Frame) add(kind IdentKind, name string) *Identifier {
	if f.find(name) != nil {
		return nil
	}
	id := &Identifier{Kind: kind, Name: name, next: f.first}
	f.first = id
	return id
}

// releaseAll unbinds and frees every identifier in f, in the order they
// were declared reversed (most-recent first), matching remove_level's
// teardown of a function-call frame.
func (f *Frame) releaseAll() {
	for id := f.first; id != nil; {
		next := id.next
		if id.Kind == Variable && id.Object != nil {
			object.Release(id.Object)
		}
		id.next = nil
		id = next
	}
	f.first = nil
}

// Scope is the linked stack of Frames: frames[0] is the global frame, which
// persists for the program lifetime; frames[len-1] is the innermost local
// frame currently active.
type Scope struct {
	frames []*Frame
}

// New creates a Scope with just the global frame.
func New() *Scope {
	return &Scope{frames: []*Frame{{}}}
}

// Global returns the process-wide global frame.
func (s *Scope) Global() *Frame { return s.frames[0] }

// Local returns the innermost active frame (the global frame itself at top
// level, before any function call has pushed a frame).
func (s *Scope) Local() *Frame { return s.frames[len(s.frames)-1] }

// Depth reports how many frames are on the stack, for checker/evaluator
// symmetry assertions in tests.
func (s *Scope) Depth() int { return len(s.frames) }

// Push pushes a fresh local frame, at function-call entry or during the
// static checker's simulated body walk.
func (s *Scope) Push() *Frame {
	f := &Frame{}
	s.frames = append(s.frames, f)
	return f
}

// Pop destroys the top frame, releasing every identifier's binding (spec.md
// §4.7 "remove_level").
func (s *Scope) Pop() {
	top := s.frames[len(s.frames)-1]
	top.releaseAll()
	s.frames = s.frames[:len(s.frames)-1]
}

// Lookup resolves name against the local frame first, then the global frame
// (spec.md §4.7). When the local frame IS the global frame (top-level code,
// no function call active) this degenerates to a single search.
func (s *Scope) Lookup(name string) *Identifier {
	local := s.Local()
	if id := local.find(name); id != nil {
		return id
	}
	if local != s.Global() {
		if id := s.Global().find(name); id != nil {
			return id
		}
	}
	return nil
}

// Add declares name as kind in the current local frame, returning nil on a
// same-scope collision (caller raises NameError).
func (s *Scope) Add(kind IdentKind, name string) *Identifier {
	return s.Local().add(kind, name)
}

// AddGlobal declares name in the global frame regardless of the current
// local frame — used for FUNCTION_DECLARATION, which is always visible
// program-wide (spec.md §4.5 "FUNCTION_DECLARATION").
func (s *Scope) AddGlobal(kind IdentKind, name string) *Identifier {
	return s.Global().add(kind, name)
}

// Bind attaches an object to a Variable identifier, releasing any previously
// bound object first (spec.md §4.7 "bind"); it does nothing for a Function
// identifier, whose node is attached with BindFunc.
func (id *Identifier) Bind(obj *object.Object) {
	if id.Kind == Variable {
		if id.Object != nil {
			object.Release(id.Object)
		}
		id.Object = obj
		return
	}
}

// BindFunc attaches the declaration node fn to a Function identifier.
func (id *Identifier) BindFunc(fn *ast.FuncDecl) { id.Func = fn }

// Unbind releases id's binding (spec.md §4.7 "unbind").
func (id *Identifier) Unbind() {
	if id.Kind == Variable && id.Object != nil {
		object.Release(id.Object)
		id.Object = nil
	}
}
