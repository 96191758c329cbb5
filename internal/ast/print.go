package ast

import (
	"fmt"
	"io"
)

// Fprint writes a parenthesised s-expression rendering of node to w, in the
// style of go/ast's printer (spec.md §8 "parse(source).print round-trips").
// Every node kind writes its own literal lexemes verbatim so that two
// Fprint calls over equivalent trees produce byte-identical output.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.node(node)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) node(n Node) {
	if n == nil {
		p.printf("nil")
		return
	}
	switch v := n.(type) {
	case *Literal:
		p.printf("(lit %s)", v.Lexeme)
	case *Unary:
		p.printf("(unary %d ", v.Op)
		p.node(v.Operand)
		p.printf(")")
	case *Binary:
		p.printf("(binop %d ", v.Op)
		p.node(v.Left)
		p.printf(" ")
		p.node(v.Right)
		p.printf(")")
	case *Assignment:
		p.printf("(assign %d ", v.Op)
		p.node(v.Target)
		p.printf(" ")
		p.node(v.Expression)
		p.printf(")")
	case *Index:
		p.printf("(index ")
		p.node(v.Sequence)
		p.printf(" ")
		p.node(v.IndexExp)
		p.printf(")")
	case *Slice:
		p.printf("(slice ")
		p.node(v.Sequence)
		p.printf(" ")
		p.node(v.Start)
		p.printf(" ")
		p.node(v.End)
		p.printf(")")
	case *Reference:
		p.printf("(ref %s)", v.Name)
	case *Call:
		p.printf("(call %s", v.Name)
		for _, a := range v.Args {
			p.printf(" ")
			p.node(a)
		}
		p.printf(")")
	case *FuncDecl:
		p.printf("(def %s (", v.Name)
		for i, f := range v.Formals {
			if i > 0 {
				p.printf(" ")
			}
			p.printf("%s", f)
		}
		p.printf(") ")
		p.node(v.Body)
		p.printf(")")
	case *DefVar:
		p.printf("(defvar %d %s", v.Type, v.Name)
		if v.Initial != nil {
			p.printf(" ")
			p.node(v.Initial)
		}
		p.printf(")")
	case *VarDecl:
		p.printf("(vardecl")
		for _, d := range v.Vars {
			p.printf(" ")
			p.node(d)
		}
		p.printf(")")
	case *If:
		p.printf("(if ")
		p.node(v.Condition)
		p.printf(" ")
		p.node(v.Consequent)
		if v.Alternative != nil {
			p.printf(" ")
			p.node(v.Alternative)
		}
		p.printf(")")
	case *While:
		p.printf("(while ")
		p.node(v.Condition)
		p.printf(" ")
		p.node(v.Body)
		p.printf(")")
	case *Do:
		p.printf("(do ")
		p.node(v.Body)
		p.printf(" ")
		p.node(v.Condition)
		p.printf(")")
	case *For:
		p.printf("(for %s ", v.Target)
		p.node(v.Sequence)
		p.printf(" ")
		p.node(v.Body)
		p.printf(")")
	case *Block:
		p.printf("(block")
		for _, s := range v.Statements {
			p.printf(" ")
			p.node(s)
		}
		p.printf(")")
	case *Print:
		p.printf("(print %v", v.Raw)
		for _, e := range v.Expressions {
			p.printf(" ")
			p.node(e)
		}
		p.printf(")")
	case *Input:
		p.printf("(input")
		for i, id := range v.Identifiers {
			p.printf(" %q:%s", v.Prompts[i], id)
		}
		p.printf(")")
	case *Return:
		p.printf("(return")
		if v.Value != nil {
			p.printf(" ")
			p.node(v.Value)
		}
		p.printf(")")
	case *Import:
		p.printf("(import %s)", v.Name)
	case *Pass:
		p.printf("(pass)")
	case *Break:
		p.printf("(break)")
	case *Continue:
		p.printf("(continue)")
	case *ArgList:
		p.printf("(list")
		for _, e := range v.Elements {
			p.printf(" ")
			p.node(e)
		}
		p.printf(")")
	case *CommaExpr:
		p.printf("(comma")
		for _, e := range v.Expressions {
			p.printf(" ")
			p.node(e)
		}
		p.printf(")")
	default:
		p.printf("(?%T)", v)
	}
	if m := n.Trailer(); m != nil {
		p.printf(".%s(", m.Name)
		for i, a := range m.Args {
			if i > 0 {
				p.printf(" ")
			}
			p.node(a)
		}
		p.printf(")")
	}
}

// Count returns the number of nodes in the tree rooted at node, for the
// "print round-trips" testable property (spec.md §8).
func Count(node Node) int {
	if node == nil {
		return 0
	}
	n := 1
	switch v := node.(type) {
	case *Unary:
		n += Count(v.Operand)
	case *Binary:
		n += Count(v.Left) + Count(v.Right)
	case *Assignment:
		n += Count(v.Target) + Count(v.Expression)
	case *Index:
		n += Count(v.Sequence) + Count(v.IndexExp)
	case *Slice:
		n += Count(v.Sequence) + Count(v.Start) + Count(v.End)
	case *Call:
		for _, a := range v.Args {
			n += Count(a)
		}
	case *FuncDecl:
		n += Count(v.Body)
	case *DefVar:
		n += Count(v.Initial)
	case *VarDecl:
		for _, d := range v.Vars {
			n += Count(d)
		}
	case *If:
		n += Count(v.Condition) + Count(v.Consequent) + Count(v.Alternative)
	case *While:
		n += Count(v.Condition) + Count(v.Body)
	case *Do:
		n += Count(v.Condition) + Count(v.Body)
	case *For:
		n += Count(v.Sequence) + Count(v.Body)
	case *Block:
		for _, s := range v.Statements {
			n += Count(s)
		}
	case *Print:
		for _, e := range v.Expressions {
			n += Count(e)
		}
	case *Return:
		n += Count(v.Value)
	case *ArgList:
		for _, e := range v.Elements {
			n += Count(e)
		}
	case *CommaExpr:
		for _, e := range v.Expressions {
			n += Count(e)
		}
	}
	if m := node.Trailer(); m != nil {
		for _, a := range m.Args {
			n += Count(a)
		}
	}
	return n
}
