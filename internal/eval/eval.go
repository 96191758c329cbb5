// Package eval implements EXIN's tree-walking evaluator (spec.md §4.5, §5):
// a second depth-first traversal of the checked AST that exchanges values
// through an explicit operand stack instead of returning them, exactly the
// way internal/check exchanges no values at all. Control flow (break,
// continue, return) propagates as sticky flags a loop or function-call
// visitor consults and clears, not as Go-level panics.
package eval

import (
	"bufio"
	"io"
	"strings"

	"exin/internal/ast"
	"exin/internal/builtin"
	"exin/internal/diag"
	"exin/internal/object"
	"exin/internal/scope"
)

// LineSize bounds one line read by an `input` statement (spec.md §6
// "input reads up to 128 bytes (LINESIZE) per line from stdin").
const LineSize = 128

// Eval walks one checked AST. It owns the operand stack, the live scope
// (distinct from whatever scope.Scope internal/check used — the checker's
// bindings are simulated and thrown away once checking finishes; evaluation
// builds its own bindings from scratch as it executes, spec.md §4.7), and
// the program's stdout/stdin streams.
type Eval struct {
	sc     *scope.Scope
	stack  []*object.Object
	stdout io.Writer
	stdin  *bufio.Reader

	doBreak, doContinue, doReturn bool
}

// New creates an Eval with a fresh global scope.
func New(stdout io.Writer, stdin io.Reader) *Eval {
	return &Eval{sc: scope.New(), stdout: stdout, stdin: bufio.NewReader(stdin)}
}

// Scope returns the evaluator's live identifier scope, for debug dumping
// after Run returns (spec.md §6 "-d16"/"-d32").
func (e *Eval) Scope() *scope.Scope { return e.sc }

func (e *Eval) push(o *object.Object) { e.stack = append(e.stack, o) }

func (e *Eval) pop() *object.Object {
	n := len(e.stack) - 1
	o := e.stack[n]
	e.stack[n] = nil
	e.stack = e.stack[:n]
	return o
}

// Depth reports the current operand stack depth, for tests asserting
// spec.md §8's stack-depth invariants.
func (e *Eval) Depth() int { return len(e.stack) }

// Run visits root, the top level of a program or module. Per SUPPLEMENTED
// FEATURES, only a top-level expression-statement contributes its value to
// the caller (for the CLI exit-code rule, spec.md §6); every other
// statement, including expression-statements anywhere else in the tree,
// nets to zero stack depth (spec.md §8 "depth before = depth after").
func (e *Eval) Run(root *ast.Block) (*object.Object, error) {
	stmts := root.Statements
	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last && isExprStmt(stmt) {
			if err := e.visitExpr(stmt); err != nil {
				return nil, err
			}
			return e.pop(), nil
		}
		if err := e.visitStmt(stmt); err != nil {
			return nil, err
		}
		if e.doReturn {
			object.Release(e.pop()) // a top-level `return`'s value is not the exit-code expression
			e.doReturn = false
			break
		}
	}
	return nil, nil
}

// isExprStmt reports whether n is a bare expression used as a statement (an
// assignment, a call, ...): false for the dedicated statement node kinds,
// true for anything else reaching block-statement position.
func isExprStmt(n ast.Node) bool {
	switch n.(type) {
	case *ast.Pass, *ast.Break, *ast.Continue, *ast.Return, *ast.If, *ast.While,
		*ast.Do, *ast.For, *ast.Block, *ast.Print, *ast.Input, *ast.Import,
		*ast.VarDecl, *ast.DefVar, *ast.FuncDecl:
		return false
	default:
		return true
	}
}

// visitStmt visits n for effect only, leaving the stack depth unchanged.
func (e *Eval) visitStmt(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Pass:
		return nil

	case *ast.Break:
		e.doBreak = true
		return nil

	case *ast.Continue:
		e.doContinue = true
		return nil

	case *ast.Return:
		if v.Value == nil {
			e.push(object.NewInt(0))
		} else if err := e.visitExpr(v.Value); err != nil {
			return err
		}
		e.doReturn = true
		return nil

	case *ast.If:
		if err := e.visitExpr(v.Condition); err != nil {
			return err
		}
		cond := e.pop()
		b, err := object.Bool(v.Pos(), cond)
		object.Release(cond)
		if err != nil {
			return err
		}
		if b {
			return e.visitStmt(v.Consequent)
		}
		if v.Alternative != nil {
			return e.visitStmt(v.Alternative)
		}
		return nil

	case *ast.While:
		e.doBreak, e.doContinue = false, false
		for {
			if err := e.visitExpr(v.Condition); err != nil {
				return err
			}
			cond := e.pop()
			b, err := object.Bool(v.Pos(), cond)
			object.Release(cond)
			if err != nil {
				return err
			}
			if !b || e.doBreak || e.doReturn {
				break
			}
			if err := e.visitStmt(v.Body); err != nil {
				return err
			}
			e.doContinue = false
		}
		e.doBreak = false
		return nil

	case *ast.Do:
		e.doBreak, e.doContinue = false, false
		for {
			if err := e.visitStmt(v.Body); err != nil {
				return err
			}
			e.doContinue = false

			if err := e.visitExpr(v.Condition); err != nil {
				return err
			}
			cond := e.pop()
			b, err := object.Bool(v.Pos(), cond)
			object.Release(cond)
			if err != nil {
				return err
			}
			if !b || e.doBreak || e.doReturn {
				break
			}
		}
		e.doBreak = false
		return nil

	case *ast.For:
		return e.visitFor(v)

	case *ast.Block:
		for _, s := range v.Statements {
			if err := e.visitStmt(s); err != nil {
				return err
			}
			if e.doBreak || e.doContinue || e.doReturn {
				break
			}
		}
		return nil

	case *ast.Print:
		return e.visitPrint(v)

	case *ast.Input:
		return e.visitInput(v)

	case *ast.Import:
		return e.visitStmt(v.Sub)

	case *ast.VarDecl:
		for _, dv := range v.Vars {
			if err := e.visitStmt(dv); err != nil {
				return err
			}
		}
		return nil

	case *ast.DefVar:
		return e.visitDefVar(v)

	case *ast.FuncDecl:
		id := e.sc.AddGlobal(scope.Function, v.Name)
		if id == nil {
			id = e.sc.Lookup(v.Name)
		}
		id.BindFunc(v)
		return nil

	default:
		// A bare expression used as a statement: evaluate it and discard
		// the result (spec.md §8 "depth before = depth after").
		if err := e.visitExpr(n); err != nil {
			return err
		}
		object.Release(e.pop())
		return nil
	}
}

func (e *Eval) visitFor(v *ast.For) error {
	id := e.sc.Lookup(v.Target)
	if id == nil {
		id = e.sc.Add(scope.Variable, v.Target)
	}
	id.Bind(object.None)

	if err := e.visitExpr(v.Sequence); err != nil {
		return err
	}
	seq := e.pop()
	length := object.Unwrap(seq).Len()

	e.doBreak, e.doContinue = false, false
	for i := 0; i < length && !e.doBreak && !e.doReturn; i++ {
		item, err := object.Unwrap(seq).Item(v.Pos(), i)
		if err != nil {
			object.Release(seq)
			return err
		}
		id.Bind(item)
		if err := e.visitStmt(v.Body); err != nil {
			object.Release(seq)
			return err
		}
		e.doContinue = false
	}
	e.doBreak = false

	object.Release(seq)
	return nil
}

func (e *Eval) visitPrint(v *ast.Print) error {
	for i, expr := range v.Expressions {
		if i > 0 && !v.Raw {
			if _, err := io.WriteString(e.stdout, " "); err != nil {
				return err
			}
		}
		if err := e.visitExpr(expr); err != nil {
			return err
		}
		obj := e.pop()
		err := obj.Fprint(e.stdout)
		object.Release(obj)
		if err != nil {
			return err
		}
	}
	if !v.Raw {
		if _, err := io.WriteString(e.stdout, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (e *Eval) visitInput(v *ast.Input) error {
	for i, name := range v.Identifiers {
		if v.Prompts[i] != "" {
			if _, err := io.WriteString(e.stdout, v.Prompts[i]); err != nil {
				return err
			}
		}

		id := e.sc.Lookup(name)
		line, err := e.readLine()
		if err != nil {
			return err
		}

		var obj *object.Object
		kind := object.NONE
		if id.Object != nil {
			kind = object.Unwrap(id.Object).Kind
		}
		switch kind {
		case object.CHAR:
			obj, err = object.ToChar(v.Pos(), []byte(line))
		case object.INT:
			obj, err = object.ToInt(v.Pos(), []byte(line))
		case object.FLOAT:
			obj, err = object.ToFloat(v.Pos(), []byte(line))
		case object.STR:
			obj = object.NewStrString(line)
		default:
			err = diag.New(diag.TypeError, v.Pos(), "input: %q is not a scalar variable", name)
		}
		if err != nil {
			return err
		}
		id.Bind(obj)
	}
	return nil
}

func (e *Eval) readLine() (string, error) {
	line, err := e.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", diag.Wrap(diag.SystemError, diag.Pos{}, err)
	}
	if len(line) > LineSize {
		line = line[:LineSize]
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func zeroObject(vt ast.VarType) *object.Object {
	switch vt {
	case ast.CharVar:
		return object.NewChar(0)
	case ast.IntVar:
		return object.NewInt(0)
	case ast.FloatVar:
		return object.NewFloat(0)
	case ast.StrVar:
		return object.NewStrString("")
	case ast.ListVar:
		return object.NewList()
	default:
		return object.None
	}
}

func (e *Eval) visitDefVar(v *ast.DefVar) error {
	id := e.sc.Add(scope.Variable, v.Name)
	if id == nil {
		id = e.sc.Lookup(v.Name)
	}
	id.Bind(zeroObject(v.Type))

	if v.Initial == nil {
		return nil
	}
	if err := e.visitExpr(v.Initial); err != nil {
		return err
	}
	val := e.pop()
	err := id.Object.Set(v.Pos(), val)
	object.Release(val)
	return err
}

// visitExpr visits n, leaving exactly one object on the stack, then applies
// n's optional method-call trailer, replacing that value with the method's
// result (spec.md §4.5 "Method suffix").
func (e *Eval) visitExpr(n ast.Node) error {
	if err := e.visitExprNode(n); err != nil {
		return err
	}
	return e.applyTrailer(n)
}

func (e *Eval) applyTrailer(n ast.Node) error {
	m := n.Trailer()
	if m == nil {
		return nil
	}
	recv := e.pop()

	args := make([]*object.Object, 0, len(m.Args))
	for _, a := range m.Args {
		if err := e.visitExpr(a); err != nil {
			object.Release(recv)
			for _, v := range args {
				object.Release(v)
			}
			return err
		}
		args = append(args, e.pop())
	}

	result, err := object.Unwrap(recv).Method(n.Pos(), m.Name, args)
	object.Release(recv)
	if err != nil {
		return err
	}
	e.push(result)
	return nil
}

func (e *Eval) visitExprNode(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Literal:
		parsed := v.Parsed.(*object.Object)
		e.push(object.Copy(parsed))
		return nil

	case *ast.Reference:
		id := e.sc.Lookup(v.Name)
		e.push(object.Ref(id.Object))
		return nil

	case *ast.Call:
		return e.visitCall(v)

	case *ast.Unary:
		return e.visitUnary(v)

	case *ast.Binary:
		return e.visitBinary(v)

	case *ast.Assignment:
		return e.visitAssignment(v)

	case *ast.Index:
		if err := e.visitExpr(v.Sequence); err != nil {
			return err
		}
		seq := e.pop()
		if err := e.visitExpr(v.IndexExp); err != nil {
			object.Release(seq)
			return err
		}
		idx := e.pop()
		obj, err := object.Unwrap(seq).Item(v.Pos(), object.Unwrap(idx).AsInt())
		object.Release(idx)
		object.Release(seq)
		if err != nil {
			return err
		}
		e.push(obj)
		return nil

	case *ast.Slice:
		if err := e.visitExpr(v.Sequence); err != nil {
			return err
		}
		seq := e.pop()
		if err := e.visitExpr(v.Start); err != nil {
			object.Release(seq)
			return err
		}
		start := e.pop()
		if err := e.visitExpr(v.End); err != nil {
			object.Release(start)
			object.Release(seq)
			return err
		}
		end := e.pop()
		obj := object.Unwrap(seq).Slice(object.Unwrap(start).AsInt(), object.Unwrap(end).AsInt())
		object.Release(end)
		object.Release(start)
		object.Release(seq)
		e.push(obj)
		return nil

	case *ast.ArgList:
		out := object.NewList()
		for _, elem := range v.Elements {
			if err := e.visitExpr(elem); err != nil {
				object.Release(out)
				return err
			}
			out.Append(e.pop())
		}
		e.push(out)
		return nil

	case *ast.CommaExpr:
		for i, expr := range v.Expressions {
			if err := e.visitExpr(expr); err != nil {
				return err
			}
			if i < len(v.Expressions)-1 {
				object.Release(e.pop()) // only the last expression's value survives
			}
		}
		return nil

	default:
		return diag.New(diag.DesignError, n.Pos(), "unvisitable node type %T", n)
	}
}

func (e *Eval) visitUnary(v *ast.Unary) error {
	if err := e.visitExpr(v.Operand); err != nil {
		return err
	}
	switch v.Op {
	case ast.Not:
		obj := e.pop()
		result, err := object.LogicalNot(v.Pos(), obj)
		object.Release(obj)
		if err != nil {
			return err
		}
		e.push(result)
	case ast.Neg:
		obj := e.pop()
		result, err := object.Neg(v.Pos(), obj)
		object.Release(obj)
		if err != nil {
			return err
		}
		e.push(result)
	case ast.Pos_:
		// unary + is a no-op; the operand's value is left as-is.
	}
	return nil
}

func (e *Eval) visitBinary(v *ast.Binary) error {
	if err := e.visitExpr(v.Left); err != nil {
		return err
	}
	left := e.pop()
	if err := e.visitExpr(v.Right); err != nil {
		object.Release(left)
		return err
	}
	right := e.pop()

	var result *object.Object
	var err error
	switch v.Op {
	case ast.Add:
		result, err = object.Add(v.Pos(), left, right)
	case ast.Sub:
		result, err = object.Arith(v.Pos(), object.OpSub, left, right)
	case ast.Mul:
		result, err = object.Mul(v.Pos(), left, right)
	case ast.Div:
		result, err = object.Arith(v.Pos(), object.OpDiv, left, right)
	case ast.Mod:
		result, err = object.Arith(v.Pos(), object.OpMod, left, right)
	case ast.Lt:
		result, err = boolObj(object.Compare(v.Pos(), object.CmpLt, left, right))
	case ast.Le:
		result, err = boolObj(object.Compare(v.Pos(), object.CmpLe, left, right))
	case ast.Gt:
		result, err = boolObj(object.Compare(v.Pos(), object.CmpGt, left, right))
	case ast.Ge:
		result, err = boolObj(object.Compare(v.Pos(), object.CmpGe, left, right))
	case ast.Eq:
		result = intBool(object.Equal(left, right))
	case ast.Ne:
		result = intBool(!object.Equal(left, right))
	case ast.In:
		result, err = boolObj(object.In(v.Pos(), left, right))
	case ast.And:
		result, err = object.And(v.Pos(), left, right)
	case ast.Or:
		result, err = object.Or(v.Pos(), left, right)
	default:
		err = diag.New(diag.DesignError, v.Pos(), "unhandled binary operator %v", v.Op)
	}

	object.Release(left)
	object.Release(right)
	if err != nil {
		return err
	}
	e.push(result)
	return nil
}

func boolObj(b bool, err error) (*object.Object, error) {
	if err != nil {
		return nil, err
	}
	return intBool(b), nil
}

func intBool(b bool) *object.Object {
	if b {
		return object.NewInt(1)
	}
	return object.NewInt(0)
}

func (e *Eval) visitAssignment(v *ast.Assignment) error {
	if err := e.visitExpr(v.Target); err != nil {
		return err
	}
	target := object.Unwrap(e.pop())

	if err := e.visitExpr(v.Expression); err != nil {
		return err
	}
	value := e.pop()

	var tmp *object.Object
	var err error
	switch v.Op {
	case ast.Assign:
		tmp = object.Copy(object.Unwrap(value))
	case ast.AddAssign:
		// object.Add, not Arith(OpAdd, ...): += reuses the generic `+` that
		// also handles string and list concatenation (original_source's
		// visit.c reuses obj_add for ADDASSIGN the same way).
		tmp, err = object.Add(v.Pos(), target, value)
	case ast.SubAssign:
		tmp, err = object.Arith(v.Pos(), object.OpSub, target, value)
	case ast.MulAssign:
		// object.Mul, not Arith(OpMul, ...): *= reuses the generic `*` that
		// also handles string/list repetition (visit.c reuses obj_mult for
		// MULASSIGN the same way).
		tmp, err = object.Mul(v.Pos(), target, value)
	case ast.DivAssign:
		tmp, err = object.Arith(v.Pos(), object.OpDiv, target, value)
	case ast.ModAssign:
		tmp, err = object.Arith(v.Pos(), object.OpMod, target, value)
	default:
		err = diag.New(diag.DesignError, v.Pos(), "unhandled assignment operator %v", v.Op)
	}
	if err != nil {
		object.Release(value)
		return err
	}

	setErr := target.Set(v.Pos(), tmp)
	object.Release(tmp)
	object.Release(value)
	if setErr != nil {
		return setErr
	}

	e.push(target)
	return nil
}

func (e *Eval) visitCall(call *ast.Call) error {
	args := make([]*object.Object, 0, len(call.Args))
	for _, a := range call.Args {
		if err := e.visitExpr(a); err != nil {
			for _, v := range args {
				object.Release(v)
			}
			return err
		}
		args = append(args, e.pop())
	}

	if call.IsBuiltin {
		result, err := builtin.Call(call.Pos(), call.Name, args)
		if err != nil {
			return err
		}
		e.push(result)
		return nil
	}

	id := e.sc.Lookup(call.Name)
	if id == nil || id.Kind != scope.Function || id.Func == nil {
		return diag.New(diag.NameError, call.Pos(), "function %q is not defined", call.Name)
	}
	fn := id.Func

	e.sc.Push()
	for i, formal := range fn.Formals {
		fid := e.sc.Add(scope.Variable, formal)
		fid.Bind(object.Copy(object.Unwrap(args[i])))
		object.Release(args[i])
	}

	err := e.visitStmt(fn.Body)
	e.sc.Pop()
	if err != nil {
		return err
	}

	if !e.doReturn {
		e.push(object.NewInt(0))
	}
	e.doReturn = false
	return nil
}
