// Package check implements EXIN's one-pass static checker (spec.md §4.4): a
// single depth-first walk of the parsed AST that resolves every REFERENCE
// and FUNCTION_CALL, validates DEF_VAR/FUNCTION_DECLARATION names against
// collisions, parses every LITERAL's lexeme once, and validates operator
// discriminants. It runs before the evaluator ever visits the tree.
package check

import (
	"exin/internal/ast"
	"exin/internal/builtin"
	"exin/internal/diag"
	"exin/internal/object"
	"exin/internal/scope"
)

// Checker walks an AST once, using sc to resolve and declare identifiers.
// The scope stack is reduced back to just the global frame once Check
// returns, whether or not it errored (spec.md §4.4 "After the pre-check,
// the scope stack is reduced back to just the global frame").
type Checker struct {
	sc *scope.Scope
}

// New creates a Checker operating against sc.
func New(sc *scope.Scope) *Checker {
	return &Checker{sc: sc}
}

// Check runs the static pre-pass over root.
func (c *Checker) Check(root *ast.Block) error {
	err := c.visit(root)
	for c.sc.Depth() > 1 {
		c.sc.Pop()
	}
	return err
}

func (c *Checker) visit(n ast.Node) error {
	if n == nil {
		return nil
	}
	if err := c.visitNode(n); err != nil {
		return err
	}
	return c.visitTrailer(n)
}

func (c *Checker) visitTrailer(n ast.Node) error {
	m := n.Trailer()
	if m == nil {
		return nil
	}
	for _, a := range m.Args {
		if err := c.visit(a); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) visitNode(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Literal:
		parsed, err := object.ParseLiteral(v.Pos(), kindOf(v.Type), v.Lexeme)
		if err != nil {
			return err
		}
		v.Parsed = parsed
		return nil

	case *ast.Reference:
		id := c.sc.Lookup(v.Name)
		if id == nil {
			return diag.New(diag.NameError, v.Pos(), "undefined identifier %q", v.Name)
		}
		if id.Kind != scope.Variable {
			return diag.New(diag.NameError, v.Pos(), "%q is not a variable", v.Name)
		}
		return nil

	case *ast.Call:
		return c.checkCall(v)

	case *ast.Unary:
		switch v.Op {
		case ast.Not, ast.Neg, ast.Pos_:
		default:
			return diag.New(diag.DesignError, v.Pos(), "unknown unary operator %v", v.Op)
		}
		return c.visit(v.Operand)

	case *ast.Binary:
		switch v.Op {
		case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod, ast.And, ast.Or,
			ast.Lt, ast.Le, ast.Gt, ast.Ge, ast.Eq, ast.Ne, ast.In:
		default:
			return diag.New(diag.DesignError, v.Pos(), "unknown binary operator %v", v.Op)
		}
		if err := c.visit(v.Left); err != nil {
			return err
		}
		return c.visit(v.Right)

	case *ast.Assignment:
		switch v.Op {
		case ast.Assign, ast.AddAssign, ast.SubAssign, ast.MulAssign, ast.DivAssign, ast.ModAssign:
		default:
			return diag.New(diag.DesignError, v.Pos(), "unknown assignment operator %v", v.Op)
		}
		if err := c.visit(v.Target); err != nil {
			return err
		}
		return c.visit(v.Expression)

	case *ast.Index:
		if err := c.visit(v.Sequence); err != nil {
			return err
		}
		return c.visit(v.IndexExp)

	case *ast.Slice:
		if err := c.visit(v.Sequence); err != nil {
			return err
		}
		if err := c.visit(v.Start); err != nil {
			return err
		}
		return c.visit(v.End)

	case *ast.DefVar:
		if builtin.IsBuiltin(v.Name) {
			return diag.New(diag.NameError, v.Pos(), "%q collides with a builtin", v.Name)
		}
		if c.sc.Add(scope.Variable, v.Name) == nil {
			return diag.New(diag.NameError, v.Pos(), "%q already declared in this scope", v.Name)
		}
		return c.visit(v.Initial)

	case *ast.VarDecl:
		for _, dv := range v.Vars {
			if err := c.visit(dv); err != nil {
				return err
			}
		}
		return nil

	case *ast.FuncDecl:
		if builtin.IsBuiltin(v.Name) {
			return diag.New(diag.NameError, v.Pos(), "%q collides with a builtin", v.Name)
		}
		id := c.sc.AddGlobal(scope.Function, v.Name)
		if id == nil {
			return diag.New(diag.NameError, v.Pos(), "function %q already declared", v.Name)
		}
		id.BindFunc(v)
		c.sc.Push()
		for _, formal := range v.Formals {
			if c.sc.Add(scope.Variable, formal) == nil {
				c.sc.Pop()
				return diag.New(diag.NameError, v.Pos(), "duplicate parameter %q", formal)
			}
		}
		err := c.visit(v.Body)
		c.sc.Pop()
		return err

	case *ast.If:
		if err := c.visit(v.Condition); err != nil {
			return err
		}
		if err := c.visit(v.Consequent); err != nil {
			return err
		}
		return c.visit(v.Alternative)

	case *ast.While:
		if err := c.visit(v.Condition); err != nil {
			return err
		}
		return c.visit(v.Body)

	case *ast.Do:
		if err := c.visit(v.Condition); err != nil {
			return err
		}
		return c.visit(v.Body)

	case *ast.For:
		if c.sc.Lookup(v.Target) == nil {
			c.sc.Add(scope.Variable, v.Target)
		}
		if err := c.visit(v.Sequence); err != nil {
			return err
		}
		return c.visit(v.Body)

	case *ast.Block:
		for _, s := range v.Statements {
			if err := c.visit(s); err != nil {
				return err
			}
		}
		return nil

	case *ast.Print:
		for _, e := range v.Expressions {
			if err := c.visit(e); err != nil {
				return err
			}
		}
		return nil

	case *ast.Input:
		for _, name := range v.Identifiers {
			id := c.sc.Lookup(name)
			if id == nil {
				return diag.New(diag.NameError, v.Pos(), "undefined identifier %q", name)
			}
			if id.Kind != scope.Variable {
				return diag.New(diag.NameError, v.Pos(), "%q is not a variable", name)
			}
		}
		return nil

	case *ast.Return:
		return c.visit(v.Value)

	case *ast.Import:
		return c.visit(v.Sub)

	case *ast.Pass, *ast.Break, *ast.Continue:
		return nil

	case *ast.ArgList:
		for _, e := range v.Elements {
			if err := c.visit(e); err != nil {
				return err
			}
		}
		return nil

	case *ast.CommaExpr:
		for _, e := range v.Expressions {
			if err := c.visit(e); err != nil {
				return err
			}
		}
		return nil

	default:
		return diag.New(diag.DesignError, n.Pos(), "unchecked node type %T", n)
	}
}

// checkCall validates a FUNCTION_CALL's arity and, for user functions,
// recursively checks the callee body exactly once (spec.md §4.4
// "FUNCTION_CALL": on first encounter mark checked to break recursion).
func (c *Checker) checkCall(call *ast.Call) error {
	for _, a := range call.Args {
		if err := c.visit(a); err != nil {
			return err
		}
	}

	if call.IsBuiltin {
		argc, _ := builtin.Argc(call.Name)
		if len(call.Args) != argc {
			return diag.New(diag.SyntaxError, call.Pos(),
				"builtin %s expects %d argument(s) but %d were given", call.Name, argc, len(call.Args))
		}
		return nil
	}

	id := c.sc.Lookup(call.Name)
	if id == nil {
		return diag.New(diag.NameError, call.Pos(), "undefined function %q", call.Name)
	}
	if id.Kind != scope.Function {
		return diag.New(diag.NameError, call.Pos(), "%q is not a function", call.Name)
	}
	if len(call.Args) != len(id.Func.Formals) {
		return diag.New(diag.SyntaxError, call.Pos(),
			"function %s expects %d argument(s) but %d were given", call.Name, len(id.Func.Formals), len(call.Args))
	}

	if call.Checked {
		return nil
	}
	call.Checked = true

	c.sc.Push()
	for _, formal := range id.Func.Formals {
		c.sc.Add(scope.Variable, formal)
	}
	err := c.visit(id.Func.Body)
	c.sc.Pop()
	return err
}

func kindOf(lt ast.LiteralType) object.Kind {
	switch lt {
	case ast.CharLit:
		return object.CHAR
	case ast.IntLit:
		return object.INT
	case ast.FloatLit:
		return object.FLOAT
	default:
		return object.STR
	}
}
