package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"exin/internal/ast"
	"exin/internal/diag"
	"exin/internal/eval"
	"exin/internal/object"
)

func pos() diag.Pos { return diag.Pos{Module: "test", Line: 1} }

func intLit(n string) *ast.Literal {
	lit := ast.NewLiteral(pos(), ast.IntLit, n)
	v, err := object.ParseLiteral(pos(), object.INT, n)
	if err != nil {
		panic(err)
	}
	lit.Parsed = v
	return lit
}

// TestRunReturnsFinalExpressionValue confirms that only the program's last,
// literal top-level expression-statement contributes a value (spec.md §6's
// exit-code rule), and that the stack is empty once Run returns either way.
func TestRunReturnsFinalExpressionValue(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewVarDecl(pos(), []*ast.DefVar{ast.NewDefVar(pos(), ast.IntVar, "x", intLit("2"))}),
		ast.NewBinary(pos(), ast.Add, ast.NewReference(pos(), "x"), intLit("3")),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.NotNil(t, final)
	require.Equal(t, 5, object.Unwrap(final).AsInt())
	require.Equal(t, 0, e.Depth())
	object.Release(final)
}

// TestNonFinalExpressionStatementIsDiscarded confirms an expression-statement
// that isn't the program's last statement contributes nothing: depth before
// equals depth after, and Run's result is nil.
func TestNonFinalExpressionStatementIsDiscarded(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	root := ast.NewBlock(pos(), []ast.Node{
		intLit("99"),
		ast.NewPass(pos()),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.Nil(t, final)
	require.Equal(t, 0, e.Depth())
}

// TestWhileBreak confirms break halts the loop without leaking operand
// stack slots across iterations.
func TestWhileBreak(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewVarDecl(pos(), []*ast.DefVar{ast.NewDefVar(pos(), ast.IntVar, "i", intLit("0"))}),
		ast.NewWhile(pos(), intLit("1"), ast.NewBlock(pos(), []ast.Node{
			ast.NewAssignment(pos(), ast.AddAssign, ast.NewReference(pos(), "i"), intLit("1")),
			ast.NewIf(pos(),
				ast.NewBinary(pos(), ast.Ge, ast.NewReference(pos(), "i"), intLit("3")),
				ast.NewBreak(pos()), nil),
		})),
		ast.NewReference(pos(), "i"),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.Equal(t, 3, object.Unwrap(final).AsInt())
	require.Equal(t, 0, e.Depth())
	object.Release(final)
}

// TestForOverList confirms the loop target is bound to each element in turn
// and that the sequence is released once, after the loop finishes.
func TestForOverList(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	list := ast.NewArgList(pos(), []ast.Node{intLit("1"), intLit("2"), intLit("3")})

	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewVarDecl(pos(), []*ast.DefVar{ast.NewDefVar(pos(), ast.IntVar, "sum", intLit("0"))}),
		ast.NewFor(pos(), "x", list, ast.NewAssignment(pos(), ast.AddAssign, ast.NewReference(pos(), "sum"), ast.NewReference(pos(), "x"))),
		ast.NewReference(pos(), "sum"),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.Equal(t, 6, object.Unwrap(final).AsInt())
	object.Release(final)
}

// TestFunctionCallReturnsValueAndPopsFrame confirms the callee's return value
// surfaces to the caller, the operand stack is left empty, and the callee's
// frame is popped once the call returns.
func TestFunctionCallReturnsValueAndPopsFrame(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	double := ast.NewFuncDecl(pos(), "double", []string{"n"}, ast.NewBlock(pos(), []ast.Node{
		ast.NewReturn(pos(), ast.NewBinary(pos(), ast.Mul, ast.NewReference(pos(), "n"), intLit("2"))),
	}))

	root := ast.NewBlock(pos(), []ast.Node{
		double,
		ast.NewVarDecl(pos(), []*ast.DefVar{ast.NewDefVar(pos(), ast.IntVar, "n", intLit("5"))}),
		ast.NewCall(pos(), "double", []ast.Node{ast.NewReference(pos(), "n")}),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.Equal(t, 10, object.Unwrap(final).AsInt())
	require.Equal(t, 0, e.Depth())
	require.Equal(t, 1, e.Scope().Depth())
	object.Release(final)
}

// TestAssignmentCompoundOp confirms `x -= 4` both mutates the binding in
// place and yields the new value as the expression's result.
func TestAssignmentCompoundOp(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewVarDecl(pos(), []*ast.DefVar{ast.NewDefVar(pos(), ast.IntVar, "x", intLit("10"))}),
		ast.NewAssignment(pos(), ast.SubAssign, ast.NewReference(pos(), "x"), intLit("4")),
	})

	final, err := e.Run(root)
	require.NoError(t, err)
	require.Equal(t, 6, object.Unwrap(final).AsInt())
	object.Release(final)
}

// TestPrintWritesSpaceSeparatedWithNewline confirms the default (non-raw)
// print statement separates arguments with a space and terminates with a
// newline.
func TestPrintWritesSpaceSeparatedWithNewline(t *testing.T) {
	var out bytes.Buffer
	e := eval.New(&out, bytes.NewReader(nil))

	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewPrint(pos(), false, []ast.Node{intLit("1"), intLit("2")}),
	})

	_, err := e.Run(root)
	require.NoError(t, err)
	require.Equal(t, "1 2\n", out.String())
}
