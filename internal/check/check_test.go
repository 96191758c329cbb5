package check_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"exin/internal/ast"
	"exin/internal/check"
	"exin/internal/diag"
	"exin/internal/scope"
)

func pos() diag.Pos { return diag.Pos{Module: "test", Line: 1} }

// TestRecursiveFunctionChecksOnce builds `def fact(n) return n * fact(n - 1)`
// and confirms Check terminates: without the Checked recursion guard this
// would recurse into checkCall/visit(body) forever.
func TestRecursiveFunctionChecksOnce(t *testing.T) {
	call := ast.NewCall(pos(), "fact", []ast.Node{
		ast.NewBinary(pos(), ast.Sub, ast.NewReference(pos(), "n"), ast.NewLiteral(pos(), ast.IntLit, "1")),
	})
	body := ast.NewBlock(pos(), []ast.Node{
		ast.NewReturn(pos(), ast.NewBinary(pos(), ast.Mul, ast.NewReference(pos(), "n"), call)),
	})
	fn := ast.NewFuncDecl(pos(), "fact", []string{"n"}, body)

	root := ast.NewBlock(pos(), []ast.Node{
		fn,
		ast.NewCall(pos(), "fact", []ast.Node{ast.NewLiteral(pos(), ast.IntLit, "5")}),
	})

	err := check.New(scope.New()).Check(root)
	require.NoError(t, err)
	require.True(t, call.Checked)
}

func TestUndefinedReferenceIsNameError(t *testing.T) {
	root := ast.NewBlock(pos(), []ast.Node{ast.NewReference(pos(), "nope")})
	err := check.New(scope.New()).Check(root)
	require.Error(t, err)
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.NameError, de.Kind)
}

func TestDefVarCollidesWithBuiltin(t *testing.T) {
	root := ast.NewBlock(pos(), []ast.Node{
		ast.NewDefVar(pos(), ast.IntVar, "chr", nil),
	})
	err := check.New(scope.New()).Check(root)
	require.Error(t, err)
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.NameError, de.Kind)
}

func TestScopeReducedToGlobalAfterCheck(t *testing.T) {
	body := ast.NewBlock(pos(), []ast.Node{ast.NewPass(pos())})
	fn := ast.NewFuncDecl(pos(), "f", []string{"a"}, body)
	root := ast.NewBlock(pos(), []ast.Node{fn, ast.NewCall(pos(), "f", []ast.Node{ast.NewLiteral(pos(), ast.IntLit, "1")})})

	sc := scope.New()
	require.NoError(t, check.New(sc).Check(root))
	require.Equal(t, 1, sc.Depth())
}
