package object_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"exin/internal/diag"
	"exin/internal/object"
)

func TestRefcountLifecycle(t *testing.T) {
	o := object.NewInt(7)
	require.Equal(t, 1, o.Refcount())

	object.Ref(o)
	require.Equal(t, 2, o.Refcount())

	object.Release(o)
	require.Equal(t, 1, o.Refcount())

	// the None singleton never tracks a refcount
	object.Ref(object.None)
	object.Release(object.None)
}

func TestArithResultKind(t *testing.T) {
	pos := diag.Pos{}

	// char + char stays char
	r, err := object.Arith(pos, object.OpAdd, object.NewChar('a'), object.NewChar(1))
	require.NoError(t, err)
	require.Equal(t, object.CHAR, r.Kind)

	// int + char promotes to int (the corrected branch, not the source's
	// copy-paste bug that would leave this CHAR)
	r, err = object.Arith(pos, object.OpAdd, object.NewInt(1), object.NewChar('a'))
	require.NoError(t, err)
	require.Equal(t, object.INT, r.Kind)

	// any float operand promotes to float
	r, err = object.Arith(pos, object.OpMul, object.NewInt(2), object.NewFloat(1.5))
	require.NoError(t, err)
	require.Equal(t, object.FLOAT, r.Kind)
	require.InDelta(t, 3.0, r.FloatVal, 0.0001)
}

func TestDivisionByZero(t *testing.T) {
	_, err := object.Arith(diag.Pos{}, object.OpDiv, object.NewInt(1), object.NewInt(0))
	require.Error(t, err)
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.DivisionByZeroError, de.Kind)
}

func TestModNotAllowedOnFloat(t *testing.T) {
	_, err := object.Arith(diag.Pos{}, object.OpMod, object.NewFloat(1), object.NewFloat(2))
	require.Error(t, err)
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.ModNotAllowedError, de.Kind)
}

func TestAddAutoConcat(t *testing.T) {
	r, err := object.Add(diag.Pos{}, object.NewStrString("n="), object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, object.STR, r.Kind)
	require.Equal(t, "n=3", r.String())
}

func TestStringRepeat(t *testing.T) {
	r, err := object.Mul(diag.Pos{}, object.NewStrString("ab"), object.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, "ababab", r.String())

	r, err = object.Mul(diag.Pos{}, object.NewStrString("ab"), object.NewInt(-1))
	require.NoError(t, err)
	require.Equal(t, "", r.String())
}

func TestEqualCrossType(t *testing.T) {
	require.False(t, object.Equal(object.NewInt(1), object.NewStrString("1")))
	require.True(t, object.Equal(object.NewInt(1), object.NewChar(1)))
}

func TestBoolCoercion(t *testing.T) {
	b, err := object.Bool(diag.Pos{}, object.NewInt(0))
	require.NoError(t, err)
	require.False(t, b)

	b, err = object.Bool(diag.Pos{}, object.NewFloat(0.5))
	require.NoError(t, err)
	require.True(t, b)

	_, err = object.Bool(diag.Pos{}, object.NewStrString("x"))
	require.Error(t, err)
}

func TestListAppendAndItem(t *testing.T) {
	l := object.NewList()
	l.Append(object.NewInt(1))
	l.Append(object.NewInt(2))
	require.Equal(t, 2, l.Len())

	item, err := l.Item(diag.Pos{}, 1)
	require.NoError(t, err)
	require.Equal(t, 2, item.AsInt())
}

func TestCopyIsDeep(t *testing.T) {
	l := object.NewList()
	l.Append(object.NewInt(1))
	dup := object.Copy(l)
	require.NotSame(t, l.Head, dup.Head)
	require.True(t, object.Equal(l, dup))
}
