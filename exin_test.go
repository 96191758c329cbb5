package exin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"exin/internal/diag"
	"exin/internal/fixture"
)

// These cover spec.md §8's concrete end-to-end scenarios, run through the
// public Interp rather than any one pipeline stage in isolation.

func TestFactorialRecursion(t *testing.T) {
	src := "def fact(n)\n    if n <= 1\n        return 1\n    return n * fact(n - 1)\nprint fact(6)\n"
	out, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.NoError(t, err)
	require.Equal(t, "720\n", out)
	require.Equal(t, 0, code)
}

func TestForOverSlicedList(t *testing.T) {
	src := "list xs = [1,2,3,4,5]\nint s = 0\nfor x in xs[1:4]\n    s += x\nprint s\n"
	out, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.NoError(t, err)
	require.Equal(t, "9\n", out)
	require.Equal(t, 0, code)
}

func TestDivisionByZeroExitsNine(t *testing.T) {
	src := "int a = 5\nint b = 0\nprint a / b\n"
	_, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.Error(t, err)
	de, ok := diag.AsError(err)
	require.True(t, ok)
	require.Equal(t, diag.DivisionByZeroError, de.Kind)
	require.Equal(t, diag.DivisionByZeroError.Code(), code)
}

func TestStringNumberAutoConcat(t *testing.T) {
	src := "str s = \"x=\" + 42\nprint s\n"
	out, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.NoError(t, err)
	require.Equal(t, "x=42\n", out)
	require.Equal(t, 0, code)
}

func TestListMethodIdempotence(t *testing.T) {
	src := "list xs = [1,2,3]\nxs.append(4)\nxs.remove(0)\nprint xs.len()\n"
	out, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
	require.Equal(t, 0, code)
}

// TestFinalExpressionSetsExitCode exercises the CLI exit-code rule: the
// program's last top-level statement, if a bare expression, becomes the
// process exit status instead of 0.
func TestFinalExpressionSetsExitCode(t *testing.T) {
	src := "int a = 200\na + 10\n"
	_, code, err := fixture.Run(context.Background(), fixture.Case{Source: src})
	require.NoError(t, err)
	require.Equal(t, 210&0xff, code)
}
