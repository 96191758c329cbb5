package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"exin/internal/object"
	"exin/internal/scope"
)

func TestTwoLevelLookup(t *testing.T) {
	sc := scope.New()

	g := sc.AddGlobal(scope.Variable, "g")
	require.NotNil(t, g)
	g.Bind(object.NewInt(1))

	sc.Push()
	defer sc.Pop()

	// the global is visible from the local frame...
	found := sc.Lookup("g")
	require.NotNil(t, found)
	require.Equal(t, 1, found.Object.AsInt())

	// ...and a local of the same name shadows it
	local := sc.Add(scope.Variable, "g")
	require.NotNil(t, local)
	local.Bind(object.NewInt(2))
	require.Equal(t, 2, sc.Lookup("g").Object.AsInt())
}

func TestAddRejectsSameScopeCollision(t *testing.T) {
	sc := scope.New()
	require.NotNil(t, sc.Add(scope.Variable, "x"))
	require.Nil(t, sc.Add(scope.Variable, "x"))
}

func TestPopReleasesBindings(t *testing.T) {
	sc := scope.New()
	sc.Push()
	id := sc.Add(scope.Variable, "x")
	v := object.NewInt(5)
	id.Bind(v)
	require.Equal(t, 1, v.Refcount())
	sc.Pop()
	require.Equal(t, 0, v.Refcount())
}

func TestOuterFunctionFrameNotVisible(t *testing.T) {
	sc := scope.New()
	sc.Push() // simulate being inside an outer call's frame
	sc.Add(scope.Variable, "onlyOuterLocal")
	sc.Push() // a nested call's frame: only local + global are visible
	require.Nil(t, sc.Lookup("onlyOuterLocal"))
	sc.Pop()
	sc.Pop()
}
