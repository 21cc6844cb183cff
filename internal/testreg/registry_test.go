package testreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muster/internal/testgraph"
)

func leaf(name string) *testgraph.Node {
	n := testgraph.NewNode(name, "f.go", 1)
	n.Definition = &testgraph.Definition{Run: func() {}, Node: n}
	return n
}

func TestGraftCreatesCategoryOnFirstUse(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math", leaf("Add"))

	cat, ok := r.Category("Math")
	require.True(t, ok)
	require.Len(t, cat.Children, 1)
	assert.Equal(t, "Add", cat.Children[0].Name)
}

func TestGraftReusesExistingCategory(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math", leaf("Add"))
	r.Graft("Math", leaf("Sub"))

	cat, _ := r.Category("Math")
	assert.Len(t, cat.Children, 2)
}

func TestGraftAssignsPathUniqueIDs(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math", leaf("Add"))

	cat, _ := r.Category("Math")
	assert.Equal(t, "Math/Add", cat.Children[0].ID)
}

func TestGraftBuildsNestedCategoryChain(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math/Trig", leaf("Sin"))

	top, ok := r.Category("Math")
	require.True(t, ok)
	require.Len(t, top.Children, 1)

	nested, ok := r.Category("Math/Trig")
	require.True(t, ok)
	assert.Same(t, top.Children[0], nested)
	require.Len(t, nested.Children, 1)
	assert.Equal(t, "Sin", nested.Children[0].Name)
	assert.Equal(t, "Math/Trig/Sin", nested.Children[0].ID)
}

func TestGraftSameLeafCategoryNameUnderDifferentParentsDoesNotCollide(t *testing.T) {
	r := NewRegistry()
	r.Graft("Foo/Shared", leaf("FooThing"))
	r.Graft("Bar/Shared", leaf("BarThing"))

	fooShared, ok := r.Category("Foo/Shared")
	require.True(t, ok)
	barShared, ok := r.Category("Bar/Shared")
	require.True(t, ok)

	assert.NotSame(t, fooShared, barShared)
	require.Len(t, fooShared.Children, 1)
	require.Len(t, barShared.Children, 1)
	assert.Equal(t, "FooThing", fooShared.Children[0].Name)
	assert.Equal(t, "BarThing", barShared.Children[0].Name)
}

func TestAllLeavesReturnsEveryDefinition(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math", leaf("Add"))
	r.Graft("Math", leaf("Sub"))
	r.Graft("Strings", leaf("Concat"))

	assert.Len(t, r.AllLeaves(), 3)
}

func TestFindMatchesGlobAgainstPath(t *testing.T) {
	r := NewRegistry()
	r.Graft("Math", leaf("Add"))
	r.Graft("Math", leaf("Sub"))
	r.Graft("Strings", leaf("Concat"))

	matches := r.Find("Math/*")
	require.Len(t, matches, 2)
	assert.Equal(t, "Math/Add", matches[0].Node.ID)
	assert.Equal(t, "Math/Sub", matches[1].Node.ID)
}

func TestDefaultReturnsSameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestNewRegistryAlwaysFresh(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	assert.NotSame(t, a, b)
}
