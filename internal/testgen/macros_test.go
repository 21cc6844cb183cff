package testgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muster/internal/testreg"
)

func TestCategory_NestsAndRestoresPreviousCategory(t *testing.T) {
	assert.Equal(t, "Uncategorized", currentCategory())

	Category("Outer", func() {
		assert.Equal(t, "Outer", currentCategory())
		Category("Inner", func() {
			assert.Equal(t, "Outer/Inner", currentCategory())
		})
		assert.Equal(t, "Outer", currentCategory())
	})

	assert.Equal(t, "Uncategorized", currentCategory())
}

func TestTest_GraftsIntoDefaultRegistryUnderCurrentCategory(t *testing.T) {
	var ran bool
	Category("Widgets", func() {
		Test("Spins", func() { ran = true })
	})

	node, ok := testreg.Default().Category("Widgets")
	require.True(t, ok)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "Spins", node.Children[0].Name)

	node.Children[0].Definition.Run()
	assert.True(t, ran)
}

// TestTest_NestedCategoryIsADescendantOfItsOuterCategory guards against a
// flat category keying scheme: a Test declared inside Category("Foo"){
// Category("Shared", ...) } must graft under a "Shared" node that is a
// child of "Foo", not a top-level "Shared" node shared with unrelated
// outer categories.
func TestTest_NestedCategoryIsADescendantOfItsOuterCategory(t *testing.T) {
	Category("Foo", func() {
		Category("Shared", func() {
			Test("FooThing", func() {})
		})
	})

	foo, ok := testreg.Default().Category("Foo")
	require.True(t, ok)
	require.Len(t, foo.Children, 1)

	fooShared := foo.Children[0]
	assert.Equal(t, "Shared", fooShared.Name)
	require.Len(t, fooShared.Children, 1)
	assert.Equal(t, "FooThing", fooShared.Children[0].Name)

	nested, ok := testreg.Default().Category("Foo/Shared")
	require.True(t, ok)
	assert.Same(t, fooShared, nested)
}

// TestTest_SameInnerCategoryNameUnderDifferentOuterCategoriesDoesNotCollide
// is the regression case from the review: two different outer categories
// both opening an inner category named "Shared" must not merge into one
// node.
func TestTest_SameInnerCategoryNameUnderDifferentOuterCategoriesDoesNotCollide(t *testing.T) {
	Category("Alpha", func() {
		Category("Shared", func() {
			Test("AlphaThing", func() {})
		})
	})
	Category("Beta", func() {
		Category("Shared", func() {
			Test("BetaThing", func() {})
		})
	})

	alphaShared, ok := testreg.Default().Category("Alpha/Shared")
	require.True(t, ok)
	betaShared, ok := testreg.Default().Category("Beta/Shared")
	require.True(t, ok)

	assert.NotSame(t, alphaShared, betaShared)
	require.Len(t, alphaShared.Children, 1)
	require.Len(t, betaShared.Children, 1)
	assert.Equal(t, "AlphaThing", alphaShared.Children[0].Name)
	assert.Equal(t, "BetaThing", betaShared.Children[0].Name)
}

func TestMustDeclare_PanicsOnInvalidDeclaration(t *testing.T) {
	assert.Panics(t, func() {
		MustDeclare(Declaration{
			Name: "BadArgCount",
			Body: func(n int) {},
		})
	})
}

func TestWithValueCase_AppendsTuple(t *testing.T) {
	var d Declaration
	WithValueCase(1, "two", 3.0)(&d)
	require.Len(t, d.ValueCases, 1)
	assert.Equal(t, ArgTuple{1, "two", 3.0}, d.ValueCases[0])
}
