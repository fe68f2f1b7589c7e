package kedge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddAndDispatch_Static(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/foo/bar", "Bar")
	require.NoError(t, err)

	fullPath, handler, ok := tr.Dispatch("/foo/bar")
	require.True(t, ok)
	require.NotNil(t, handler)
	assert.Equal(t, "Bar", *handler)
	assert.Equal(t, "/foo/bar", fullPath)
}

func TestTree_StaticBeatsParam(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/foo/:id", "F")
	require.NoError(t, err)
	_, err = tr.Add("/foo/bar", "B")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/foo/bar")
	require.True(t, ok)
	assert.Equal(t, "B", *handler)

	_, handler, ok = tr.Dispatch("/foo/123")
	require.True(t, ok)
	assert.Equal(t, "F", *handler)
}

func TestTree_ParamDeep(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/foo/:id/bar", "X")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/foo/42/bar")
	require.True(t, ok)
	assert.Equal(t, "X", *handler)
}

func TestTree_FiveStaticDescents(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/q/q/q/q/q", "L")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/q/q/q/q/q")
	require.True(t, ok)
	assert.Equal(t, "L", *handler)
}

func TestTree_RootDispatch(t *testing.T) {
	t.Run("registered root handler", func(t *testing.T) {
		tr := New[string]()
		_, err := tr.Add("/", "Home")
		require.NoError(t, err)

		fullPath, handler, ok := tr.Dispatch("/")
		require.True(t, ok)
		require.NotNil(t, handler)
		assert.Equal(t, "Home", *handler)
		assert.Equal(t, "/", fullPath)
	})

	t.Run("empty tree", func(t *testing.T) {
		tr := New[string]()
		fullPath, handler, ok := tr.Dispatch("/")
		require.True(t, ok)
		assert.Nil(t, handler)
		assert.Equal(t, "/", fullPath)
	})
}

func TestTree_PartialPrefixMatch(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/a/b", "AB")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/a")
	require.True(t, ok, "a prefix-only match is still Some, just with a nil handler")
	assert.Nil(t, handler)

	_, _, ok = tr.Dispatch("/a/b/c")
	assert.False(t, ok, "no child exists past b, so this is no match at all")
}

func TestTree_TrailingSlashIsSignificant(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/a/b", "AB")
	require.NoError(t, err)

	_, _, ok := tr.Dispatch("/a/b/")
	assert.False(t, ok, "trailing slash requires an explicit empty-string child of b")

	_, err = tr.Add("/a/b/", "ABSlash")
	require.NoError(t, err)
	_, handler, ok := tr.Dispatch("/a/b/")
	require.True(t, ok)
	assert.Equal(t, "ABSlash", *handler)
}

func TestTree_ReAddOverwritesHandler(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/foo/bar", "first")
	require.NoError(t, err)
	_, err = tr.Add("/foo/bar", "second")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/foo/bar")
	require.True(t, ok)
	assert.Equal(t, "second", *handler)

	structuralOnce := New[string]()
	_, _ = structuralOnce.Add("/foo/bar", "x")
	structuralTwice := New[string]()
	_, _ = structuralTwice.Add("/foo/bar", "x")
	_, _ = structuralTwice.Add("/foo/bar", "y")
	assert.Equal(t, len(structuralOnce.root.staticChildren), len(structuralTwice.root.staticChildren),
		"re-adding an identical pattern must not create duplicate nodes")
}

func TestTree_MalformedPattern(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("foo/bar", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestTree_UnknownMethodLikeMiss(t *testing.T) {
	tr := New[string]()
	_, _, ok := tr.Dispatch("/anything")
	assert.False(t, ok)
}

func TestTree_ParamNameCollisionKeepsFirst(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/items/:id", "byID")
	require.NoError(t, err)
	_, err = tr.Add("/items/:slug", "bySlug")
	require.NoError(t, err)

	fullPath, handler, ok := tr.Dispatch("/items/abc")
	require.True(t, ok)
	assert.Equal(t, "bySlug", *handler, "the second Add reuses the existing param_child node")
	assert.Equal(t, "/items/:id", fullPath, "the first pattern registered wins the recorded name")
}

func TestTree_EmptySegmentIsOrdinaryStatic(t *testing.T) {
	tr := New[string]()
	_, err := tr.Add("/a//b", "weird")
	require.NoError(t, err)

	_, handler, ok := tr.Dispatch("/a//b")
	require.True(t, ok)
	assert.Equal(t, "weird", *handler)
}
