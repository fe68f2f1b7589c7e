package pathparam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TwoParams(t *testing.T) {
	it := Parse("/foo/:x/bar/:y", "/foo/1/bar/2")

	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, Pair{Name: ":x", Value: "1"}, first)

	second, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, Pair{Name: ":y", Value: "2"}, second)

	_, ok = it.Next()
	assert.False(t, ok, "iterator must be exhausted after the last pair")
}

func TestParse_NoParams(t *testing.T) {
	it := Parse("/foo/bar", "/foo/bar")
	pairs := it.Collect()
	assert.Empty(t, pairs)
}

func TestParse_StopsAtShorterOfTheTwo(t *testing.T) {
	it := Parse("/foo/:id/bar/:sub", "/foo/1")
	pairs := it.Collect()
	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{Name: ":id", Value: "1"}, pairs[0])
}

func TestCollect_IsPatternOrdered(t *testing.T) {
	pairs := Parse("/a/:one/b/:two/c/:three", "/a/1/b/2/c/3").Collect()
	require.Len(t, pairs, 3)
	assert.Equal(t, []Pair{
		{Name: ":one", Value: "1"},
		{Name: ":two", Value: "2"},
		{Name: ":three", Value: "3"},
	}, pairs)
}

func TestMap_KeyedByNameWithColon(t *testing.T) {
	got := Map("/foo/:x/bar/:y", "/foo/1/bar/2")
	assert.Equal(t, map[string]string{":x": "1", ":y": "2"}, got)
}

func TestMap_LastOccurrenceWins(t *testing.T) {
	got := Map("/a/:id/b/:id", "/a/1/b/2")
	assert.Equal(t, "2", got[":id"])
}

func TestFrom_BuildsCallerSuppliedShape(t *testing.T) {
	type params struct {
		x, y string
	}
	got := From("/foo/:x/bar/:y", "/foo/1/bar/2", func(it *Iter) params {
		first, _ := it.Next()
		second, _ := it.Next()
		return params{x: first.Value, y: second.Value}
	})
	assert.Equal(t, params{x: "1", y: "2"}, got)
}
