package kedge

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_MethodIsolation(t *testing.T) {
	table := NewTable[string]()
	require.NoError(t, table.Add(http.MethodGet, "/foo", "G"))
	require.NoError(t, table.Add(http.MethodPost, "/foo", "P"))

	match, ok := table.Dispatch(http.MethodGet, "/foo")
	require.True(t, ok)
	assert.Equal(t, "G", *match.Handler)

	match, ok = table.Dispatch(http.MethodPost, "/foo")
	require.True(t, ok)
	assert.Equal(t, "P", *match.Handler)

	_, ok = table.Dispatch(http.MethodDelete, "/foo")
	assert.False(t, ok, "a method with no registered tree is a plain miss")
}

func TestTable_MalformedPatternPropagates(t *testing.T) {
	table := NewTable[string]()
	err := table.Add(http.MethodGet, "no-leading-slash", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestTable_DispatchCacheServesRepeatedLookups(t *testing.T) {
	table := NewTable[string](WithDispatchCache[string](8))
	require.NoError(t, table.Add(http.MethodGet, "/foo/:id", "F"))

	for i := 0; i < 3; i++ {
		match, ok := table.Dispatch(http.MethodGet, "/foo/42")
		require.True(t, ok)
		require.NotNil(t, match.Handler)
		assert.Equal(t, "F", *match.Handler)
	}
}

func TestTable_DispatchCacheCachesMissesToo(t *testing.T) {
	table := NewTable[string](WithDispatchCache[string](8))
	require.NoError(t, table.Add(http.MethodGet, "/foo", "F"))

	_, ok := table.Dispatch(http.MethodGet, "/bar")
	assert.False(t, ok)

	_, ok = table.Dispatch(http.MethodGet, "/bar")
	assert.False(t, ok, "a cached miss must stay a miss on replay")
}

func TestTable_AddPurgesCacheSoRouteChangesAreVisible(t *testing.T) {
	table := NewTable[string](WithDispatchCache[string](8))
	require.NoError(t, table.Add(http.MethodGet, "/foo", "old"))

	match, ok := table.Dispatch(http.MethodGet, "/foo")
	require.True(t, ok)
	assert.Equal(t, "old", *match.Handler)

	require.NoError(t, table.Add(http.MethodGet, "/foo", "new"))

	match, ok = table.Dispatch(http.MethodGet, "/foo")
	require.True(t, ok)
	assert.Equal(t, "new", *match.Handler, "cache must not serve the stale handler after an Add")
}

func TestTable_WithDispatchCacheIgnoresNonPositiveSize(t *testing.T) {
	table := NewTable[string](WithDispatchCache[string](0))
	assert.Nil(t, table.cache, "a non-positive size must not install a cache")
}

func TestTable_NoCacheByDefault(t *testing.T) {
	table := NewTable[string]()
	assert.Nil(t, table.cache)
}
