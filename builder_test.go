package kedge

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ChainsAcrossMethods(t *testing.T) {
	table, err := NewBuilder[string]().
		Get("/foo", "getFoo").
		Post("/foo", "postFoo").
		Put("/foo/:id", "putFoo").
		Patch("/foo/:id", "patchFoo").
		Delete("/foo/:id", "deleteFoo").
		Head("/foo", "headFoo").
		Options("/foo", "optionsFoo").
		Build()
	require.NoError(t, err)

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/foo", "getFoo"},
		{http.MethodPost, "/foo", "postFoo"},
		{http.MethodPut, "/foo/1", "putFoo"},
		{http.MethodPatch, "/foo/1", "patchFoo"},
		{http.MethodDelete, "/foo/1", "deleteFoo"},
		{http.MethodHead, "/foo", "headFoo"},
		{http.MethodOptions, "/foo", "optionsFoo"},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			match, ok := table.Dispatch(tc.method, tc.path)
			require.True(t, ok)
			require.NotNil(t, match.Handler)
			assert.Equal(t, tc.want, *match.Handler)
		})
	}
}

func TestBuilder_LatchesFirstError(t *testing.T) {
	builder := NewBuilder[string]().
		Get("bad-pattern", "x").
		Post("/still/processed", "y")

	_, err := builder.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestBuilder_MustBuildPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder[string]().Get("bad-pattern", "x").MustBuild()
	})
}

func TestBuilder_MustBuildReturnsTableOnSuccess(t *testing.T) {
	table := NewBuilder[string]().Get("/ok", "ok").MustBuild()
	match, ok := table.Dispatch(http.MethodGet, "/ok")
	require.True(t, ok)
	assert.Equal(t, "ok", *match.Handler)
}
