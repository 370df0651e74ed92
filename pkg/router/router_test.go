package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWildcardRoute(t *testing.T) {
	cases := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/v1/sessions/abc/fetch", "/api/v1/sessions/*/fetch", true},
		{"/api/v1/sessions/abc/fetch", "/api/v1/sessions/*/store", false},
		{"/api/v1/sessions/abc", "/api/v1/sessions/*", true},
		{"/api/v1/sessions/abc/charts/histogram", "/api/v1/sessions/*/charts/*", true},
		// trailing wildcard also matches zero remaining segments
		{"/api/v1/sessions/abc/charts", "/api/v1/sessions/*/charts/*", true},
		{"/api/v1/other/abc/fetch", "/api/v1/sessions/*/fetch", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchWildcardRoute(tc.path, tc.pattern),
			"path %s vs pattern %s", tc.path, tc.pattern)
	}
}

func TestRouter_DispatchAndMethods(t *testing.T) {
	r := New()
	r.GET("/api/v1/things", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/things/*/detail", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("detail"))
	})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/things")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/things/42/detail")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/v1/things", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
