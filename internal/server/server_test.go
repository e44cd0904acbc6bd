package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfagnish/userd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New()
	ts := httptest.NewServer(New(st))
	t.Cleanup(ts.Close)
	return ts, st
}

func do(t *testing.T, ts *httptest.Server, method, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestUserLifecycle(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodPost, "/user/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", body)

	status, body = do(t, ts, http.MethodGet, "/user/0")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", body)

	status, _ = do(t, ts, http.MethodDelete, "/user/0")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, ts, http.MethodGet, "/user/0")
	assert.Equal(t, http.StatusNotFound, status)

	// The freed slot is reused by the next insert.
	status, body = do(t, ts, http.MethodPost, "/user/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", body)
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	status, body := do(t, ts, http.MethodGet, "/users")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body)

	do(t, ts, http.MethodPost, "/user/")
	do(t, ts, http.MethodPost, "/user/")

	status, body = do(t, ts, http.MethodGet, "/users")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0,1", body)

	// Trailing slash is equivalent.
	status, body = do(t, ts, http.MethodGet, "/users/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0,1", body)

	status, _ = do(t, ts, http.MethodPost, "/users")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()
	ts, st := newTestServer(t)

	id := st.Insert(store.User{})

	status, body := do(t, ts, http.MethodPut, "/user/0")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body)

	_, err := st.Get(id)
	require.NoError(t, err)

	status, _ = do(t, ts, http.MethodPut, "/user/99")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserDispatchErrors(t *testing.T) {
	t.Parallel()
	ts, st := newTestServer(t)
	st.Insert(store.User{})

	tests := []struct {
		method string
		path   string
		status int
		name   string
	}{
		{http.MethodPost, "/user/5", http.StatusBadRequest, "post with id"},
		{http.MethodPut, "/user/99", http.StatusNotFound, "put unknown id"},
		{http.MethodDelete, "/user/99", http.StatusNotFound, "delete unknown id"},
		{http.MethodPatch, "/user/0", http.StatusMethodNotAllowed, "unsupported verb"},
		{http.MethodGet, "/user/", http.StatusMethodNotAllowed, "get without id"},
		{http.MethodGet, "/user/abc", http.StatusMethodNotAllowed, "get with malformed id"},
		{http.MethodPut, "/user", http.StatusMethodNotAllowed, "put without id"},
		{http.MethodDelete, "/user/", http.StatusMethodNotAllowed, "delete without id"},
		{http.MethodGet, "/unknown/path", http.StatusNotFound, "unmatched path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, ts, tt.method, tt.path)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestTrailingSlashOnUserID(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	do(t, ts, http.MethodPost, "/user/")

	status, body := do(t, ts, http.MethodGet, "/user/0/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", body)

	status, _ = do(t, ts, http.MethodDelete, "/user/0/")
	assert.Equal(t, http.StatusOK, status)
}

func TestIndexPage(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	for _, path := range []string{"/", "/index.html", "/index"} {
		status, body := do(t, ts, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, status, "GET %s", path)
		assert.Contains(t, body, "userd")
	}

	status, _ := do(t, ts, http.MethodPost, "/")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	ts, st := newTestServer(t)

	st.Insert(store.User{})
	st.Insert(store.User{})

	status, body := do(t, ts, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, status)

	var health struct {
		Status   string `json:"status"`
		Instance string `json:"instance"`
		Users    int    `json:"users"`
	}
	require.NoError(t, json.NewDecoder(strings.NewReader(body)).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Instance)
	assert.Equal(t, 2, health.Users)
}
