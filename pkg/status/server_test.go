package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkangel/imperialbot/internal/logging"
)

func newTestServer(t *testing.T, controls Controls) *Server {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)
	require.NoError(t, store.MarkOnline(2))
	return NewServer(0, store, controls, logging.NewLogger(logging.ERROR))
}

func doRequest(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGetStatus(t *testing.T) {
	srv := newTestServer(t, Controls{})

	rec := doRequest(t, srv, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, float64(2), body["servers"])
	assert.Contains(t, body, "last_restart")
	assert.Contains(t, body, "uptime")
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, Controls{})

	rec := doRequest(t, srv, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrongMethodIs405(t *testing.T) {
	srv := newTestServer(t, Controls{})

	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, srv, http.MethodPost, "/status").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, srv, http.MethodGet, "/restart").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, srv, http.MethodGet, "/shutdown").Code)
}

func TestRestart(t *testing.T) {
	called := false
	srv := newTestServer(t, Controls{
		Restart: func() error { called = true; return nil },
	})

	rec := doRequest(t, srv, http.MethodPost, "/restart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestRestartFailureIs500(t *testing.T) {
	srv := newTestServer(t, Controls{
		Restart: func() error { return errors.New("boom") },
	})

	rec := doRequest(t, srv, http.MethodPost, "/restart")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestShutdownDisablesDispatch(t *testing.T) {
	called := false
	srv := newTestServer(t, Controls{
		Shutdown: func() error { called = true; return nil },
	})

	rec := doRequest(t, srv, http.MethodPost, "/shutdown")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	// The process keeps running: shutdown only flips the flag the
	// dispatcher consults and records the bot as offline
	assert.True(t, srv.store.IsDisabled())
	assert.Equal(t, "offline", srv.store.Get().Status)
}

func TestRestartReenablesDispatch(t *testing.T) {
	srv := newTestServer(t, Controls{})

	require.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodPost, "/shutdown").Code)
	require.True(t, srv.store.IsDisabled())

	rec := doRequest(t, srv, http.MethodPost, "/restart")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, srv.store.IsDisabled())
	st := srv.store.Get()
	assert.Equal(t, "online", st.Status)
	// The server count survives the restart round-trip
	assert.Equal(t, 2, st.Servers)
}
