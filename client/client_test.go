package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req.Email == "taken@x.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"msg":"User already exists"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"tok-1","username":"jane.doe"}`))
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","username":"jane.doe","userId":"u1","email":"jane@x.com"}`))
	})
	mux.HandleFunc("/api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"Token is not valid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","username":"jane.doe","email":"jane@x.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/")
	ctx := context.Background()

	reg, err := c.Register(ctx, RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", reg.Username)
	assert.Equal(t, "tok-1", reg.Token)

	login, err := c.Login(ctx, "jane@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, "u1", login.UserID)

	me, err := c.Me(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", me.Username)
}

func TestClient_APIError(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, err := c.Register(context.Background(), RegisterRequest{Email: "taken@x.com"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Msg)

	_, err = c.Me(context.Background(), "stale")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Me(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSessionStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewSessionStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	want := &Session{Token: "tok", Username: "jane.doe", Server: "http://x", SavedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.Username, got.Username)
	assert.True(t, want.SavedAt.Equal(got.SavedAt))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSessionStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err := NewSessionStore(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
}
