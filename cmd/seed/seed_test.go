package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapup/internal/backend"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/model"
)

func fakeBackend(t *testing.T, calls *[]string) *backend.HTTPClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "login")
		_, _ = w.Write([]byte(`{"token":"seed-token","role":"admin"}`))
	})
	mux.HandleFunc("/api/auth/createUser", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "createUser")
		assert.Equal(t, "Bearer seed-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/data/upload-file", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "upload")
		_, fh, err := r.FormFile("file")
		if assert.NoError(t, err) {
			assert.Equal(t, "prices.csv", fh.Filename)
		}
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/data/file-data", func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "fileData")
		_, _ = w.Write([]byte(`{"data":[{"date":"2024-10-28","open":1},{"date":"2024-10-29","open":2}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return backend.NewHTTPClient(srv.URL, 0)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,open\n2024-10-28,1\n"), 0o600))

	var calls []string
	client := fakeBackend(t, &calls)

	res, err := seed(context.Background(), client, options{
		Username: "root",
		Password: "pw",
		Admin: form.CreateUserForm{
			FullName: "Sudhakar Swain",
			Username: "sudhakar27",
			Email:    "sudhakar@mapup.ai",
			Password: "password1",
			Role:     model.RoleAdmin,
		},
		Files: []string{path},
	}, logging.Nop())
	require.NoError(t, err)

	assert.Equal(t, result{AdminCreated: true, Uploaded: 1, Records: 2}, res)
	assert.Equal(t, []string{"login", "createUser", "upload", "fileData"}, calls)
}

func TestSeed_InvalidAdmin(t *testing.T) {
	var calls []string
	client := fakeBackend(t, &calls)

	_, err := seed(context.Background(), client, options{
		Admin: form.CreateUserForm{Username: "x", Email: "bad", Role: model.RoleAdmin},
	}, logging.Nop())
	assert.ErrorContains(t, err, "admin user is invalid")
	assert.Empty(t, calls)
}

func TestSeed_MissingFile(t *testing.T) {
	var calls []string
	client := fakeBackend(t, &calls)

	_, err := seed(context.Background(), client, options{Files: []string{"/does/not/exist.csv"}}, logging.Nop())
	assert.ErrorContains(t, err, "open /does/not/exist.csv")
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("SEED_ADMIN_USERNAME", "boss")
	opts := optionsFromEnv([]string{"a.csv"})
	assert.Equal(t, "boss", opts.Admin.Username)
	assert.Equal(t, model.RoleAdmin, opts.Admin.Role)
	assert.Equal(t, []string{"a.csv"}, opts.Files)
}
