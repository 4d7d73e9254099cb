package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires the real routing table over an in-memory sqlite
// database. Each test gets its own named shared-cache DB so the gorm
// connection pool sees one store.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, autoMigrate(db))
	DB = db

	return newRouter("http://localhost:3000")
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type authResp struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func registerUser(t *testing.T, h http.Handler, username string) authResp {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", authReq{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[authResp](t, w)
}

func createTestPost(t *testing.T, h http.Handler, token, title string) postDTO {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/posts", token, createPostReq{
		Title:    title,
		Content:  "<p>" + title + "</p>",
		Category: "Technology",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[postDTO](t, w)
}

// authorMap unwraps the loosely-typed author field of a post payload.
func authorMap(t *testing.T, dto postDTO) map[string]any {
	t.Helper()
	m, ok := dto.Author.(map[string]any)
	require.True(t, ok, "author missing from payload")
	return m
}
