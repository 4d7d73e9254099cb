package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", authReq{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "secretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decodeBody[authResp](t, w)

	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.User.ID)
	assert.Equal(t, "alice", out.User.Username)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "Hash")
}

func TestRegisterValidation(t *testing.T) {
	h := newTestRouter(t)
	registerUser(t, h, "alice")

	cases := []struct {
		name string
		req  authReq
	}{
		{"missing username", authReq{Email: "x@example.com", Password: "secretpass"}},
		{"missing email", authReq{Username: "bob", Password: "secretpass"}},
		{"missing password", authReq{Username: "bob", Email: "x@example.com"}},
		{"duplicate email", authReq{Username: "bob", Email: "alice@example.com", Password: "secretpass"}},
		{"duplicate username", authReq{Username: "alice", Email: "other@example.com", Password: "secretpass"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", tc.req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t)
	registerUser(t, h, "alice")

	w := doRequest(t, h, http.MethodPost, "/api/auth/login", "", authReq{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decodeBody[authResp](t, w)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "alice", out.User.Username)

	w = doRequest(t, h, http.MethodPost, "/api/auth/login", "", authReq{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, h, http.MethodPost, "/api/auth/login", "", authReq{
		Email:    "nobody@example.com",
		Password: "correct-horse-battery",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	h := newTestRouter(t)
	acct := registerUser(t, h, "alice")

	w := doRequest(t, h, http.MethodGet, "/api/auth/me", acct.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decodeBody[userDTO](t, w)
	assert.Equal(t, acct.User.ID, me.ID)
	assert.Equal(t, "alice", me.Username)

	w = doRequest(t, h, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
