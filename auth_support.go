package main

import (
	"net/http"
	"strings"
)

// userIDFromRequest resolves the acting identity from the Authorization
// bearer token. Every authenticated handler calls this first and passes
// the resulting id down explicitly; an empty string means the request
// carries no valid credential.
func userIDFromRequest(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tok == "" || tok == h {
		return ""
	}
	claims, err := parseToken(tok)
	if err != nil || claims.UserID == "" {
		return ""
	}
	return claims.UserID
}
