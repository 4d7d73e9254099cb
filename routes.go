package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// newRouter mounts the whole API surface. Kept separate from main so
// tests can drive the real routing table.
func newRouter(corsOrigin string) chi.Router {
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(corsOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// Auth
	r.Post("/api/auth/register", handleRegister)
	r.Post("/api/auth/login", handleLogin)
	r.Get("/api/auth/me", handleMe)

	// Posts & likes
	r.Get("/api/posts", handleListPosts)
	r.Post("/api/posts", handleCreatePost)
	r.Post("/api/posts/{id}/like", handleToggleLike)

	// Comments
	r.Get("/api/posts/{id}/comments", handleListComments)
	r.Post("/api/posts/{id}/comments", handleCreateComment)
	r.Delete("/api/comments/{id}", handleDeleteComment)

	// Users
	r.Put("/api/users/{id}", handleUpdateProfile)
	r.Get("/api/users/{id}/posts", handleUserPosts)

	// Categories
	r.Get("/api/categories", handleListCategories)

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}
