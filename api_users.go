package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// PUT /api/users/{id}
func handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")

	// No delegated edits: only the owner may touch the profile.
	if targetID != userID {
		errorJSON(w, http.StatusForbidden, "not authorized to update this profile")
		return
	}

	var in updateProfileReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		errorJSON(w, http.StatusBadRequest, "username required")
		return
	}

	// Renaming to a username held by a different user fails; renaming to
	// your own current username is an idempotent success.
	var count int64
	if err := DB.Model(&User{}).Where("username = ? AND id <> ?", in.Username, targetID).
		Count(&count).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if count > 0 {
		errorJSON(w, http.StatusBadRequest, "username is already taken")
		return
	}

	var u User
	err := DB.First(&u, "id = ?", targetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorJSON(w, http.StatusNotFound, "user not found")
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	u.Username = in.Username
	u.Bio = in.Bio
	if err := DB.Save(&u).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// GET /api/users/{id}/posts
func handleUserPosts(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")

	var posts []Post
	if err := DB.Where("author_id = ?", targetID).Order("created_at DESC").Find(&posts).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out, err := postsToDTOs(DB, posts, false)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
