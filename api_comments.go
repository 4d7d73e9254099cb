package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type commentDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	PostID    string    `json:"postId"`
	Author    authorDTO `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type createCommentReq struct {
	Content string `json:"content"`
}

func toCommentDTO(db *gorm.DB, c Comment) commentDTO {
	out := commentDTO{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
	var u User
	if err := db.First(&u, "id = ?", c.AuthorID).Error; err == nil {
		out.Author = toAuthorDTO(u)
	}
	return out
}

// GET /api/posts/{id}/comments
func handleListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var comments []Comment
	if err := DB.Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make([]commentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentDTO(DB, c))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/posts/{id}/comments
func handleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	postID := chi.URLParam(r, "id")

	var post Post
	err := DB.First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorJSON(w, http.StatusNotFound, "post not found")
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	var in createCommentReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		errorJSON(w, http.StatusBadRequest, "content required")
		return
	}

	c := Comment{
		ID:       newID(),
		Content:  in.Content,
		PostID:   postID,
		AuthorID: userID,
	}
	if err := DB.Create(&c).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(DB, c))
}

// DELETE /api/comments/{id}
func handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	commentID := chi.URLParam(r, "id")

	var c Comment
	err := DB.First(&c, "id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorJSON(w, http.StatusNotFound, "comment not found")
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	// Only the comment's author may delete it.
	if c.AuthorID != userID {
		errorJSON(w, http.StatusForbidden, "not authorized to delete this comment")
		return
	}

	if err := DB.Delete(&c).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
