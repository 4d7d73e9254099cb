package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

/* ===================== Public JSON (API) ====================== */

// authorDTO is the restricted projection embedded wherever a user shows
// up inside a post or comment payload.
type authorDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type postDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
	Author    any       `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createPostReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
}

/* ===================== Helpers ====================== */

func toAuthorDTO(u User) authorDTO {
	return authorDTO{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// likerIDs returns the set of user ids that currently like the post.
func likerIDs(db *gorm.DB, postID string) ([]string, error) {
	ids := []string{}
	err := db.Model(&PostLike{}).Where("post_id = ?", postID).Pluck("user_id", &ids).Error
	return ids, err
}

// toPostDTO assembles the wire shape; author is either the full userDTO
// (post listings) or the restricted authorDTO (everything else).
func toPostDTO(db *gorm.DB, p Post, fullAuthor bool) (postDTO, error) {
	ids, err := likerIDs(db, p.ID)
	if err != nil {
		return postDTO{}, err
	}
	out := postDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Likes:     p.Likes,
		LikedBy:   ids,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	var u User
	// Orphan-tolerant: a missing author row yields an empty projection
	// rather than failing the whole response.
	if err := db.First(&u, "id = ?", p.AuthorID).Error; err == nil {
		if fullAuthor {
			out.Author = toUserDTO(u)
		} else {
			out.Author = toAuthorDTO(u)
		}
	}
	return out, nil
}

func postsToDTOs(db *gorm.DB, posts []Post, fullAuthor bool) ([]postDTO, error) {
	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		dto, err := toPostDTO(db, p, fullAuthor)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// toggleLike flips the (post, user) like membership and keeps the stored
// counter paired with the set. Both writes happen in one transaction and
// the counter moves via a SQL expression, so two overlapping toggles can
// never observe-then-clobber a stale count.
func toggleLike(db *gorm.DB, postID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// unlike branch
			return tx.Model(&Post{}).Where("id = ?", postID).
				Update("likes", gorm.Expr("likes - ?", 1)).Error
		}
		// like branch
		if err := tx.Create(&PostLike{ID: newID(), PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&Post{}).Where("id = ?", postID).
			Update("likes", gorm.Expr("likes + ?", 1)).Error
	})
}

/* ===================== HTTP handlers ====================== */

// GET /api/posts
func handleListPosts(w http.ResponseWriter, r *http.Request) {
	var posts []Post
	if err := DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	out, err := postsToDTOs(DB, posts, true)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/posts
func handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	if userID == "" {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in createPostReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		errorJSON(w, http.StatusBadRequest, "title and content required")
		return
	}
	if !isValidCategory(in.Category) {
		errorJSON(w, http.StatusBadRequest, "invalid category")
		return
	}

	p := Post{
		ID:       newID(),
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: strings.TrimSpace(in.ImageURL),
		Category: in.Category,
		Likes:    0,
		AuthorID: userID,
	}
	if err := DB.Create(&p).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	dto, err := toPostDTO(DB, p, false)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// POST /api/posts/{id}/like
func handleToggleLike(w http.ResponseWriter, r *http.Request) {
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

	if err := toggleLike(DB, postID, userID); err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}

	// Re-read so the response reflects the committed state.
	if err := DB.First(&post, "id = ?", postID).Error; err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	dto, err := toPostDTO(DB, post, false)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}
