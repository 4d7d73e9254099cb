package main

import "time"

// User is the persisted account record.
// Handlers convert it to a DTO before it leaves the API; PasswordHash
// never serializes.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Bio          string `gorm:"size:500"`
	Avatar       string `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

type Post struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"type:text;not null"` // rich-text HTML
	ImageURL  string    `gorm:"size:500"`
	Category  string    `gorm:"size:64;not null"`
	Likes     int       `gorm:"not null;default:0"`
	AuthorID  string    `gorm:"index;type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

// PostLike is one user's like on one post. The composite unique index is
// what keeps the toggle safe: two overlapping likes of the same post by
// the same user cannot both insert a row.
type PostLike struct {
	ID        string `gorm:"primaryKey;type:text"`
	PostID    string `gorm:"uniqueIndex:idx_post_likes_post_user;type:text;not null"`
	UserID    string `gorm:"uniqueIndex:idx_post_likes_post_user;type:text;not null"`
	CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }

// Comment rows are never updated in place; they are created and deleted.
type Comment struct {
	ID        string `gorm:"primaryKey;type:text"`
	Content   string `gorm:"type:text;not null"`
	PostID    string `gorm:"index;type:text;not null"`
	AuthorID  string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Comment) TableName() string { return "comments" }
