package entity

import (
	"io"
	"time"
)

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	ImageKey  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	Liked     bool      `json:"like"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostDetail is a post with its like aggregates and comments.
type PostDetail struct {
	Post        *Post      `json:"post"`
	LikeCount   int64      `json:"like_count"`
	LikedByUser int64      `json:"liked_by_user"`
	Comments    []*Comment `json:"comments"`
}

// Image is an uploaded picture attached to a new or edited post.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
