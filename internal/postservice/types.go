package postservice

import (
	"database/sql"
	"time"
)

type Post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Slug is the unique URL-safe identifier of the post.
	Slug string `json:"slug"`
	// Markdown is the raw post body; rendering is the client's concern.
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostService struct {
	m *PostModel
}

type PostModel struct {
	db *sql.DB
}
