package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("post not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (title, slug, markdown, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	args := []any{
		post.Title,
		post.Slug,
		post.Markdown,
		post.CreatedAt,
		post.UpdatedAt,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "posts_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `
		SELECT id, title, slug, markdown, created_at, updated_at
		FROM posts
		WHERE slug = $1`

	var post Post

	err := m.db.QueryRowContext(ctx, query, slug).Scan(&post.ID, &post.Title, &post.Slug, &post.Markdown, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// getAll returns every post in insertion order.
func (m *PostModel) getAll(ctx context.Context) ([]Post, error) {
	query := `
		SELECT id, title, slug, markdown, created_at, updated_at
		FROM posts
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Markdown, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (m *PostModel) update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, markdown = $2, updated_at = $3
		WHERE slug = $4`

	res, err := m.db.ExecContext(ctx, query, post.Title, post.Markdown, post.UpdatedAt, post.Slug)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *PostModel) delete(ctx context.Context, slug string) error {
	query := `
		DELETE FROM posts
		WHERE slug = $1`

	res, err := m.db.ExecContext(ctx, query, slug)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
