package postservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sushihentaime/kamelthinks/internal/common"
)

func NewPostService(db *sql.DB) *PostService {
	return &PostService{m: newPostModel(db)}
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Markdown string `json:"markdown"`
}

// Create persists a new post. Timestamps are stamped here, never taken from
// the caller, so a fresh post always has CreatedAt == UpdatedAt.
func (s *PostService) Create(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSlug(v, req.Slug)
	validateMarkdown(v, req.Markdown)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	// truncated to microseconds so the stamp survives a postgres roundtrip
	now := time.Now().UTC().Truncate(time.Microsecond)

	post := &Post{
		Title:     req.Title,
		Slug:      req.Slug,
		Markdown:  req.Markdown,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetBySlug returns the post with the given slug or ErrRecordNotFound.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBySlug(ctx, slug)
}

// GetAll returns all posts.
func (s *PostService) GetAll(ctx context.Context) ([]Post, error) {
	return s.m.getAll(ctx)
}

// Update replaces the title and markdown of an existing post and refreshes
// its updated_at timestamp. ID, slug and created_at are preserved.
func (s *PostService) Update(ctx context.Context, slug, title, markdown string) (*Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	validateTitle(v, title)
	validateMarkdown(v, markdown)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post, err := s.m.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Markdown = markdown
	post.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	if err := s.m.update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes the post permanently.
func (s *PostService) Delete(ctx context.Context, slug string) error {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, slug)
}
