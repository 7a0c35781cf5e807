package postservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/kamelthinks/internal/common"
)

func setupTestEnvironment(t *testing.T) (*PostService, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)

	return NewPostService(db), db
}

func TestCreate(t *testing.T) {
	s, db := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreatePostRequest
		expectedErr error
	}{
		{
			name: "valid post",
			req: &CreatePostRequest{
				Title:    "First Post",
				Slug:     "first-post",
				Markdown: "hi",
			},
		},
		{
			name: "duplicate slug",
			req: &CreatePostRequest{
				Title:    "Another Post",
				Slug:     "first-post",
				Markdown: "bye",
			},
			expectedErr: ErrDuplicateSlug,
		},
		{
			name: "empty title",
			req: &CreatePostRequest{
				Title:    "",
				Slug:     "no-title",
				Markdown: "hi",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "invalid slug",
			req: &CreatePostRequest{
				Title:    "Bad Slug",
				Slug:     "Bad Slug!",
				Markdown: "hi",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"slug": "must only contain lowercase letters, numbers, and hyphens"}},
		},
		{
			name: "empty markdown",
			req: &CreatePostRequest{
				Title:    "No Body",
				Slug:     "no-body",
				Markdown: "",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"markdown": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			post, err := s.Create(ctx, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, post.ID)
				assert.Equal(t, tc.req.Title, post.Title)
				assert.Equal(t, tc.req.Slug, post.Slug)
				assert.Equal(t, tc.req.Markdown, post.Markdown)
				assert.Equal(t, post.CreatedAt, post.UpdatedAt)
			}
		})
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetBySlug(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	created, err := s.Create(ctx, &CreatePostRequest{Title: "First Post", Slug: "first-post", Markdown: "hi"})
	assert.NoError(t, err)

	got, err := s.GetBySlug(ctx, "first-post")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Slug, got.Slug)
	assert.Equal(t, created.Markdown, got.Markdown)

	_, err = s.GetBySlug(ctx, "missing-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetAll(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	posts, err := s.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, posts)

	_, err = s.Create(ctx, &CreatePostRequest{Title: "First Post", Slug: "first-post", Markdown: "hi"})
	assert.NoError(t, err)

	_, err = s.Create(ctx, &CreatePostRequest{Title: "Second Post", Slug: "second-post", Markdown: "hello"})
	assert.NoError(t, err)

	posts, err = s.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "first-post", posts[0].Slug)
	assert.Equal(t, "second-post", posts[1].Slug)
}

func TestUpdate(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	created, err := s.Create(ctx, &CreatePostRequest{Title: "First Post", Slug: "first-post", Markdown: "hi"})
	assert.NoError(t, err)

	updated, err := s.Update(ctx, "first-post", "Updated", "bye")
	assert.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "bye", updated.Markdown)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = s.Update(ctx, "missing-post", "Updated", "bye")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	_, err := s.Create(ctx, &CreatePostRequest{Title: "First Post", Slug: "first-post", Markdown: "hi"})
	assert.NoError(t, err)

	err = s.Delete(ctx, "first-post")
	assert.NoError(t, err)

	_, err = s.GetBySlug(ctx, "first-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.Delete(ctx, "first-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
