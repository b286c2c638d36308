package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"snsapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreatePostInput
	}{
		{"empty username", CreatePostInput{Content: "hello"}},
		{"empty content", CreatePostInput{Username: "john"}},
		{"whitespace username", CreatePostInput{Username: "   ", Content: "hello"}},
		{"whitespace content", CreatePostInput{Username: "john", Content: "\t\n"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := newStoreStub()
			store.posts.createFn = func(_ context.Context, _ *models.Post) error {
				t.Fatal("nothing may be persisted for invalid input")
				return nil
			}

			_, err := NewPostService(store).CreatePost(context.Background(), tc.in)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost_MissingFieldsAreNamed(t *testing.T) {
	t.Parallel()

	_, err := NewPostService(newStoreStub()).CreatePost(context.Background(), CreatePostInput{})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Missing required field", appErr.Message)
	assert.Equal(t, map[string][]string{"fields": {"username", "content"}}, appErr.Details)
}

func TestPostService_CreatePost_AssignsIdentityAndTimestamps(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var stored *models.Post
	store := newStoreStub()
	store.posts.createFn = func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	}

	svc := NewPostService(store)
	svc.now = fakeClock(start)
	svc.newID = func() string { return "fixed-id" }

	resp, err := svc.CreatePost(context.Background(), CreatePostInput{Username: "john", Content: "hello"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "fixed-id", resp.ID)
	assert.True(t, resp.CreatedAt.Equal(start))
	assert.True(t, resp.UpdatedAt.Equal(resp.CreatedAt))
	assert.Zero(t, resp.LikesCount)
	assert.Zero(t, resp.CommentsCount)
}

func TestPostService_CreatePost_StoreFailureIsInternal(t *testing.T) {
	t.Parallel()

	store := newStoreStub()
	store.posts.createFn = func(_ context.Context, _ *models.Post) error { return errors.New("disk full") }

	_, err := NewPostService(store).CreatePost(context.Background(), CreatePostInput{Username: "john", Content: "hello"})
	assertInternalError(t, err)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	t.Parallel()

	store := newStoreStub()
	store.posts = missingPostRepo()

	_, err := NewPostService(store).GetPost(context.Background(), "nope")
	assertNotFoundError(t, err)
}

func TestPostService_UpdatePost_NotFoundBeforeValidation(t *testing.T) {
	t.Parallel()

	store := newStoreStub()
	store.posts = missingPostRepo()

	_, err := NewPostService(store).UpdatePost(context.Background(), UpdatePostInput{PostID: "nope"})
	assertNotFoundError(t, err)
}

func TestPostService_UpdatePost_Validation(t *testing.T) {
	t.Parallel()

	store := newStoreStub()
	store.posts.updateFn = func(_ context.Context, _ *models.Post) error {
		t.Fatal("update must not run for invalid input")
		return nil
	}
	svc := NewPostService(store)

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: "p", Username: "john", Content: " "})
	assertValidationError(t, err)
	_, err = svc.UpdatePost(context.Background(), UpdatePostInput{PostID: "p", Content: "new"})
	assertValidationError(t, err)
}

func TestPostService_DeletePost_NotFound(t *testing.T) {
	t.Parallel()

	store := newStoreStub()
	store.posts = missingPostRepo()
	store.likes.deleteByPostFn = func(_ context.Context, _ string) (int64, error) {
		t.Fatal("children must not be touched when the post is missing")
		return 0, nil
	}

	assertNotFoundError(t, NewPostService(store).DeletePost(context.Background(), "nope"))
}

func TestPostService_ListPosts_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	posts, err := NewPostService(newStoreStub()).ListPosts(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostService_Flow_SQLite(t *testing.T) {
	posts, comments, likes := sqliteServices(t)
	ctx := context.Background()

	created, err := posts.CreatePost(ctx, CreatePostInput{Username: "john", Content: "hello"})
	require.NoError(t, err)

	got, err := posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "john", got.Username)
	assert.Equal(t, "hello", got.Content)
	assert.Zero(t, got.LikesCount)
	assert.Zero(t, got.CommentsCount)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))

	_, err = comments.CreateComment(ctx, CreateCommentInput{PostID: created.ID, Username: "ann", Content: "nice"})
	require.NoError(t, err)
	_, err = likes.LikePost(ctx, LikeInput{PostID: created.ID, Username: "bob"})
	require.NoError(t, err)

	got, err = posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikesCount)
	assert.Equal(t, int64(1), got.CommentsCount)

	// Username on update is not matched against the author.
	updated, err := posts.UpdatePost(ctx, UpdatePostInput{PostID: created.ID, Username: "mallory", Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "john", updated.Username)
	assert.Equal(t, "edited", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
	assert.Equal(t, int64(1), updated.LikesCount)

	listed, err := posts.ListPosts(ctx, ListPostsInput{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].CommentsCount)

	require.NoError(t, posts.DeletePost(ctx, created.ID))

	_, err = posts.GetPost(ctx, created.ID)
	assertNotFoundError(t, err)
	_, err = comments.ListComments(ctx, created.ID)
	assertNotFoundError(t, err)
	assertNotFoundError(t, likes.UnlikePost(ctx, LikeInput{PostID: created.ID, Username: "bob"}))
	assertNotFoundError(t, posts.DeletePost(ctx, created.ID))
}

func TestPostService_ListPosts_NewestFirst_SQLite(t *testing.T) {
	posts, _, _ := sqliteServices(t)
	posts.now = fakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var ids []string
	for _, content := range []string{"first", "second", "third"} {
		p, err := posts.CreatePost(ctx, CreatePostInput{Username: "john", Content: content})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	listed, err := posts.ListPosts(ctx, ListPostsInput{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{listed[0].ID, listed[1].ID, listed[2].ID})

	page, err := posts.ListPosts(ctx, ListPostsInput{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}
