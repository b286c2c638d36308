package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"snsapi/internal/models"
	"snsapi/internal/repository"
	"snsapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, string) (*models.Post, error)
	listFn    func(context.Context, int, int) ([]*models.Post, error)
	updateFn  func(context.Context, *models.Post) error
	deleteFn  func(context.Context, string) error
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error { return s.createFn(ctx, p) }
func (s *postRepoStub) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id string) error      { return s.deleteFn(ctx, id) }

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Post, error) {
			return &models.Post{ID: id, Username: "john", Content: "hello"}, nil
		},
		listFn:   func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

func missingPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ string) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	return repo
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getFn          func(context.Context, string, string) (*models.Comment, error)
	listByPostFn   func(context.Context, string) ([]*models.Comment, error)
	countByPostFn  func(context.Context, string) (int64, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, string, string) error
	deleteByPostFn func(context.Context, string) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByIDAndPost(ctx context.Context, postID, id string) (*models.Comment, error) {
	return s.getFn(ctx, postID, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID string) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, postID, id string) error {
	return s.deleteFn(ctx, postID, id)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getFn: func(_ context.Context, postID, id string) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: postID, Username: "ann", Content: "hi"}, nil
		},
		listByPostFn:   func(_ context.Context, _ string) ([]*models.Comment, error) { return nil, nil },
		countByPostFn:  func(_ context.Context, _ string) (int64, error) { return 0, nil },
		updateFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:       func(_ context.Context, _, _ string) error { return nil },
		deleteByPostFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createIfAbsentFn func(context.Context, *models.Like) (bool, error)
	getFn            func(context.Context, string, string) (*models.Like, error)
	countByPostFn    func(context.Context, string) (int64, error)
	deleteFn         func(context.Context, string, string) error
	deleteByPostFn   func(context.Context, string) (int64, error)
}

func (s *likeRepoStub) CreateIfAbsent(ctx context.Context, l *models.Like) (bool, error) {
	return s.createIfAbsentFn(ctx, l)
}
func (s *likeRepoStub) Get(ctx context.Context, postID, username string) (*models.Like, error) {
	return s.getFn(ctx, postID, username)
}
func (s *likeRepoStub) CountByPost(ctx context.Context, postID string) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *likeRepoStub) Delete(ctx context.Context, postID, username string) error {
	return s.deleteFn(ctx, postID, username)
}
func (s *likeRepoStub) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createIfAbsentFn: func(_ context.Context, _ *models.Like) (bool, error) { return true, nil },
		getFn: func(_ context.Context, postID, username string) (*models.Like, error) {
			return &models.Like{PostID: postID, Username: username}, nil
		},
		countByPostFn:  func(_ context.Context, _ string) (int64, error) { return 0, nil },
		deleteFn:       func(_ context.Context, _, _ string) error { return nil },
		deleteByPostFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}
}

// storeStub runs units of work directly against the stub repositories.
type storeStub struct {
	posts    *postRepoStub
	comments *commentRepoStub
	likes    *likeRepoStub
}

func newStoreStub() *storeStub {
	return &storeStub{posts: noopPostRepo(), comments: noopCommentRepo(), likes: noopLikeRepo()}
}

func (s *storeStub) Posts() repository.PostRepository       { return s.posts }
func (s *storeStub) Comments() repository.CommentRepository { return s.comments }
func (s *storeStub) Likes() repository.LikeRepository       { return s.likes }
func (s *storeStub) Transaction(_ context.Context, _ string, fn func(repository.Store) error) error {
	return fn(s)
}
func (s *storeStub) ReadOnly(_ context.Context, _ string, fn func(repository.Store) error) error {
	return fn(s)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T (%v)", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T (%v)", err, err)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func assertInternalError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T (%v)", err, err)
	assert.Equal(t, models.CodeInternal, appErr.Code)
}

// fakeClock returns start and then advances by one second on every call.
func fakeClock(start time.Time) Clock {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

// sqliteServices wires all three services to a migrated in-memory database.
func sqliteServices(t *testing.T) (*PostService, *CommentService, *LikeService) {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	return NewPostService(store), NewCommentService(store), NewLikeService(store)
}
