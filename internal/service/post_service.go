package service

import (
	"context"

	"snsapi/internal/models"
	"snsapi/internal/repository"

	"github.com/samber/lo"
)

// PostService owns the post use cases.
type PostService struct {
	store repository.Store
	now   Clock
	newID func() string
}

// ListPostsInput optionally pages the post listing. A zero Limit lists everything.
type ListPostsInput struct {
	Limit  int
	Offset int
}

type CreatePostInput struct {
	Username string
	Content  string
}

type UpdatePostInput struct {
	PostID   string
	Username string
	Content  string
}

func NewPostService(store repository.Store) *PostService {
	return &PostService{store: store, now: systemClock, newID: newID}
}

// ListPosts returns posts newest first with live counts.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.PostResponse, error) {
	var posts []*models.Post
	err := s.store.ReadOnly(ctx, "list_posts", func(tx repository.Store) error {
		var err error
		posts, err = tx.Posts().List(ctx, in.Limit, in.Offset)
		return err
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return lo.Map(posts, func(p *models.Post, _ int) *models.PostResponse {
		return models.NewPostResponse(p)
	}), nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostResponse, error) {
	if err := requireFields("username", in.Username, "content", in.Content); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		ID:        s.newID(),
		Username:  in.Username,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Transaction(ctx, "create_post", func(tx repository.Store) error {
		return tx.Posts().Create(ctx, post)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return models.NewPostResponse(post), nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.PostResponse, error) {
	var post *models.Post
	err := s.store.ReadOnly(ctx, "get_post", func(tx repository.Store) error {
		var err error
		post, err = loadPostWithCounts(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, translate(err, "Post", id)
	}
	return models.NewPostResponse(post), nil
}

// UpdatePost replaces the content of an existing post. The username is
// required but is not compared with the author.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.PostResponse, error) {
	var post *models.Post
	err := s.store.Transaction(ctx, "update_post", func(tx repository.Store) error {
		var err error
		post, err = tx.Posts().GetByID(ctx, in.PostID)
		if err != nil {
			return translate(err, "Post", in.PostID)
		}
		if err := requireFields("username", in.Username, "content", in.Content); err != nil {
			return err
		}

		post.Content = in.Content
		post.UpdatedAt = s.now()
		if post.UpdatedAt.Before(post.CreatedAt) {
			post.UpdatedAt = post.CreatedAt
		}
		if err := tx.Posts().Update(ctx, post); err != nil {
			return err
		}

		post, err = loadPostWithCounts(ctx, tx, in.PostID)
		return err
	})
	if err != nil {
		return nil, translate(err, "Post", in.PostID)
	}
	return models.NewPostResponse(post), nil
}

// DeletePost removes a post with its likes and comments in one transaction.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, "delete_post", func(tx repository.Store) error {
		if _, err := tx.Posts().GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Likes().DeleteByPost(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Comments().DeleteByPost(ctx, id); err != nil {
			return err
		}
		return tx.Posts().Delete(ctx, id)
	})
	return translate(err, "Post", id)
}

func loadPostWithCounts(ctx context.Context, tx repository.Store, id string) (*models.Post, error) {
	post, err := tx.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.LikesCount, err = tx.Likes().CountByPost(ctx, id); err != nil {
		return nil, err
	}
	if post.CommentsCount, err = tx.Comments().CountByPost(ctx, id); err != nil {
		return nil, err
	}
	return post, nil
}
