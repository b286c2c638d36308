package service

import (
	"context"

	"snsapi/internal/models"
	"snsapi/internal/repository"

	"github.com/samber/lo"
)

// CommentService owns the comment use cases. Comments are always addressed
// through their post.
type CommentService struct {
	store repository.Store
	now   Clock
	newID func() string
}

type CreateCommentInput struct {
	PostID   string
	Username string
	Content  string
}

type UpdateCommentInput struct {
	PostID    string
	CommentID string
	Username  string
	Content   string
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store, now: systemClock, newID: newID}
}

// ListComments returns the comments of a post, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]*models.CommentResponse, error) {
	var comments []*models.Comment
	err := s.store.ReadOnly(ctx, "list_comments", func(tx repository.Store) error {
		if _, err := tx.Posts().GetByID(ctx, postID); err != nil {
			return translate(err, "Post", postID)
		}
		var err error
		comments, err = tx.Comments().ListByPost(ctx, postID)
		return err
	})
	if err != nil {
		return nil, translate(err, "Post", postID)
	}

	return lo.Map(comments, func(c *models.Comment, _ int) *models.CommentResponse {
		return models.NewCommentResponse(c)
	}), nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.CommentResponse, error) {
	var comment *models.Comment
	err := s.store.Transaction(ctx, "create_comment", func(tx repository.Store) error {
		if _, err := tx.Posts().GetByID(ctx, in.PostID); err != nil {
			return translate(err, "Post", in.PostID)
		}
		if err := requireFields("username", in.Username, "content", in.Content); err != nil {
			return err
		}

		now := s.now()
		comment = &models.Comment{
			ID:        s.newID(),
			PostID:    in.PostID,
			Username:  in.Username,
			Content:   in.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Comments().Create(ctx, comment)
	})
	if err != nil {
		return nil, translate(err, "Post", in.PostID)
	}
	return models.NewCommentResponse(comment), nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, commentID string) (*models.CommentResponse, error) {
	var comment *models.Comment
	err := s.store.ReadOnly(ctx, "get_comment", func(tx repository.Store) error {
		var err error
		comment, err = findComment(ctx, tx, postID, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return models.NewCommentResponse(comment), nil
}

// UpdateComment replaces the content of a comment. The username is required
// but is not compared with the author.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.CommentResponse, error) {
	var comment *models.Comment
	err := s.store.Transaction(ctx, "update_comment", func(tx repository.Store) error {
		var err error
		comment, err = findComment(ctx, tx, in.PostID, in.CommentID)
		if err != nil {
			return err
		}
		if err := requireFields("username", in.Username, "content", in.Content); err != nil {
			return err
		}

		comment.Content = in.Content
		comment.UpdatedAt = s.now()
		if comment.UpdatedAt.Before(comment.CreatedAt) {
			comment.UpdatedAt = comment.CreatedAt
		}
		return tx.Comments().Update(ctx, comment)
	})
	if err != nil {
		return nil, translate(err, "Comment", in.CommentID)
	}
	return models.NewCommentResponse(comment), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, postID, commentID string) error {
	err := s.store.Transaction(ctx, "delete_comment", func(tx repository.Store) error {
		if _, err := findComment(ctx, tx, postID, commentID); err != nil {
			return err
		}
		return tx.Comments().Delete(ctx, postID, commentID)
	})
	return translate(err, "Comment", commentID)
}

// findComment checks the post first so a missing post and a missing comment
// produce distinct messages.
func findComment(ctx context.Context, tx repository.Store, postID, commentID string) (*models.Comment, error) {
	if _, err := tx.Posts().GetByID(ctx, postID); err != nil {
		return nil, translate(err, "Post", postID)
	}
	comment, err := tx.Comments().GetByIDAndPost(ctx, postID, commentID)
	if err != nil {
		return nil, translate(err, "Comment", commentID)
	}
	return comment, nil
}
