package service

import (
	"context"

	"snsapi/internal/models"
	"snsapi/internal/repository"
)

// LikeService toggles the (post, username) like marker.
type LikeService struct {
	store repository.Store
	now   Clock
}

type LikeInput struct {
	PostID   string
	Username string
}

func NewLikeService(store repository.Store) *LikeService {
	return &LikeService{store: store, now: systemClock}
}

// LikePost records a like. Liking twice is a no-op that returns the original
// like; concurrent callers converge on the single stored row.
func (s *LikeService) LikePost(ctx context.Context, in LikeInput) (*models.LikeResponse, error) {
	var like *models.Like
	err := s.store.Transaction(ctx, "like_post", func(tx repository.Store) error {
		if _, err := tx.Posts().GetByID(ctx, in.PostID); err != nil {
			return translate(err, "Post", in.PostID)
		}
		if err := requireFields("username", in.Username); err != nil {
			return err
		}

		candidate := &models.Like{PostID: in.PostID, Username: in.Username, CreatedAt: s.now()}
		if _, err := tx.Likes().CreateIfAbsent(ctx, candidate); err != nil {
			return err
		}

		var err error
		like, err = tx.Likes().Get(ctx, in.PostID, in.Username)
		return err
	})
	if err != nil {
		return nil, translate(err, "Like", in.PostID)
	}
	return models.NewLikeResponse(like), nil
}

// UnlikePost removes a like. Removing a like that does not exist is NotFound.
func (s *LikeService) UnlikePost(ctx context.Context, in LikeInput) error {
	err := s.store.Transaction(ctx, "unlike_post", func(tx repository.Store) error {
		if _, err := tx.Posts().GetByID(ctx, in.PostID); err != nil {
			return translate(err, "Post", in.PostID)
		}
		if err := requireFields("username", in.Username); err != nil {
			return err
		}
		if err := tx.Likes().Delete(ctx, in.PostID, in.Username); err != nil {
			return translate(err, "Like", in.PostID+"/"+in.Username)
		}
		return nil
	})
	return translate(err, "Like", in.PostID)
}
