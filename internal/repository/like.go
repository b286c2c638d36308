package repository

import (
	"context"

	"snsapi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines data access methods for likes, keyed by (post, username).
type LikeRepository interface {
	CreateIfAbsent(ctx context.Context, like *models.Like) (bool, error)
	Get(ctx context.Context, postID, username string) (*models.Like, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	Delete(ctx context.Context, postID, username string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// CreateIfAbsent inserts like unless the pair already exists. It reports
// whether a row was written.
func (r *likeRepository) CreateIfAbsent(ctx context.Context, like *models.Like) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *likeRepository) Get(ctx context.Context, postID, username string) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND username = ?", postID, username).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *likeRepository) Delete(ctx context.Context, postID, username string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND username = ?", postID, username).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *likeRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{})
	return result.RowsAffected, result.Error
}
