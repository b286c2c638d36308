package repository

import (
	"context"

	"snsapi/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines data access methods for comments. Every lookup
// is scoped to the owning post.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByIDAndPost(ctx context.Context, postID, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, postID, id string) error
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByIDAndPost(ctx context.Context, postID, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", id, postID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns the comments of a post, oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND post_id = ?", comment.ID, comment.PostID).
		Updates(map[string]interface{}{
			"content":    comment.Content,
			"updated_at": comment.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, postID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", id, postID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByPost removes every comment of a post and returns how many went.
func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
