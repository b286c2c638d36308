package repository

import (
	"context"
	"time"

	"snsapi/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// Store groups the repositories behind one unit-of-work boundary.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository

	// Transaction runs fn inside a database transaction. Returning an error
	// from fn rolls back every write made through tx.
	Transaction(ctx context.Context, name string, fn func(tx Store) error) error

	// ReadOnly runs fn without a transaction. Reads inside fn may observe
	// concurrent commits between statements.
	ReadOnly(ctx context.Context, name string, fn func(tx Store) error) error
}

type store struct {
	db       *gorm.DB
	posts    PostRepository
	comments CommentRepository
	likes    LikeRepository
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:       db,
		posts:    NewPostRepository(db),
		comments: NewCommentRepository(db),
		likes:    NewLikeRepository(db),
	}
}

func (s *store) Posts() PostRepository       { return s.posts }
func (s *store) Comments() CommentRepository { return s.comments }
func (s *store) Likes() LikeRepository       { return s.likes }

func (s *store) Transaction(ctx context.Context, name string, fn func(tx Store) error) (err error) {
	ctx, span := observability.StartSpan(ctx, "store.tx "+name, attribute.String("store.mode", "rw"))
	start := time.Now()
	defer func() {
		observability.ObserveStoreTx("rw", start, err)
		observability.EndSpan(span, err)
	}()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *store) ReadOnly(ctx context.Context, name string, fn func(tx Store) error) (err error) {
	ctx, span := observability.StartSpan(ctx, "store.read "+name, attribute.String("store.mode", "ro"))
	start := time.Now()
	defer func() {
		observability.ObserveStoreTx("ro", start, err)
		observability.EndSpan(span, err)
	}()

	return fn(NewStore(s.db.WithContext(ctx)))
}
