// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snsapi/internal/middleware"
	"snsapi/internal/models"
	"snsapi/internal/repository"
	"snsapi/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data a run produces.
type Options struct {
	Users              int
	Posts              int
	MaxCommentsPerPost int
	MaxLikesPerPost    int
	// Seed makes runs reproducible; 0 picks a time-based seed.
	Seed int64
}

// DefaultOptions is a small but lively feed.
func DefaultOptions() Options {
	return Options{Users: 20, Posts: 50, MaxCommentsPerPost: 5, MaxLikesPerPost: 10}
}

// Result counts what a run created.
type Result struct {
	Posts    int
	Comments int
	Likes    int
}

// Seeder creates posts, comments and likes through the services so seeded data
// obeys the same validation as API traffic.
type Seeder struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	posts    *service.PostService
	comments *service.CommentService
	likes    *service.LikeService
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	store := repository.NewStore(db)
	return &Seeder{
		db:       db,
		faker:    gofakeit.New(seed),
		posts:    service.NewPostService(store),
		comments: service.NewCommentService(store),
		likes:    service.NewLikeService(store),
	}
}

// ClearAll removes every like, comment and post.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Like{}, &models.Comment{}, &models.Post{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run seeds a feed according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.Users <= 0 || opts.Posts <= 0 {
		return res, nil
	}

	users := s.Usernames(opts.Users)
	for i := 0; i < opts.Posts; i++ {
		post, err := s.posts.CreatePost(ctx, service.CreatePostInput{
			Username: s.pick(users),
			Content:  s.faker.Paragraph(1, 3, 12, " "),
		})
		if err != nil {
			return res, fmt.Errorf("seed post: %w", err)
		}
		res.Posts++

		for j := s.upTo(opts.MaxCommentsPerPost); j > 0; j-- {
			if _, err := s.comments.CreateComment(ctx, service.CreateCommentInput{
				PostID:   post.ID,
				Username: s.pick(users),
				Content:  s.faker.Sentence(8),
			}); err != nil {
				return res, fmt.Errorf("seed comment: %w", err)
			}
			res.Comments++
		}

		likers := map[string]struct{}{}
		for j := s.upTo(opts.MaxLikesPerPost); j > 0; j-- {
			likers[s.pick(users)] = struct{}{}
		}
		for username := range likers {
			if _, err := s.likes.LikePost(ctx, service.LikeInput{PostID: post.ID, Username: username}); err != nil {
				return res, fmt.Errorf("seed like: %w", err)
			}
			res.Likes++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
		slog.Int("likes", res.Likes),
	)
	return res, nil
}

// Usernames returns n distinct fake usernames.
func (s *Seeder) Usernames(n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		base := s.faker.Username()
		name := base
		for i := 1; ; i++ {
			if _, dup := seen[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s%d", base, i)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (s *Seeder) pick(users []string) string {
	return users[s.faker.Number(0, len(users)-1)]
}

func (s *Seeder) upTo(max int) int {
	if max <= 0 {
		return 0
	}
	return s.faker.Number(0, max)
}
