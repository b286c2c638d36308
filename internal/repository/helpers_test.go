package repository

import (
	"testing"
	"time"

	"snsapi/internal/models"
	"snsapi/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB returns a GORM handle on the postgres dialect backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %s", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %s", err)
	}
	return db, mock
}

// setupSQLiteStore returns a Store on a migrated in-memory SQLite database.
func setupSQLiteStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewStore(db), db
}

var baseTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newPost(username, content string, createdAt time.Time) *models.Post {
	return &models.Post{
		ID:        uuid.NewString(),
		Username:  username,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func newComment(postID, username string, createdAt time.Time) *models.Comment {
	return &models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Username:  username,
		Content:   "comment by " + username,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
