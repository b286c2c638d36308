// Package models defines the persisted entities and the JSON shapes returned by the API.
package models

import "time"

// Post is a top-level unit of shared content.
// LikesCount and CommentsCount are filled by queries that select them; they are never stored.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Username  string    `gorm:"size:255;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	LikesCount    int64 `gorm:"->;-:migration"`
	CommentsCount int64 `gorm:"->;-:migration"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Comment belongs to exactly one post for its whole lifetime.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36"`
	PostID    string    `gorm:"size:36;not null;index"`
	Username  string    `gorm:"size:255;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// Like marks that Username endorsed PostID. The pair is the primary key.
type Like struct {
	PostID    string    `gorm:"primaryKey;size:36"`
	Username  string    `gorm:"primaryKey;size:255"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string {
	return "likes"
}
