package models

import "time"

// PostResponse is the enriched representation of a post.
type PostResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	LikesCount    int64     `json:"likesCount"`
	CommentsCount int64     `json:"commentsCount"`
}

// CommentResponse is the representation of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeResponse is the representation of a like.
type LikeResponse struct {
	PostID   string    `json:"postId"`
	Username string    `json:"username"`
	LikedAt  time.Time `json:"likedAt"`
}

// NewPostResponse copies a post and the counts it was loaded with.
func NewPostResponse(p *Post) *PostResponse {
	return &PostResponse{
		ID:            p.ID,
		Username:      p.Username,
		Content:       p.Content,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
	}
}

func NewCommentResponse(c *Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Username:  c.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewLikeResponse(l *Like) *LikeResponse {
	return &LikeResponse{
		PostID:   l.PostID,
		Username: l.Username,
		LikedAt:  l.CreatedAt,
	}
}
