package server

import (
	"snsapi/internal/models"
	"snsapi/internal/notifications"
	"snsapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/posts/:postId/comments
// @Summary List comments of a post
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {array} models.CommentResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext(), c.Params("postId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:postId/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body object{username=string,content=string} true "Comment"
// @Success 201 {object} models.CommentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventCommentCreated, comment)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/posts/:postId/comments/:commentId
// @Summary Get comment
// @Tags comments
// @Produce json
// @Param postId path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} models.CommentResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments/{commentId} [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	comment, err := s.commentService.GetComment(c.UserContext(), c.Params("postId"), c.Params("commentId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PATCH /api/posts/:postId/comments/:commentId
// @Summary Update comment content
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Param request body object{username=string,content=string} true "Comment"
// @Success 200 {object} models.CommentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments/{commentId} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		PostID:    c.Params("postId"),
		CommentID: c.Params("commentId"),
		Username:  req.Username,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventCommentUpdated, comment)

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:postId/comments/:commentId
// @Summary Delete comment
// @Tags comments
// @Param postId path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, commentID := c.Params("postId"), c.Params("commentId")
	if err := s.commentService.DeleteComment(c.UserContext(), postID, commentID); err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventCommentDeleted, fiber.Map{
		"postId": postID,
		"id":     commentID,
	})

	return c.SendStatus(fiber.StatusNoContent)
}
