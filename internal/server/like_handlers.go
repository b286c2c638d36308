package server

import (
	"snsapi/internal/models"
	"snsapi/internal/notifications"
	"snsapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:postId/likes
// @Summary Like a post
// @Description Liking a post twice returns the existing like unchanged
// @Tags likes
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body object{username=string} true "Liker"
// @Success 201 {object} models.LikeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/likes [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	like, err := s.likeService.LikePost(c.UserContext(), service.LikeInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventPostLiked, like)

	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikePost handles DELETE /api/posts/:postId/likes?username=
// @Summary Remove a like
// @Tags likes
// @Param postId path string true "Post ID"
// @Param username query string true "Liker"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/likes [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	in := service.LikeInput{
		PostID:   c.Params("postId"),
		Username: unlikeUsername(c),
	}
	if err := s.likeService.UnlikePost(c.UserContext(), in); err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventPostUnliked, fiber.Map{
		"postId":   in.PostID,
		"username": in.Username,
	})

	return c.SendStatus(fiber.StatusNoContent)
}
