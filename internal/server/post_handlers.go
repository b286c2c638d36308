package server

import (
	"snsapi/internal/models"
	"snsapi/internal/notifications"
	"snsapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts
// @Summary List posts
// @Description Posts newest first, each with live like and comment counts
// @Tags posts
// @Produce json
// @Param limit query int false "Maximum number of posts (capped at 100)"
// @Param offset query int false "Number of posts to skip"
// @Success 200 {array} models.PostResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	posts, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{username=string,content=string} true "Post"
// @Success 201 {object} models.PostResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventPostCreated, post)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:postId
// @Summary Get post
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} models.PostResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:postId
// @Summary Update post content
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path string true "Post ID"
// @Param request body object{username=string,content=string} true "Post"
// @Success 200 {object} models.PostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:   c.Params("postId"),
		Username: req.Username,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventPostUpdated, post)

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:postId
// @Summary Delete post with its comments and likes
// @Tags posts
// @Param postId path string true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID := c.Params("postId")
	if err := s.postService.DeletePost(c.UserContext(), postID); err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c.UserContext(), notifications.EventPostDeleted, fiber.Map{"id": postID})

	return c.SendStatus(fiber.StatusNoContent)
}
