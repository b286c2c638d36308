package server

import (
	"log/slog"
	"strings"

	"snsapi/internal/middleware"
	"snsapi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts optional limit and offset query parameters.
// A missing or non-positive limit means "no limit".
func parsePagination(c *fiber.Ctx) Pagination {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		limit = 0
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// contentRequest is the body accepted by post and comment create/update.
type contentRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

// likeRequest is the body accepted by like and unlike.
type likeRequest struct {
	Username string `json:"username"`
}

// respondServiceError renders an error returned by a service.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "service call failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// unlikeUsername prefers the ?username= query parameter and falls back to a
// JSON body.
func unlikeUsername(c *fiber.Ctx) string {
	if username := c.Query("username"); strings.TrimSpace(username) != "" {
		return username
	}
	if len(c.Body()) == 0 {
		return ""
	}
	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return ""
	}
	return req.Username
}
