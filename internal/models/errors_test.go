package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"missing field", NewMissingFieldError("username"), fiber.StatusBadRequest},
		{"not found", NewNotFoundError("Post", "abc"), fiber.StatusNotFound},
		{"rate limited", NewRateLimitError(), fiber.StatusTooManyRequests},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFoundError("Comment", "x")), fiber.StatusNotFound},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondWithError_Body(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantLabel   string
		wantMessage string
		wantDetails bool
	}{
		{"missing field", NewMissingFieldError("username", "content"), 400, "BadRequest", "Missing required field", true},
		{"not found", NewNotFoundError("Post", "p-1"), 404, "NotFound", "Post with ID p-1 not found", false},
		{"internal hides cause", NewInternalError(errors.New("db exploded")), 500, "InternalServerError", "Internal server error", false},
		{"plain error hides cause", errors.New("secret"), 500, "InternalServerError", "Internal server error", false},
		{"fiber error", fiber.ErrMethodNotAllowed, 405, "MethodNotAllowed", "Method Not Allowed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, StatusFor(tt.err), tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantLabel, body["error"])
			assert.Equal(t, tt.wantMessage, body["message"])
			_, hasDetails := body["details"]
			assert.Equal(t, tt.wantDetails, hasDetails)
		})
	}
}

func TestNewLikeResponse_UsesCreatedAtAsLikedAt(t *testing.T) {
	like := &Like{PostID: "p", Username: "bob"}
	resp := NewLikeResponse(like)
	assert.Equal(t, "p", resp.PostID)
	assert.Equal(t, "bob", resp.Username)
	assert.True(t, resp.LikedAt.Equal(like.CreatedAt))
}
