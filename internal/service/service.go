// Package service implements the post, comment and like use cases on top of
// the repository Store.
package service

import (
	"errors"
	"strings"
	"time"

	"snsapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clock returns the current time. Services store timestamps in UTC with
// microsecond precision so every supported store round-trips them exactly.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newID() string {
	return uuid.NewString()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireFields returns a validation error naming every blank field.
// Pairs are name, value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if isBlank(pairs[i+1]) {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return models.NewMissingFieldError(missing...)
	}
	return nil
}

// translate maps repository errors onto the application error taxonomy.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}
