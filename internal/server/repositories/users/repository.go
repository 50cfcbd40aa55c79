// Package users declares the persistence contract for user identity
// records.
package users

import (
	"context"

	"github.com/mpashkov/videovault/internal/server/models"
)

// Repository defines the operations the authentication flow needs from
// user storage.
type Repository interface {
	// Create inserts a new user. A duplicate login yields common.ErrorConflict.
	Create(ctx context.Context, login string, passwordHash string) (*models.User, error)

	// GetByLogin performs a case-sensitive unique-key lookup. Absence is
	// reported as common.ErrorNotFound.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
