// Package sessions declares the repository contract for server-stored
// refresh tokens and its PostgreSQL implementation.
package sessions

import (
	"context"
	"time"

	"github.com/maaz2022/ourtracker/internal/server/models"
)

// Repository issues, looks up and revokes sessions.
type Repository interface {
	// Create stores a session for userID expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete returns common.ErrorNotFound when no session had the token.
	Delete(ctx context.Context, token string) error
}
