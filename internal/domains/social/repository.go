package social

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for user OAuth tokens.
type Repository interface {
	// Upsert inserts the token or replaces the existing row for the same
	// (user, platform). When the new refresh token is empty the stored one
	// is kept, since providers omit it on re-authorization.
	Upsert(ctx context.Context, token *UserToken) (*UserToken, error)

	GetByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform string) (*UserToken, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserToken, error)

	Delete(ctx context.Context, userID uuid.UUID, platform string) error

	// DeleteExpired removes tokens past their expiry. Returns how many rows
	// were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
