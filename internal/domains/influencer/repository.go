package influencer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data access contract for tracked influencers.
type Repository interface {
	Create(ctx context.Context, influencer *Influencer) (*Influencer, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Influencer, error)

	// GetByHandle looks up by the normalized (username, platform) pair.
	GetByHandle(ctx context.Context, username, platform string) (*Influencer, error)

	// Search returns a page of influencers plus the unpaged total.
	Search(ctx context.Context, filter *SearchFilter) ([]Influencer, int64, error)

	Update(ctx context.Context, influencer *Influencer) (*Influencer, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListStale returns profiles whose metrics were fetched before cutoff,
	// oldest first, capped at limit. Never-fetched profiles come first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]Influencer, error)
}
