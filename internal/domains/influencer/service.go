package influencer

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for influencer profiles.
type Service interface {
	// Create registers a new influencer, fetches their platform profile and
	// computes the initial trust score. A fetch failure is not fatal: the
	// profile is stored with a neutral score and refreshed later.
	Create(ctx context.Context, req *CreateInfluencerReq) (*InfluencerResp, error)

	GetByID(ctx context.Context, id uuid.UUID) (*InfluencerResp, error)

	GetByHandle(ctx context.Context, username, platform string) (*InfluencerResp, error)

	Search(ctx context.Context, filter *SearchFilter) (*InfluencerListResp, error)

	Update(ctx context.Context, id uuid.UUID, req *UpdateInfluencerReq) (*InfluencerResp, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// RefreshProfile re-fetches platform metrics and recomputes the trust
	// score regardless of freshness.
	RefreshProfile(ctx context.Context, id uuid.UUID) (*InfluencerResp, error)

	// RefreshStaleProfiles refreshes up to limit profiles past the
	// freshness window. Returns how many were refreshed.
	RefreshStaleProfiles(ctx context.Context, limit int) (int, error)
}
