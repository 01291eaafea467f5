package social

import (
	"context"

	"github.com/google/uuid"

	"trustboard-backend/internal/domains/influencer"
)

// OAuthService manages platform connections for dashboard users.
type OAuthService interface {
	// GetAuthURL builds the provider authorization URL for the platform.
	GetAuthURL(platform, state string) (*AuthURLResp, error)

	// HandleCallback exchanges the authorization code for tokens and stores
	// them for the user, replacing any previous connection.
	HandleCallback(ctx context.Context, userID uuid.UUID, platform, code string) (*ConnectionResp, error)

	ListConnections(ctx context.Context, userID uuid.UUID) ([]ConnectionResp, error)

	Disconnect(ctx context.Context, userID uuid.UUID, platform string) error

	// CleanupExpiredTokens removes expired tokens. Run by the worker daily.
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// AnalyzerService ingests platform profiles into the influencer catalogue.
type AnalyzerService interface {
	// Analyze returns the tracked influencer for the handle, fetching fresh
	// platform metrics when the stored profile is missing or stale.
	Analyze(ctx context.Context, platform, username string) (*influencer.InfluencerResp, error)
}
