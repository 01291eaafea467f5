package influencer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"trustboard-backend/internal/trust"
)

// ProfileFreshness is how long fetched platform metrics stay usable before
// the profile counts as stale and gets re-fetched.
const ProfileFreshness = 24 * time.Hour

var supportedPlatforms = map[string]bool{
	"instagram": true,
	"youtube":   true,
	"linkedin":  true,
	"tiktok":    true,
}

// Influencer is a tracked social media figure whose health claims are
// monitored. The (Username, Platform) pair is the natural key, compared
// case-insensitively.
type Influencer struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Platform    string    `json:"platform"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Category    string    `json:"category"`

	// Platform metrics, refreshed from the profile fetcher.
	FollowerCount    int64     `json:"follower_count"`
	ContentCount     int64     `json:"content_count"`
	Verified         bool      `json:"verified"`
	AccountCreatedAt time.Time `json:"account_created_at"`

	TrustScore    int       `json:"trust_score"`
	LastFetchedAt time.Time `json:"last_fetched_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewInfluencer builds a profile with normalized handle fields and a trust
// score derived from the given metrics.
func NewInfluencer(username, platform, displayName, bio, category string) (*Influencer, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	platform = strings.ToLower(strings.TrimSpace(platform))

	if username == "" || len(username) > 100 {
		return nil, ErrInvalidUsername
	}
	if !supportedPlatforms[platform] {
		return nil, ErrInvalidPlatform
	}

	now := time.Now()
	return &Influencer{
		ID:          uuid.New(),
		Username:    username,
		Platform:    platform,
		DisplayName: strings.TrimSpace(displayName),
		Bio:         bio,
		Category:    category,
		TrustScore:  trust.NeutralScore,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyMetrics stores freshly fetched platform metrics and recomputes the
// trust score from them.
func (i *Influencer) ApplyMetrics(followerCount, contentCount int64, verified bool, accountCreatedAt time.Time) {
	i.FollowerCount = followerCount
	i.ContentCount = contentCount
	i.Verified = verified
	i.AccountCreatedAt = accountCreatedAt
	i.TrustScore = trust.Score(trust.Metrics{
		FollowerCount:    followerCount,
		ContentCount:     contentCount,
		Verified:         verified,
		AccountCreatedAt: accountCreatedAt,
	})
	i.LastFetchedAt = time.Now()
	i.UpdatedAt = i.LastFetchedAt
}

// IsStale reports whether the profile metrics are past the freshness window.
// A profile that was never fetched is always stale.
func (i *Influencer) IsStale(now time.Time) bool {
	if i.LastFetchedAt.IsZero() {
		return true
	}
	return now.Sub(i.LastFetchedAt) > ProfileFreshness
}
