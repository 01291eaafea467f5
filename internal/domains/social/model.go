package social

import (
	"time"

	"github.com/google/uuid"
)

// UserToken is an OAuth credential for one (user, platform) pair. The pair
// is unique; reconnecting a platform replaces the stored token.
type UserToken struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Platform     string    `json:"platform"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUserToken(userID uuid.UUID, platform, accessToken, refreshToken string, expiresAt time.Time) *UserToken {
	now := time.Now()
	return &UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		Platform:     platform,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (t *UserToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
