package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustboard-backend/internal/config"
	"trustboard-backend/internal/domains/social"
)

type stubTokenRepo struct {
	tokens map[string]*social.UserToken
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[string]*social.UserToken{}}
}

func tokenKey(userID uuid.UUID, platform string) string {
	return userID.String() + ":" + platform
}

func (r *stubTokenRepo) Upsert(_ context.Context, token *social.UserToken) (*social.UserToken, error) {
	key := tokenKey(token.UserID, token.Platform)
	if existing, ok := r.tokens[key]; ok && token.RefreshToken == "" {
		token.RefreshToken = existing.RefreshToken
	}
	cp := *token
	r.tokens[key] = &cp
	return &cp, nil
}

func (r *stubTokenRepo) GetByUserAndPlatform(_ context.Context, userID uuid.UUID, platform string) (*social.UserToken, error) {
	t, ok := r.tokens[tokenKey(userID, platform)]
	if !ok {
		return nil, social.ErrTokenNotFound
	}
	return t, nil
}

func (r *stubTokenRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]social.UserToken, error) {
	var out []social.UserToken
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTokenRepo) Delete(_ context.Context, userID uuid.UUID, platform string) error {
	key := tokenKey(userID, platform)
	if _, ok := r.tokens[key]; !ok {
		return social.ErrTokenNotFound
	}
	delete(r.tokens, key)
	return nil
}

func (r *stubTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for key, t := range r.tokens {
		if t.IsExpired(now) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}

func testSocialConfig() config.SocialConfig {
	return config.SocialConfig{
		InstagramClientID:     "ig-client",
		InstagramClientSecret: "ig-secret",
		RedirectBaseURL:       "http://localhost:8080/api/v1/social/callback",
	}
}

func TestGetAuthURLBuildsProviderURL(t *testing.T) {
	svc := NewOAuthService(newStubTokenRepo(), testSocialConfig())

	resp, err := svc.GetAuthURL("Instagram", "state-123")
	require.NoError(t, err)

	assert.Equal(t, "instagram", resp.Platform)
	assert.Contains(t, resp.URL, "https://api.instagram.com/oauth/authorize?")
	assert.Contains(t, resp.URL, "client_id=ig-client")
	assert.Contains(t, resp.URL, "state=state-123")
	assert.Contains(t, resp.URL, "response_type=code")
}

func TestGetAuthURLRejectsUnknownPlatform(t *testing.T) {
	svc := NewOAuthService(newStubTokenRepo(), testSocialConfig())

	_, err := svc.GetAuthURL("myspace", "")
	assert.ErrorIs(t, err, social.ErrUnsupportedPlatform)
}

func TestGetAuthURLRejectsUnconfiguredPlatform(t *testing.T) {
	svc := NewOAuthService(newStubTokenRepo(), testSocialConfig())

	// LinkedIn credentials are not set in the test config.
	_, err := svc.GetAuthURL("linkedin", "")
	assert.ErrorIs(t, err, social.ErrPlatformNotConfigured)
}

func TestCleanupExpiredTokens(t *testing.T) {
	repo := newStubTokenRepo()
	userID := uuid.New()

	expired := social.NewUserToken(userID, "instagram", "old", "", time.Now().Add(-time.Hour))
	live := social.NewUserToken(userID, "youtube", "current", "", time.Now().Add(time.Hour))
	_, err := repo.Upsert(context.Background(), expired)
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), live)
	require.NoError(t, err)

	svc := NewOAuthService(repo, testSocialConfig())

	removed, err := svc.CleanupExpiredTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), removed)

	remaining, err := svc.ListConnections(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "youtube", remaining[0].Platform)
}
