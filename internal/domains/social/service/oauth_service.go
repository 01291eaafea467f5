package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"trustboard-backend/internal/config"
	"trustboard-backend/internal/domains/social"
	"trustboard-backend/pkg/logger"
)

// provider describes one OAuth2 platform integration.
type provider struct {
	authURL  string
	tokenURL string
	scopes   string
}

var providers = map[string]provider{
	"instagram": {
		authURL:  "https://api.instagram.com/oauth/authorize",
		tokenURL: "https://api.instagram.com/oauth/access_token",
		scopes:   "user_profile,user_media",
	},
	"linkedin": {
		authURL:  "https://www.linkedin.com/oauth/v2/authorization",
		tokenURL: "https://www.linkedin.com/oauth/v2/accessToken",
		scopes:   "r_liteprofile r_emailaddress",
	},
	"youtube": {
		authURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		tokenURL: "https://oauth2.googleapis.com/token",
		scopes:   "https://www.googleapis.com/auth/youtube.readonly",
	},
}

type oauthService struct {
	repo       social.Repository
	cfg        config.SocialConfig
	httpClient *http.Client
}

func NewOAuthService(repo social.Repository, cfg config.SocialConfig) social.OAuthService {
	return &oauthService{
		repo:       repo,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *oauthService) credentials(platform string) (clientID, clientSecret string) {
	switch platform {
	case "instagram":
		return s.cfg.InstagramClientID, s.cfg.InstagramClientSecret
	case "linkedin":
		return s.cfg.LinkedInClientID, s.cfg.LinkedInClientSecret
	case "youtube":
		return s.cfg.YouTubeClientID, s.cfg.YouTubeClientSecret
	default:
		return "", ""
	}
}

func (s *oauthService) redirectURI(platform string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.RedirectBaseURL, "/"), platform)
}

func (s *oauthService) GetAuthURL(platform, state string) (*social.AuthURLResp, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))

	p, ok := providers[platform]
	if !ok {
		return nil, social.ErrUnsupportedPlatform
	}
	clientID, _ := s.credentials(platform)
	if clientID == "" {
		return nil, social.ErrPlatformNotConfigured
	}

	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", s.redirectURI(platform))
	q.Set("response_type", "code")
	q.Set("scope", p.scopes)
	if state != "" {
		q.Set("state", state)
	}

	return &social.AuthURLResp{
		Platform: platform,
		URL:      p.authURL + "?" + q.Encode(),
	}, nil
}

// tokenResponse is the common shape of OAuth2 token endpoint replies.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (s *oauthService) exchangeCode(ctx context.Context, platform, code string) (*tokenResponse, error) {
	p := providers[platform]
	clientID, clientSecret := s.credentials(platform)

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", s.redirectURI(platform))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", social.ErrOAuthExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned %d", social.ErrOAuthExchangeFailed, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", social.ErrOAuthExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", social.ErrOAuthExchangeFailed)
	}

	return &token, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, userID uuid.UUID, platform, code string) (*social.ConnectionResp, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))

	if _, ok := providers[platform]; !ok {
		return nil, social.ErrUnsupportedPlatform
	}
	if clientID, _ := s.credentials(platform); clientID == "" {
		return nil, social.ErrPlatformNotConfigured
	}

	token, err := s.exchangeCode(ctx, platform, code)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if token.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	stored, err := s.repo.Upsert(ctx, social.NewUserToken(userID, platform, token.AccessToken, token.RefreshToken, expiresAt))
	if err != nil {
		return nil, err
	}

	logger.Info("platform connected", map[string]interface{}{
		"user_id":  userID.String(),
		"platform": platform,
	})

	return social.ToConnectionResp(stored), nil
}

func (s *oauthService) ListConnections(ctx context.Context, userID uuid.UUID) ([]social.ConnectionResp, error) {
	tokens, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]social.ConnectionResp, 0, len(tokens))
	for idx := range tokens {
		out = append(out, *social.ToConnectionResp(&tokens[idx]))
	}
	return out, nil
}

func (s *oauthService) Disconnect(ctx context.Context, userID uuid.UUID, platform string) error {
	return s.repo.Delete(ctx, userID, strings.ToLower(strings.TrimSpace(platform)))
}

func (s *oauthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Info("expired tokens removed", map[string]interface{}{"count": removed})
	}
	return removed, nil
}
