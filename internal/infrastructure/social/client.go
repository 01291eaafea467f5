package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RawProfile is the platform-agnostic shape of a fetched social profile.
// Field values come straight from the platform; callers own validation.
type RawProfile struct {
	Username         string    `json:"username"`
	Platform         string    `json:"platform"`
	FollowerCount    int64     `json:"follower_count"`
	ContentCount     int64     `json:"content_count"`
	Verified         bool      `json:"verified"`
	AccountCreatedAt time.Time `json:"account_created_at"`
}

// ProfileFetcher pulls public profile metrics from a social platform.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, platform, username string) (*RawProfile, error)
}

// httpProfileFetcher talks to the platform proxy service. Each platform's
// metrics endpoint is normalized by the proxy into the RawProfile shape.
type httpProfileFetcher struct {
	httpClient *http.Client
	baseURL    string
}

func NewHTTPProfileFetcher(baseURL string) ProfileFetcher {
	return &httpProfileFetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

func (f *httpProfileFetcher) FetchProfile(ctx context.Context, platform, username string) (*RawProfile, error) {
	endpoint := fmt.Sprintf("%s/profiles/%s/%s",
		f.baseURL, url.PathEscape(platform), url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s/%s: %w", platform, username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("profile %s/%s not found", platform, username)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch %s/%s: unexpected status %d", platform, username, resp.StatusCode)
	}

	var profile RawProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}

	return &profile, nil
}
