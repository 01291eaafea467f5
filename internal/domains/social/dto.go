package social

import "time"

// AuthURLResp carries the provider authorization URL the dashboard redirects
// the user to.
type AuthURLResp struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ConnectionResp describes a stored platform connection. Token material is
// never exposed.
type ConnectionResp struct {
	Platform    string    `json:"platform"`
	ExpiresAt   time.Time `json:"expires_at"`
	Expired     bool      `json:"expired"`
	ConnectedAt time.Time `json:"connected_at"`
}

func ToConnectionResp(t *UserToken) *ConnectionResp {
	return &ConnectionResp{
		Platform:    t.Platform,
		ExpiresAt:   t.ExpiresAt,
		Expired:     t.IsExpired(time.Now()),
		ConnectedAt: t.CreatedAt,
	}
}
