package shared

import "github.com/google/uuid"

// Asynq task types
const (
	TypeProcessReport        = "report:process"
	TypeClaimStatusAlert     = "claim:status_alert"
	TypeCleanupExpiredTokens = "social:cleanup_expired_tokens"
	TypeRefreshStaleProfiles = "influencer:refresh_stale"
)

// Queue names, matching the worker's priority configuration.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// ProcessReportPayload triggers the async report generator.
// Lives here (not in the report domain) to avoid import cycles between the
// queue client and domain packages.
type ProcessReportPayload struct {
	ReportID uuid.UUID `json:"report_id"`
	UserID   uuid.UUID `json:"user_id"`
}

// ClaimStatusAlertPayload is the notification event emitted on every claim
// status transition.
type ClaimStatusAlertPayload struct {
	Type      string    `json:"type"` // always "CLAIM_UPDATE"
	ClaimID   uuid.UUID `json:"claimId"`
	NewStatus string    `json:"newStatus"`
}

// CleanupExpiredTokensPayload is empty; the job scans by expiry.
type CleanupExpiredTokensPayload struct{}

// RefreshStaleProfilesPayload bounds how many profiles one run touches.
type RefreshStaleProfilesPayload struct {
	Limit int `json:"limit"`
}
