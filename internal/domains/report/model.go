package report

import (
	"time"

	"github.com/google/uuid"
)

// Report lifecycle statuses. A report is created pending, moves to
// processing when a worker picks it up, and ends completed or error.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Report types. Most have a dedicated generator; monthly and unknown types
// fall back to the generic generator rather than failing.
const (
	TypeInfluencer = "influencer"
	TypeMonthly    = "monthly"
	TypeCategory   = "category"
	TypeEngagement = "engagement"
	TypeAudience   = "audience"
	TypeContent    = "content"
)

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Report is an async analytics job. Data holds the generator output as a
// JSON document once the report completes.
type Report struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type"`

	// Parameters narrow what the generator includes, e.g. a platform or an
	// influencer ID. Stored as JSONB.
	Parameters map[string]interface{} `json:"parameters"`

	Status       string                 `json:"status"`
	Data         map[string]interface{} `json:"data,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewReport(userID uuid.UUID, reportType string, parameters map[string]interface{}) *Report {
	if parameters == nil {
		parameters = map[string]interface{}{}
	}
	now := time.Now()
	return &Report{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       reportType,
		Parameters: parameters,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MarkProcessing transitions the report to the processing state.
func (r *Report) MarkProcessing() {
	r.Status = StatusProcessing
	r.UpdatedAt = time.Now()
}

// MarkCompleted stores the generator output and stamps completion.
func (r *Report) MarkCompleted(data map[string]interface{}) {
	now := time.Now()
	r.Status = StatusCompleted
	r.Data = data
	r.ErrorMessage = ""
	r.UpdatedAt = now
	r.CompletedAt = &now
}

// MarkFailed records the failure; the report stays pollable.
func (r *Report) MarkFailed(message string) {
	r.Status = StatusError
	r.ErrorMessage = message
	r.UpdatedAt = time.Now()
}

// IsExportable reports whether export artifacts can be produced.
func (r *Report) IsExportable() bool {
	return r.Status == StatusCompleted
}

// ValidFormat checks an export format string.
func ValidFormat(format string) bool {
	switch format {
	case FormatPDF, FormatCSV, FormatXLSX:
		return true
	}
	return false
}
