package report

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateReportReq is the body of POST /v1/reports. Any type string is
// accepted; types without a dedicated generator use the generic one.
type CreateReportReq struct {
	Type       string                 `json:"type" binding:"required"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

func (r CreateReportReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type,
			validation.Required.Error("report type is required"),
			validation.Length(1, 100),
		),
	)
}

type ListFilter struct {
	Status string `json:"status,omitempty" form:"status"`
	Type   string `json:"type,omitempty" form:"type"`
	Limit  int    `json:"limit,omitempty" form:"limit"`
	Offset int    `json:"offset,omitempty" form:"offset"`
}

func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type ReportResp struct {
	ID           uuid.UUID              `json:"id"`
	Type         string                 `json:"type"`
	Parameters   map[string]interface{} `json:"parameters"`
	Status       string                 `json:"status"`
	Data         map[string]interface{} `json:"data,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

type ReportListResp struct {
	Items  []ReportResp `json:"items"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ExportResult is a generated artifact ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

func ToResp(r *Report) *ReportResp {
	return &ReportResp{
		ID:           r.ID,
		Type:         r.Type,
		Parameters:   r.Parameters,
		Status:       r.Status,
		Data:         r.Data,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CompletedAt:  r.CompletedAt,
	}
}
