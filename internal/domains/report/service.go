package report

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for reports.
type Service interface {
	// Create stores a pending report, enqueues its processing task and
	// returns the pollable handle immediately.
	Create(ctx context.Context, userID uuid.UUID, req *CreateReportReq) (*ReportResp, error)

	// GetByID returns the report if the caller owns it.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ReportResp, error)

	List(ctx context.Context, userID uuid.UUID, filter *ListFilter) (*ReportListResp, error)

	// Delete removes the report and its stored artifacts.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Export renders a completed report in the requested format.
	// Access checks run in order: existence, ownership, then format.
	Export(ctx context.Context, userID, id uuid.UUID, format string) (*ExportResult, error)

	// Process runs the generator for a report. Called by the worker.
	Process(ctx context.Context, reportID uuid.UUID) error
}
