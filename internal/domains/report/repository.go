package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for reports.
type Repository interface {
	Create(ctx context.Context, report *Report) (*Report, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)

	// ListByUser returns the user's reports, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter *ListFilter) ([]Report, int64, error)

	Update(ctx context.Context, report *Report) (*Report, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// Queue hands a created report to the async worker. The queue client
// implements this so the domain stays free of asynq imports.
type Queue interface {
	EnqueueProcessReport(ctx context.Context, reportID, userID uuid.UUID) error
}

// ArtifactStore persists export artifacts. Uploads are best-effort: the
// export is still returned to the caller when the store is down.
type ArtifactStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}
