package claim

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for health claims.
type Repository interface {
	Create(ctx context.Context, claim *Claim) (*Claim, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Claim, error)

	// List returns a page of claims plus the unpaged total.
	List(ctx context.Context, filter *ListFilter) ([]Claim, int64, error)

	Update(ctx context.Context, claim *Claim) (*Claim, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier emits claim status change events. The queue client implements
// this so the domain stays free of asynq imports.
type Notifier interface {
	NotifyClaimStatusChange(ctx context.Context, claimID uuid.UUID, newStatus string) error
}
