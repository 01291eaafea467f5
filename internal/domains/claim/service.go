package claim

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for health claims.
type Service interface {
	// Create stores a new claim, derives its status from any attached
	// studies and captures the influencer's current trust score.
	Create(ctx context.Context, req *CreateClaimReq) (*ClaimResp, error)

	GetByID(ctx context.Context, id uuid.UUID) (*ClaimResp, error)

	List(ctx context.Context, filter *ListFilter) (*ClaimListResp, error)

	Update(ctx context.Context, id uuid.UUID, req *UpdateClaimReq) (*ClaimResp, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// AddStudy attaches a study and re-derives the verification status.
	AddStudy(ctx context.Context, id uuid.UUID, req *StudyReq) (*ClaimResp, error)

	// Verify re-derives the status from the claim's studies and emits a
	// status alert. Emission happens on every verification, even when the
	// derived status equals the current one.
	Verify(ctx context.Context, id uuid.UUID) (*ClaimResp, error)
}
