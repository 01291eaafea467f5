package job

import (
	"context"

	"github.com/hibiken/asynq"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/shared"
	"trustboard-backend/internal/shared/utils"
	"trustboard-backend/pkg/logger"
)

// RefreshStaleHandler re-fetches platform metrics for profiles past the
// freshness window.
type RefreshStaleHandler struct {
	service influencer.Service
}

func NewRefreshStaleHandler(service influencer.Service) *RefreshStaleHandler {
	return &RefreshStaleHandler{service: service}
}

func (h *RefreshStaleHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.RefreshStaleProfilesPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	refreshed, err := h.service.RefreshStaleProfiles(ctx, payload.Limit)
	if err != nil {
		return err
	}

	logger.Info("stale profile refresh finished", map[string]interface{}{
		"refreshed": refreshed,
		"limit":     payload.Limit,
	})
	return nil
}
