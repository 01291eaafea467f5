package job

import (
	"context"

	"github.com/hibiken/asynq"

	"trustboard-backend/internal/domains/social"
	"trustboard-backend/internal/shared"
	"trustboard-backend/internal/shared/utils"
	"trustboard-backend/pkg/logger"
)

// CleanupTokensHandler purges expired OAuth tokens on a schedule.
type CleanupTokensHandler struct {
	service social.OAuthService
}

func NewCleanupTokensHandler(service social.OAuthService) *CleanupTokensHandler {
	return &CleanupTokensHandler{service: service}
}

func (h *CleanupTokensHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.CleanupExpiredTokensPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	removed, err := h.service.CleanupExpiredTokens(ctx)
	if err != nil {
		return err
	}

	logger.Info("expired token cleanup finished", map[string]interface{}{
		"removed": removed,
	})
	return nil
}
