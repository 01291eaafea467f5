package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/infrastructure/email"
	"trustboard-backend/internal/shared"
	"trustboard-backend/internal/shared/utils"
	"trustboard-backend/pkg/logger"
)

// ClaimAlertHandler delivers claim status change alerts over email.
type ClaimAlertHandler struct {
	claimRepo      claim.Repository
	influencerRepo influencer.Repository
	emailService   email.EmailService
	recipients     []string
}

func NewClaimAlertHandler(
	claimRepo claim.Repository,
	influencerRepo influencer.Repository,
	emailService email.EmailService,
	recipients []string,
) *ClaimAlertHandler {
	return &ClaimAlertHandler{
		claimRepo:      claimRepo,
		influencerRepo: influencerRepo,
		emailService:   emailService,
		recipients:     recipients,
	}
}

func (h *ClaimAlertHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ClaimStatusAlertPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	logger.Info("processing claim status alert", map[string]interface{}{
		"claim_id":   payload.ClaimID.String(),
		"new_status": payload.NewStatus,
	})

	c, err := h.claimRepo.GetByID(ctx, payload.ClaimID)
	if err != nil {
		// Claim may have been deleted after the transition. Nothing to alert on.
		logger.Warn("claim for alert not found, dropping task", map[string]interface{}{
			"claim_id": payload.ClaimID.String(),
		})
		return nil
	}

	influencerName := c.InfluencerID.String()
	if inf, err := h.influencerRepo.GetByID(ctx, c.InfluencerID); err == nil {
		influencerName = inf.Username
	}

	data := email.ClaimAlertData{
		ClaimID:        c.ID.String(),
		InfluencerName: influencerName,
		ClaimText:      c.Content,
		OldStatus:      "", // not carried in the event contract
		NewStatus:      payload.NewStatus,
		Recipients:     h.recipients,
	}

	if err := h.emailService.SendClaimStatusAlert(ctx, data); err != nil {
		return fmt.Errorf("send claim alert: %w", err)
	}

	return nil
}
