package job

import (
	"context"

	"github.com/hibiken/asynq"

	"trustboard-backend/internal/domains/report"
	"trustboard-backend/internal/shared"
	"trustboard-backend/internal/shared/utils"
	"trustboard-backend/pkg/logger"
)

// ProcessReportHandler runs report generation in the worker.
type ProcessReportHandler struct {
	service report.Service
}

func NewProcessReportHandler(service report.Service) *ProcessReportHandler {
	return &ProcessReportHandler{service: service}
}

func (h *ProcessReportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ProcessReportPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	logger.Info("processing report", map[string]interface{}{
		"report_id": payload.ReportID.String(),
		"user_id":   payload.UserID.String(),
	})

	// Generation failures are recorded on the report itself; only
	// infrastructure errors propagate and trigger a retry.
	return h.service.Process(ctx, payload.ReportID)
}
