package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"trustboard-backend/internal/shared"
	"trustboard-backend/pkg/logger"
)

// Client enqueues background tasks. It satisfies the domain-side notifier
// and report-queue interfaces so the domains never import asynq directly.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueProcessReport hands a freshly created report to the worker.
// High queue: the dashboard polls for completion.
func (c *Client) EnqueueProcessReport(ctx context.Context, reportID, userID uuid.UUID) error {
	payload, err := json.Marshal(shared.ProcessReportPayload{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		return fmt.Errorf("marshal process report payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeProcessReport, payload)

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue process report: %w", err)
	}

	logger.Info("enqueued report processing task", map[string]interface{}{
		"task_id":   info.ID,
		"report_id": reportID.String(),
	})
	return nil
}

// NotifyClaimStatusChange emits a status alert task. Called on every claim
// transition, including re-verification to the same status.
func (c *Client) NotifyClaimStatusChange(ctx context.Context, claimID uuid.UUID, newStatus string) error {
	payload, err := json.Marshal(shared.ClaimStatusAlertPayload{
		Type:      "CLAIM_UPDATE",
		ClaimID:   claimID,
		NewStatus: newStatus,
	})
	if err != nil {
		return fmt.Errorf("marshal claim alert payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeClaimStatusAlert, payload)

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(1*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue claim alert: %w", err)
	}
	return nil
}
