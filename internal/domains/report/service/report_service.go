package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/domains/report"
	"trustboard-backend/pkg/logger"
)

type reportService struct {
	repo           report.Repository
	influencerRepo influencer.Repository
	claimRepo      claim.Repository
	queue          report.Queue
	artifacts      report.ArtifactStore
}

func NewReportService(
	repo report.Repository,
	influencerRepo influencer.Repository,
	claimRepo claim.Repository,
	queue report.Queue,
	artifacts report.ArtifactStore,
) report.Service {
	return &reportService{
		repo:           repo,
		influencerRepo: influencerRepo,
		claimRepo:      claimRepo,
		queue:          queue,
		artifacts:      artifacts,
	}
}

func (s *reportService) Create(ctx context.Context, userID uuid.UUID, req *report.CreateReportReq) (*report.ReportResp, error) {
	entity := report.NewReport(userID, req.Type, req.Parameters)

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	if err := s.queue.EnqueueProcessReport(ctx, created.ID, userID); err != nil {
		// The report stays pending and pollable; surface the failure so the
		// client can retry instead of polling forever.
		created.MarkFailed("failed to schedule report processing")
		if _, uerr := s.repo.Update(ctx, created); uerr != nil {
			logger.Error("failed to mark unscheduled report", uerr)
		}
		return nil, fmt.Errorf("enqueue report: %w", err)
	}

	return report.ToResp(created), nil
}

// getOwned fetches the report and enforces ownership. Existence is checked
// before ownership so probing callers get 404 for missing reports and 403
// only for real ones.
func (s *reportService) getOwned(ctx context.Context, userID, id uuid.UUID) (*report.Report, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.UserID != userID {
		return nil, report.ErrNotOwner
	}
	return entity, nil
}

func (s *reportService) GetByID(ctx context.Context, userID, id uuid.UUID) (*report.ReportResp, error) {
	entity, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return report.ToResp(entity), nil
}

func (s *reportService) List(ctx context.Context, userID uuid.UUID, filter *report.ListFilter) (*report.ReportListResp, error) {
	filter.Normalize()

	items, total, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	resp := &report.ReportListResp{
		Items:  make([]report.ReportResp, 0, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for idx := range items {
		resp.Items = append(resp.Items, *report.ToResp(&items[idx]))
	}
	return resp, nil
}

func (s *reportService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Artifact cleanup is best-effort; orphans are harmless.
	if err := s.artifacts.DeleteByPrefix(ctx, fmt.Sprintf("reports/%s/", id)); err != nil {
		logger.Error("failed to delete report artifacts", err)
	}
	return nil
}

func (s *reportService) Export(ctx context.Context, userID, id uuid.UUID, format string) (*report.ExportResult, error) {
	// Check order matters: existence (404), ownership (403), then
	// format and state (400).
	entity, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !report.ValidFormat(format) {
		return nil, report.ErrInvalidFormat
	}
	if !entity.IsExportable() {
		return nil, report.ErrNotCompleted
	}

	result, err := renderExport(entity, format)
	if err != nil {
		return nil, err
	}

	// Keep a copy in object storage; failure does not block the download.
	key := fmt.Sprintf("reports/%s/%s", entity.ID, result.Filename)
	if _, err := s.artifacts.Upload(ctx, key, result.Content, result.ContentType); err != nil {
		logger.Error("failed to store report artifact", err)
	}

	return result, nil
}

func (s *reportService) Process(ctx context.Context, reportID uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}

	// The queue may redeliver a task after a worker crash or timeout.
	// Completed and errored reports are immutable, so only a pending
	// report may be picked up; anything else acks the task unchanged.
	if entity.Status != report.StatusPending {
		logger.Info("skipping report not in pending state", map[string]interface{}{
			"report_id": entity.ID.String(),
			"status":    entity.Status,
		})
		return nil
	}

	entity.MarkProcessing()
	if entity, err = s.repo.Update(ctx, entity); err != nil {
		return err
	}

	data, genErr := s.generatorFor(entity.Type)(ctx, entity.Parameters)
	if genErr != nil {
		entity.MarkFailed(genErr.Error())
		if _, err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("mark report failed: %w", err)
		}
		// The failure is recorded on the report; do not retry the task.
		logger.Error("report generation failed", genErr)
		return nil
	}

	entity.MarkCompleted(data)
	if _, err := s.repo.Update(ctx, entity); err != nil {
		return fmt.Errorf("mark report completed: %w", err)
	}

	logger.Info("report completed", map[string]interface{}{
		"report_id": entity.ID.String(),
		"type":      entity.Type,
	})
	return nil
}
