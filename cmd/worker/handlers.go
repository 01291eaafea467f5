package main

import (
	"github.com/hibiken/asynq"

	influencerJob "trustboard-backend/internal/domains/influencer/job"
	reportJob "trustboard-backend/internal/domains/report/job"
	socialJob "trustboard-backend/internal/domains/social/job"
	"trustboard-backend/internal/infrastructure/email"
	claimAlertJob "trustboard-backend/internal/infrastructure/email/job"
	"trustboard-backend/internal/shared"
	"trustboard-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	processReport *reportJob.ProcessReportHandler
	claimAlert    *claimAlertJob.ClaimAlertHandler
	cleanupTokens *socialJob.CleanupTokensHandler
	refreshStale  *influencerJob.RefreshStaleHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	return &HandlerRegistry{
		processReport: reportJob.NewProcessReportHandler(c.ReportService),
		claimAlert: claimAlertJob.NewClaimAlertHandler(
			c.ClaimRepo,
			c.InfluencerRepo,
			emailSvc,
			cfg.AlertRecipients,
		),
		cleanupTokens: socialJob.NewCleanupTokensHandler(c.OAuthService),
		refreshStale:  influencerJob.NewRefreshStaleHandler(c.InfluencerService),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessReport, h.processReport.ProcessTask)
	mux.HandleFunc(shared.TypeClaimStatusAlert, h.claimAlert.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupExpiredTokens, h.cleanupTokens.ProcessTask)
	mux.HandleFunc(shared.TypeRefreshStaleProfiles, h.refreshStale.ProcessTask)
}
