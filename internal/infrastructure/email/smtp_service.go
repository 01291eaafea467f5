package email

import (
	"context"
	"fmt"
	"net/smtp"

	"trustboard-backend/pkg/logger"
)

type EmailService interface {
	SendClaimStatusAlert(ctx context.Context, data ClaimAlertData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendClaimStatusAlert(ctx context.Context, data ClaimAlertData) error {
	if len(data.Recipients) == 0 {
		logger.Debug("no alert recipients configured, skipping claim alert")
		return nil
	}

	subject := fmt.Sprintf("Claim status changed to %s", data.NewStatus)
	body := fmt.Sprintf(`A health claim changed verification status.

Influencer: %s
Claim: %s
Status: %s -> %s
Claim ID: %s`,
		data.InfluencerName, data.ClaimText, data.OldStatus, data.NewStatus, data.ClaimID)

	for _, to := range data.Recipients {
		msg := []byte(fmt.Sprintf(
			"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
			s.smtpFrom, to, subject, body))

		if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
			logger.Info("Failed to send claim alert email", map[string]interface{}{
				"error":     err.Error(),
				"to":        to,
				"smtp_addr": s.smtpAddr,
			})
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	return nil
}
