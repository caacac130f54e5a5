package noop

import (
	"context"

	"go.uber.org/zap"

	"carbex/internal/domain"
	"carbex/internal/email/ses"
	"carbex/internal/port"
)

type noopSender struct {
	frontendURL string
	log         *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs the notification instead of sending it.
func NewNoopSender(frontendURL string, log *zap.Logger) port.EmailSender {
	return &noopSender{frontendURL: frontendURL, log: log}
}

func (s *noopSender) SendReportReady(_ context.Context, toEmail string, report *domain.Report) error {
	s.log.Info("noop email: report ready",
		zap.String("to", toEmail),
		zap.String("report_id", report.ID.String()),
		zap.String("url", ses.ReportURL(s.frontendURL, report)))
	return nil
}

func (s *noopSender) SendReportFailed(_ context.Context, toEmail string, report *domain.Report) error {
	s.log.Info("noop email: report failed",
		zap.String("to", toEmail),
		zap.String("report_id", report.ID.String()))
	return nil
}
