package port

import (
	"context"

	"carbex/internal/domain"
)

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendReportReady(ctx context.Context, toEmail string, report *domain.Report) error
	SendReportFailed(ctx context.Context, toEmail string, report *domain.Report) error
}
