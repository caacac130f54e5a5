package port

import (
	"context"

	"github.com/google/uuid"

	"carbex/internal/domain"
)

// ReportRepository defines the contract for generated report records.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Update(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]domain.Report, int, error)
	ListCompleted(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Report, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	// ClaimPending atomically moves up to limit pending reports to generating and returns them.
	ClaimPending(ctx context.Context, limit int) ([]domain.Report, error)
}
