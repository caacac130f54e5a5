package port

import (
	"context"

	"github.com/google/uuid"

	"carbex/internal/domain"
)

// EmissionRepository defines the contract for emission record persistence
// and the aggregate queries used by dashboards and reports.
type EmissionRepository interface {
	Create(ctx context.Context, record *domain.EmissionRecord) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error)
	List(ctx context.Context, q domain.EmissionQuery, offset, limit int) ([]domain.EmissionRecord, int, error)
	Update(ctx context.Context, record *domain.EmissionRecord) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error

	Total(ctx context.Context, q domain.EmissionQuery) (float64, error)
	TotalsByScope(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeTotal, error)
	TotalsByCategory(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryTotal, error)
	TotalsByMonth(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthTotal, error)
	TotalsBySite(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteTotal, error)
	ListDetailed(ctx context.Context, q domain.EmissionQuery) ([]domain.EmissionDetail, error)
}
