package port

import (
	"context"

	"github.com/google/uuid"

	"carbex/internal/domain"
)

// OrganizationRepository defines the contract for organization lookups.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
}

// SiteRepository defines the contract for site lookups.
// All query methods include organizationID to enforce tenant isolation at the data layer.
type SiteRepository interface {
	GetByID(ctx context.Context, organizationID, siteID uuid.UUID) (*domain.Site, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Site, error)
}

// CategoryRepository defines the contract for the emission taxonomy.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, category *domain.Category) error
}

// ActionRepository defines the contract for reduction action lookups.
type ActionRepository interface {
	// ListRecent returns the most recently created actions, newest first.
	ListRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error)
	// ListOpenByReduction returns non-completed actions ordered by estimated reduction, highest first.
	ListOpenByReduction(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error)
}

// SettingRepository defines the contract for key/value settings persistence.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}
