package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carbex/internal/domain"
	"carbex/internal/port"
)

type siteRepo struct {
	db *sqlx.DB
}

// NewSiteRepo creates a new PostgreSQL-backed SiteRepository.
func NewSiteRepo(db *sqlx.DB) port.SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) GetByID(ctx context.Context, organizationID, siteID uuid.UUID) (*domain.Site, error) {
	var site domain.Site
	err := r.db.GetContext(ctx, &site,
		"SELECT * FROM sites WHERE id = $1 AND organization_id = $2", siteID, organizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("siteRepo.GetByID: %w", err)
	}
	return &site, nil
}

func (r *siteRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Site, error) {
	var sites []domain.Site
	err := r.db.SelectContext(ctx, &sites,
		"SELECT * FROM sites WHERE organization_id = $1 ORDER BY name", organizationID)
	if err != nil {
		return nil, fmt.Errorf("siteRepo.ListByOrganization: %w", err)
	}
	return sites, nil
}
