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

type organizationRepo struct {
	db *sqlx.DB
}

// NewOrganizationRepo creates a new PostgreSQL-backed OrganizationRepository.
func NewOrganizationRepo(db *sqlx.DB) port.OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.GetContext(ctx, &org, "SELECT * FROM organizations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("organizationRepo.GetByID: %w", err)
	}
	return &org, nil
}
