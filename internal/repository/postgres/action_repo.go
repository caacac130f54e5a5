package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carbex/internal/domain"
	"carbex/internal/port"
)

type actionRepo struct {
	db *sqlx.DB
}

// NewActionRepo creates a new PostgreSQL-backed ActionRepository.
func NewActionRepo(db *sqlx.DB) port.ActionRepository {
	return &actionRepo{db: db}
}

func (r *actionRepo) ListRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error) {
	var actions []domain.Action
	err := r.db.SelectContext(ctx, &actions,
		"SELECT * FROM actions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2",
		organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("actionRepo.ListRecent: %w", err)
	}
	return actions, nil
}

func (r *actionRepo) ListOpenByReduction(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error) {
	var actions []domain.Action
	err := r.db.SelectContext(ctx, &actions,
		`SELECT * FROM actions
		WHERE organization_id = $1 AND status <> $2
		ORDER BY co2_reduction_percent DESC NULLS LAST, created_at DESC
		LIMIT $3`,
		organizationID, domain.ActionStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("actionRepo.ListOpenByReduction: %w", err)
	}
	return actions, nil
}
