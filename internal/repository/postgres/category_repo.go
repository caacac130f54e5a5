package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"carbex/internal/domain"
	"carbex/internal/port"
)

type categoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo creates a new PostgreSQL-backed CategoryRepository.
func NewCategoryRepo(db *sqlx.DB) port.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var cat domain.Category
	err := r.db.GetContext(ctx, &cat, "SELECT * FROM categories WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}
	return &cat, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := r.db.SelectContext(ctx, &cats, "SELECT * FROM categories ORDER BY code"); err != nil {
		return nil, fmt.Errorf("categoryRepo.List: %w", err)
	}
	return cats, nil
}

// Upsert inserts the category or refreshes name, scope and GHG category when the code exists.
func (r *categoryRepo) Upsert(ctx context.Context, cat *domain.Category) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	cat.CreatedAt = time.Now().UTC()

	query := `INSERT INTO categories (id, code, name, scope, ghg_category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO UPDATE
			SET name = EXCLUDED.name, scope = EXCLUDED.scope, ghg_category = EXCLUDED.ghg_category
		RETURNING id`

	if err := r.db.GetContext(ctx, &cat.ID, query,
		cat.ID, cat.Code, cat.Name, cat.Scope, cat.GHGCategory, cat.CreatedAt); err != nil {
		return fmt.Errorf("categoryRepo.Upsert: %w", err)
	}
	return nil
}
