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

type emissionRepo struct {
	db *sqlx.DB
}

// NewEmissionRepo creates a new PostgreSQL-backed EmissionRepository.
func NewEmissionRepo(db *sqlx.DB) port.EmissionRepository {
	return &emissionRepo{db: db}
}

// buildEmissionWhere constructs the WHERE clause shared by every emission query.
// Dates are compared on calendar days so both bounds are inclusive.
func buildEmissionWhere(q domain.EmissionQuery) (clause string, args []interface{}) {
	args = []interface{}{q.OrganizationID, q.Start, q.End}
	clause = "WHERE er.organization_id = $1 AND er.date >= $2::date AND er.date <= $3::date"
	argN := 4

	if q.SiteID != nil {
		clause += fmt.Sprintf(" AND er.site_id = $%d", argN)
		args = append(args, *q.SiteID)
		argN++
	}
	if q.Scope != nil {
		clause += fmt.Sprintf(" AND er.scope = $%d", argN)
		args = append(args, *q.Scope)
		argN++ //nolint:ineffassign // kept for symmetry with the clauses above
	}
	return clause, args
}

func (r *emissionRepo) Create(ctx context.Context, rec *domain.EmissionRecord) error {
	rec.ID = uuid.New()
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO emission_records (id, organization_id, site_id, category_id, scope, date,
			source_name, quantity, unit, factor_value, factor_source, co2e_kg, scope_2_method,
			is_estimated, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.OrganizationID, rec.SiteID, rec.CategoryID, rec.Scope, rec.Date,
		rec.SourceName, rec.Quantity, rec.Unit, rec.FactorValue, rec.FactorSource, rec.CO2eKg,
		rec.Scope2Method, rec.IsEstimated, rec.CreatedBy, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("emissionRepo.Create: %w", err)
	}
	return nil
}

func (r *emissionRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error) {
	var rec domain.EmissionRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM emission_records WHERE id = $1 AND organization_id = $2", id, organizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("emissionRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *emissionRepo) List(ctx context.Context, q domain.EmissionQuery, offset, limit int) ([]domain.EmissionRecord, int, error) {
	where, args := buildEmissionWhere(q)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM emission_records er "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("emissionRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT er.* FROM emission_records er %s ORDER BY er.date DESC, er.created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var records []domain.EmissionRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("emissionRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *emissionRepo) Update(ctx context.Context, rec *domain.EmissionRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	query := `UPDATE emission_records SET site_id = $1, category_id = $2, scope = $3, date = $4,
			source_name = $5, quantity = $6, unit = $7, factor_value = $8, factor_source = $9,
			co2e_kg = $10, scope_2_method = $11, is_estimated = $12, updated_at = $13
		WHERE id = $14 AND organization_id = $15`

	result, err := r.db.ExecContext(ctx, query,
		rec.SiteID, rec.CategoryID, rec.Scope, rec.Date, rec.SourceName, rec.Quantity, rec.Unit,
		rec.FactorValue, rec.FactorSource, rec.CO2eKg, rec.Scope2Method, rec.IsEstimated,
		rec.UpdatedAt, rec.ID, rec.OrganizationID)
	if err != nil {
		return fmt.Errorf("emissionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *emissionRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM emission_records WHERE id = $1 AND organization_id = $2", id, organizationID)
	if err != nil {
		return fmt.Errorf("emissionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *emissionRepo) Total(ctx context.Context, q domain.EmissionQuery) (float64, error) {
	where, args := buildEmissionWhere(q)

	var total float64
	err := r.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(er.co2e_kg), 0) FROM emission_records er "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("emissionRepo.Total: %w", err)
	}
	return total, nil
}

func (r *emissionRepo) TotalsByScope(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeTotal, error) {
	where, args := buildEmissionWhere(q)

	query := fmt.Sprintf(`SELECT er.scope, COALESCE(SUM(er.co2e_kg), 0) AS total_kg, COUNT(*) AS record_count
		FROM emission_records er
		%s
		GROUP BY er.scope
		ORDER BY er.scope`, where)

	var rows []domain.ScopeTotal
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("emissionRepo.TotalsByScope: %w", err)
	}
	return rows, nil
}

func (r *emissionRepo) TotalsByCategory(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryTotal, error) {
	where, args := buildEmissionWhere(q)

	query := fmt.Sprintf(`SELECT c.id AS category_id, c.code, c.name, c.scope, c.ghg_category,
			COALESCE(SUM(er.co2e_kg), 0) AS total_kg, COUNT(*) AS record_count
		FROM emission_records er
		JOIN categories c ON c.id = er.category_id
		%s
		GROUP BY c.id, c.code, c.name, c.scope, c.ghg_category
		ORDER BY total_kg DESC`, where)

	var rows []domain.CategoryTotal
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("emissionRepo.TotalsByCategory: %w", err)
	}
	return rows, nil
}

func (r *emissionRepo) TotalsByMonth(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthTotal, error) {
	where, args := buildEmissionWhere(q)

	query := fmt.Sprintf(`SELECT date_trunc('month', er.date) AS month, er.scope,
			COALESCE(SUM(er.co2e_kg), 0) AS total_kg
		FROM emission_records er
		%s
		GROUP BY 1, 2
		ORDER BY 1, 2`, where)

	var rows []domain.MonthTotal
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("emissionRepo.TotalsByMonth: %w", err)
	}
	return rows, nil
}

func (r *emissionRepo) TotalsBySite(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteTotal, error) {
	where, args := buildEmissionWhere(q)

	query := fmt.Sprintf(`SELECT s.id AS site_id, s.name, s.city, COALESCE(SUM(er.co2e_kg), 0) AS total_kg
		FROM emission_records er
		JOIN sites s ON s.id = er.site_id
		%s
		GROUP BY s.id, s.name, s.city
		ORDER BY total_kg DESC`, where)

	var rows []domain.SiteTotal
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("emissionRepo.TotalsBySite: %w", err)
	}
	return rows, nil
}

func (r *emissionRepo) ListDetailed(ctx context.Context, q domain.EmissionQuery) ([]domain.EmissionDetail, error) {
	where, args := buildEmissionWhere(q)

	query := fmt.Sprintf(`SELECT er.id, er.scope, er.date, er.source_name, er.quantity, er.unit,
			er.factor_value, er.co2e_kg, er.scope_2_method, er.is_estimated,
			c.code AS category_code, c.name AS category_name, c.ghg_category
		FROM emission_records er
		JOIN categories c ON c.id = er.category_id
		%s
		ORDER BY c.code, er.date, er.id`, where)

	var rows []domain.EmissionDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("emissionRepo.ListDetailed: %w", err)
	}
	return rows, nil
}
