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

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *domain.Report) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	query := `INSERT INTO reports (id, organization_id, site_id, generated_by, notify_email, type, format,
			title, year, period_start, period_end, status, file_path, file_size, total_emissions_kg,
			error_message, generated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.OrganizationID, rep.SiteID, rep.GeneratedBy, rep.NotifyEmail, rep.Type, rep.Format,
		rep.Title, rep.Year, rep.PeriodStart, rep.PeriodEnd, rep.Status, rep.FilePath, rep.FileSize,
		rep.TotalEmissionsKg, rep.ErrorMessage, rep.GeneratedAt, rep.CreatedAt, rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) Update(ctx context.Context, rep *domain.Report) error {
	rep.UpdatedAt = time.Now().UTC()

	query := `UPDATE reports SET status = $1, file_path = $2, file_size = $3, total_emissions_kg = $4,
			error_message = $5, generated_at = $6, updated_at = $7
		WHERE id = $8 AND organization_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		rep.Status, rep.FilePath, rep.FileSize, rep.TotalEmissionsKg, rep.ErrorMessage,
		rep.GeneratedAt, rep.UpdatedAt, rep.ID, rep.OrganizationID)
	if err != nil {
		return fmt.Errorf("reportRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.GetContext(ctx, &rep,
		"SELECT * FROM reports WHERE id = $1 AND organization_id = $2", id, organizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &rep, nil
}

func (r *reportRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]domain.Report, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM reports WHERE organization_id = $1", organizationID)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByOrganization count: %w", err)
	}

	var reports []domain.Report
	err = r.db.SelectContext(ctx, &reports,
		"SELECT * FROM reports WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		organizationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ListByOrganization: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepo) ListCompleted(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports,
		`SELECT * FROM reports WHERE organization_id = $1 AND status = $2
		ORDER BY year DESC, created_at DESC LIMIT $3`,
		organizationID, domain.ReportStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ListCompleted: %w", err)
	}
	return reports, nil
}

func (r *reportRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM reports WHERE id = $1 AND organization_id = $2", id, organizationID)
	if err != nil {
		return fmt.Errorf("reportRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) ClaimPending(ctx context.Context, limit int) ([]domain.Report, error) {
	query := `UPDATE reports SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM reports
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var reports []domain.Report
	err := r.db.SelectContext(ctx, &reports, query,
		domain.ReportStatusGenerating, domain.ReportStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ClaimPending: %w", err)
	}
	return reports, nil
}
