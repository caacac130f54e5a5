package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbex/internal/csvexport"
	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
)

const (
	emissionDefaultPageSize = 50
	emissionMaxPageSize     = 500
	co2eDecimals            = 4
)

// EmissionInput is the writable part of an emission record.
type EmissionInput struct {
	SiteID       *uuid.UUID           `json:"site_id"`
	CategoryID   uuid.UUID            `json:"category_id"`
	Scope        int                  `json:"scope" validate:"required,min=1,max=3"`
	Date         time.Time            `json:"date" validate:"required"`
	SourceName   string               `json:"source_name" validate:"required,max=255"`
	Quantity     float64              `json:"quantity" validate:"gte=0"`
	Unit         string               `json:"unit" validate:"required,max=32"`
	FactorValue  float64              `json:"factor_value" validate:"gte=0"`
	FactorSource *string              `json:"factor_source" validate:"omitempty,max=255"`
	Scope2Method *domain.Scope2Method `json:"scope_2_method" validate:"omitempty,oneof=location_based market_based"`
	IsEstimated  bool                 `json:"is_estimated"`
}

// EmissionService manages emission records. Every write drops the cached
// dashboards of the organization.
type EmissionService interface {
	Create(ctx context.Context, organizationID, userID uuid.UUID, in EmissionInput) (*domain.EmissionRecord, error)
	Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error)
	List(ctx context.Context, q domain.EmissionQuery, page, pageSize int) ([]domain.EmissionRecord, int, error)
	Update(ctx context.Context, organizationID, id uuid.UUID, in EmissionInput) (*domain.EmissionRecord, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	// Export writes every record of the window as semicolon separated CSV.
	Export(ctx context.Context, q domain.EmissionQuery, w io.Writer) error
}

type emissionService struct {
	repo         port.EmissionRepository
	categoryRepo port.CategoryRepository
	siteRepo     port.SiteRepository
	dashboard    DashboardService
	logger       *zap.Logger
}

// NewEmissionService creates a new EmissionService.
func NewEmissionService(repo port.EmissionRepository, categoryRepo port.CategoryRepository, siteRepo port.SiteRepository, dashboard DashboardService, logger *zap.Logger) EmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &emissionService{
		repo:         repo,
		categoryRepo: categoryRepo,
		siteRepo:     siteRepo,
		dashboard:    dashboard,
		logger:       logger,
	}
}

// check validates in against the taxonomy and the organization's sites.
func (s *emissionService) check(ctx context.Context, organizationID uuid.UUID, in *EmissionInput) error {
	in.SourceName = strings.TrimSpace(in.SourceName)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := validateInput(in); err != nil {
		return err
	}
	if in.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: CategoryID: required", domain.ErrValidation)
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if category.Scope != in.Scope {
		return domain.ErrCategoryScopeInvalid
	}
	if in.Scope != 2 {
		in.Scope2Method = nil
	}

	if in.SiteID != nil {
		if _, err := s.siteRepo.GetByID(ctx, organizationID, *in.SiteID); err != nil {
			return fmt.Errorf("site: %w", err)
		}
	}
	return nil
}

func apply(rec *domain.EmissionRecord, in EmissionInput) {
	rec.SiteID = in.SiteID
	rec.CategoryID = in.CategoryID
	rec.Scope = in.Scope
	rec.Date = truncateDay(in.Date)
	rec.SourceName = in.SourceName
	rec.Quantity = in.Quantity
	rec.Unit = in.Unit
	rec.FactorValue = in.FactorValue
	rec.FactorSource = in.FactorSource
	rec.CO2eKg = locale.Multiply(in.Quantity, in.FactorValue, co2eDecimals)
	rec.Scope2Method = in.Scope2Method
	rec.IsEstimated = in.IsEstimated
}

func (s *emissionService) invalidate(ctx context.Context, organizationID uuid.UUID) {
	if err := s.dashboard.Invalidate(ctx, organizationID); err != nil {
		s.logger.Warn("emissionService: dashboard invalidation failed",
			zap.String("organization_id", organizationID.String()), zap.Error(err))
	}
}

func (s *emissionService) Create(ctx context.Context, organizationID, userID uuid.UUID, in EmissionInput) (*domain.EmissionRecord, error) {
	if err := s.check(ctx, organizationID, &in); err != nil {
		return nil, fmt.Errorf("emissionService.Create: %w", err)
	}
	rec := &domain.EmissionRecord{OrganizationID: organizationID, CreatedBy: userID}
	apply(rec, in)
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("emissionService.Create: %w", err)
	}
	s.invalidate(ctx, organizationID)
	return rec, nil
}

func (s *emissionService) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error) {
	rec, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, fmt.Errorf("emissionService.Get: %w", err)
	}
	return rec, nil
}

func (s *emissionService) List(ctx context.Context, q domain.EmissionQuery, page, pageSize int) ([]domain.EmissionRecord, int, error) {
	if q.Start.IsZero() || q.End.IsZero() {
		q.Start, q.End = YearPeriod(time.Now().Year())
	}
	q.Start, q.End = truncateDay(q.Start), truncateDay(q.End)
	if err := validatePeriod(q.Start, q.End); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = emissionDefaultPageSize
	}
	if pageSize > emissionMaxPageSize {
		pageSize = emissionMaxPageSize
	}
	records, total, err := s.repo.List(ctx, q, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("emissionService.List: %w", err)
	}
	return records, total, nil
}

func (s *emissionService) Update(ctx context.Context, organizationID, id uuid.UUID, in EmissionInput) (*domain.EmissionRecord, error) {
	rec, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, fmt.Errorf("emissionService.Update: %w", err)
	}
	if err := s.check(ctx, organizationID, &in); err != nil {
		return nil, fmt.Errorf("emissionService.Update: %w", err)
	}
	apply(rec, in)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("emissionService.Update: %w", err)
	}
	s.invalidate(ctx, organizationID)
	return rec, nil
}

func (s *emissionService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		return fmt.Errorf("emissionService.Delete: %w", err)
	}
	s.invalidate(ctx, organizationID)
	return nil
}

func (s *emissionService) Export(ctx context.Context, q domain.EmissionQuery, w io.Writer) error {
	if q.Start.IsZero() || q.End.IsZero() {
		q.Start, q.End = YearPeriod(time.Now().Year())
	}
	q.Start, q.End = truncateDay(q.Start), truncateDay(q.End)
	if err := validatePeriod(q.Start, q.End); err != nil {
		return err
	}
	records, err := s.repo.ListDetailed(ctx, q)
	if err != nil {
		return fmt.Errorf("emissionService.Export: %w", err)
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("emissionService.Export: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("emissionService.Export: %w", err)
	}
	if err := cw.WriteRecords(records); err != nil {
		return fmt.Errorf("emissionService.Export: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("emissionService.Export: %w", err)
	}
	return nil
}
