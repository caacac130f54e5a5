package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
	"carbex/internal/taxonomy"
)

// ReportBuilder assembles the read-only ReportData consumed by exporters.
type ReportBuilder interface {
	Build(ctx context.Context, organizationID uuid.UUID, start, end time.Time, reportType domain.ReportType, siteID *uuid.UUID) (*domain.ReportData, error)
}

type reportBuilder struct {
	orgRepo   port.OrganizationRepository
	siteRepo  port.SiteRepository
	dashboard DashboardService
	now       func() time.Time
}

// NewReportBuilder creates a new ReportBuilder.
func NewReportBuilder(orgRepo port.OrganizationRepository, siteRepo port.SiteRepository, dashboard DashboardService) ReportBuilder {
	return &reportBuilder{
		orgRepo:   orgRepo,
		siteRepo:  siteRepo,
		dashboard: dashboard,
		now:       time.Now,
	}
}

func (b *reportBuilder) Build(ctx context.Context, organizationID uuid.UUID, start, end time.Time, reportType domain.ReportType, siteID *uuid.UUID) (*domain.ReportData, error) {
	if !domain.ValidReportTypes[reportType] {
		return nil, domain.ErrInvalidReportType
	}
	start, end = truncateDay(start), truncateDay(end)
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	org, err := b.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("reportBuilder.Build: organization: %w", err)
	}

	data := &domain.ReportData{
		Report: domain.ReportMeta{
			Type:        reportType,
			GeneratedAt: b.now().UTC(),
			Period: domain.PeriodInfo{
				Start: start,
				End:   end,
				Label: locale.PeriodLabel(start, end),
			},
		},
		Organization: domain.OrganizationInfo{
			ID:            org.ID,
			Name:          org.Name,
			Country:       org.Country,
			Sector:        deref(org.Sector),
			EmployeeCount: org.EmployeeCount,
		},
		Methodology: taxonomy.MethodologyFor(org.Country),
	}

	if siteID != nil {
		site, err := b.siteRepo.GetByID(ctx, organizationID, *siteID)
		if err != nil {
			return nil, fmt.Errorf("reportBuilder.Build: site: %w", err)
		}
		data.Site = &domain.SiteInfo{
			ID:      site.ID,
			Name:    site.Name,
			City:    deref(site.City),
			Country: site.Country,
		}
	}

	q := domain.EmissionQuery{OrganizationID: organizationID, SiteID: siteID, Start: start, End: end}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := b.dashboard.Summary(gctx, q)
		if err != nil {
			return err
		}
		data.Summary = *summary
		return nil
	})
	g.Go(func() error {
		cmp, err := b.dashboard.Comparison(gctx, q)
		if err != nil {
			return err
		}
		data.Comparison = *cmp
		return nil
	})
	g.Go(func() error {
		scopes, err := b.dashboard.ScopeBreakdown(gctx, q)
		data.ScopeBreakdown = scopes
		return err
	})
	g.Go(func() error {
		categories, err := b.dashboard.CategoryBreakdown(gctx, q)
		data.CategoryBreakdown = categories
		return err
	})
	g.Go(func() error {
		trend, err := b.dashboard.MonthlyTrend(gctx, q)
		data.MonthlyTrend = trend
		return err
	})
	if siteID == nil {
		g.Go(func() error {
			sites, err := b.dashboard.SiteComparison(gctx, q)
			data.Sites = sites
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reportBuilder.Build: %w", err)
	}
	return data, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
