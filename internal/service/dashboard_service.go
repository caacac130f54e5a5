package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbex/internal/cache"
	"carbex/internal/domain"
	"carbex/internal/locale"
	"carbex/internal/port"
)

const dashboardTopCategories = 5

var scopeColors = map[int]string{
	1: "#10B981",
	2: "#3B82F6",
	3: "#8B5CF6",
}

// DashboardService computes the emission KPIs and breakdowns shown on the
// dashboard and reused by report builds. Empty windows yield zeros.
type DashboardService interface {
	Summary(ctx context.Context, q domain.EmissionQuery) (*domain.Summary, error)
	Comparison(ctx context.Context, q domain.EmissionQuery) (*domain.Comparison, error)
	Kpis(ctx context.Context, q domain.EmissionQuery) (*domain.Kpis, error)
	ScopeBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeBreakdownEntry, error)
	CategoryBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryBreakdownEntry, error)
	TopCategories(ctx context.Context, q domain.EmissionQuery, limit int) ([]domain.CategoryBreakdownEntry, error)
	MonthlyTrend(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthlyTrendPoint, error)
	SiteComparison(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteComparisonEntry, error)
	Dashboard(ctx context.Context, q domain.EmissionQuery) (*domain.DashboardData, error)
	// Invalidate drops every cached dashboard of the organization.
	Invalidate(ctx context.Context, organizationID uuid.UUID) error
}

type dashboardService struct {
	emissionRepo port.EmissionRepository
	cache        *cache.Cache
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService. A nil cache disables caching.
func NewDashboardService(emissionRepo port.EmissionRepository, c *cache.Cache, logger *zap.Logger) DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dashboardService{emissionRepo: emissionRepo, cache: c, logger: logger}
}

func dashboardNamespace(organizationID uuid.UUID) string {
	return "dashboard:" + organizationID.String()
}

func (s *dashboardService) Summary(ctx context.Context, q domain.EmissionQuery) (*domain.Summary, error) {
	rows, err := s.emissionRepo.TotalsByScope(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.Summary: %w", err)
	}

	var kg [4]float64
	count := 0
	for _, r := range rows {
		if r.Scope < 1 || r.Scope > 3 {
			continue
		}
		kg[r.Scope] += r.TotalKg
		count += r.Count
	}
	total := kg[1] + kg[2] + kg[3]
	shares := locale.Shares(kg[1:], 1)

	amount := func(scope int) domain.ScopeAmount {
		return domain.ScopeAmount{
			Kg:      locale.Round(kg[scope], 2),
			Tonnes:  locale.Tonnes(kg[scope], 2),
			Percent: shares[scope-1],
		}
	}

	return &domain.Summary{
		TotalKg:     locale.Round(total, 2),
		TotalTonnes: locale.Tonnes(total, 2),
		Scope1:      amount(1),
		Scope2:      amount(2),
		Scope3:      amount(3),
		RecordCount: count,
	}, nil
}

func (s *dashboardService) Comparison(ctx context.Context, q domain.EmissionQuery) (*domain.Comparison, error) {
	prev := q
	prev.Start, prev.End = PreviousWindow(q.Start, q.End)

	current, err := s.emissionRepo.Total(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.Comparison: current: %w", err)
	}
	previous, err := s.emissionRepo.Total(ctx, prev)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.Comparison: previous: %w", err)
	}

	// A previous total of zero reports no change rather than unbounded growth.
	change := locale.Percent(current-previous, previous, 1)

	return &domain.Comparison{
		Current: domain.PeriodTotal{
			Start:       truncateDay(q.Start),
			End:         truncateDay(q.End),
			TotalKg:     locale.Round(current, 2),
			TotalTonnes: locale.Tonnes(current, 2),
		},
		Previous: domain.PeriodTotal{
			Start:       prev.Start,
			End:         prev.End,
			TotalKg:     locale.Round(previous, 2),
			TotalTonnes: locale.Tonnes(previous, 2),
		},
		ChangePercent: change,
		Direction:     direction(change),
	}, nil
}

func (s *dashboardService) Kpis(ctx context.Context, q domain.EmissionQuery) (*domain.Kpis, error) {
	summary, err := s.Summary(ctx, q)
	if err != nil {
		return nil, err
	}
	comparison, err := s.Comparison(ctx, q)
	if err != nil {
		return nil, err
	}
	return &domain.Kpis{Summary: *summary, Comparison: *comparison}, nil
}

func (s *dashboardService) ScopeBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeBreakdownEntry, error) {
	rows, err := s.emissionRepo.TotalsByScope(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.ScopeBreakdown: %w", err)
	}

	var kg [4]float64
	var counts [4]int
	for _, r := range rows {
		if r.Scope < 1 || r.Scope > 3 {
			continue
		}
		kg[r.Scope] += r.TotalKg
		counts[r.Scope] += r.Count
	}
	shares := locale.Shares(kg[1:], 1)

	out := make([]domain.ScopeBreakdownEntry, 0, 3)
	for scope := 1; scope <= 3; scope++ {
		out = append(out, domain.ScopeBreakdownEntry{
			Scope:   scope,
			Label:   fmt.Sprintf("Scope %d", scope),
			Kg:      locale.Round(kg[scope], 2),
			Tonnes:  locale.Tonnes(kg[scope], 2),
			Percent: shares[scope-1],
			Count:   counts[scope],
			Color:   scopeColors[scope],
		})
	}
	return out, nil
}

func (s *dashboardService) CategoryBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryBreakdownEntry, error) {
	rows, err := s.emissionRepo.TotalsByCategory(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.CategoryBreakdown: %w", err)
	}

	// Percent is relative to the category's scope and allocated per scope
	// so each scope's shares add up to 100.
	byScope := make(map[int][]int, 3)
	for i, r := range rows {
		byScope[r.Scope] = append(byScope[r.Scope], i)
	}
	percents := make([]float64, len(rows))
	for _, idx := range byScope {
		kg := make([]float64, len(idx))
		for k, i := range idx {
			kg[k] = rows[i].TotalKg
		}
		for k, p := range locale.Shares(kg, 1) {
			percents[idx[k]] = p
		}
	}

	out := make([]domain.CategoryBreakdownEntry, 0, len(rows))
	for i, r := range rows {
		out = append(out, domain.CategoryBreakdownEntry{
			CategoryID:      r.CategoryID,
			Name:            r.Name,
			Code:            r.Code,
			Scope:           r.Scope,
			GHGCategory:     r.GHGCategory,
			EmissionsKg:     locale.Round(r.TotalKg, 2),
			EmissionsTonnes: locale.Tonnes(r.TotalKg, 4),
			Percent:         percents[i],
			Count:           r.Count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmissionsKg > out[j].EmissionsKg })
	return out, nil
}

func (s *dashboardService) TopCategories(ctx context.Context, q domain.EmissionQuery, limit int) ([]domain.CategoryBreakdownEntry, error) {
	all, err := s.CategoryBreakdown(ctx, q)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *dashboardService) MonthlyTrend(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthlyTrendPoint, error) {
	rows, err := s.emissionRepo.TotalsByMonth(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.MonthlyTrend: %w", err)
	}

	type bucket [4]float64
	byMonth := make(map[string]*bucket)
	for _, r := range rows {
		if r.Scope < 1 || r.Scope > 3 {
			continue
		}
		k := r.Month.Format("2006-01")
		b, ok := byMonth[k]
		if !ok {
			b = &bucket{}
			byMonth[k] = b
		}
		b[r.Scope] += r.TotalKg
	}

	first := time.Date(q.Start.Year(), q.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(q.End.Year(), q.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []domain.MonthlyTrendPoint
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		p := domain.MonthlyTrendPoint{Month: m, Label: locale.MonthLabel(m)}
		if b, ok := byMonth[m.Format("2006-01")]; ok {
			p.Scope1 = locale.Tonnes(b[1], 2)
			p.Scope2 = locale.Tonnes(b[2], 2)
			p.Scope3 = locale.Tonnes(b[3], 2)
			p.Total = locale.Tonnes(b[1]+b[2]+b[3], 2)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *dashboardService) SiteComparison(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteComparisonEntry, error) {
	rows, err := s.emissionRepo.TotalsBySite(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dashboardService.SiteComparison: %w", err)
	}

	out := make([]domain.SiteComparisonEntry, 0, len(rows))
	for _, r := range rows {
		e := domain.SiteComparisonEntry{
			SiteID: r.SiteID,
			Name:   r.Name,
			Kg:     locale.Round(r.TotalKg, 2),
			Tonnes: locale.Tonnes(r.TotalKg, 2),
		}
		if r.City != nil {
			e.City = *r.City
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kg > out[j].Kg })
	return out, nil
}

func (s *dashboardService) Dashboard(ctx context.Context, q domain.EmissionQuery) (*domain.DashboardData, error) {
	if err := validatePeriod(q.Start, q.End); err != nil {
		return nil, err
	}

	parts := []string{q.Start.Format("20060102"), q.End.Format("20060102")}
	if q.SiteID != nil {
		parts = append(parts, q.SiteID.String())
	}
	key, err := s.cache.BuildKey(ctx, dashboardNamespace(q.OrganizationID), parts...)
	if err != nil {
		s.logger.Warn("dashboardService.Dashboard: cache key unavailable, computing directly", zap.Error(err))
		return s.compute(ctx, q)
	}

	var data domain.DashboardData
	err = s.cache.FetchJSON(ctx, key, &data, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *dashboardService) compute(ctx context.Context, q domain.EmissionQuery) (*domain.DashboardData, error) {
	kpis, err := s.Kpis(ctx, q)
	if err != nil {
		return nil, err
	}
	scopes, err := s.ScopeBreakdown(ctx, q)
	if err != nil {
		return nil, err
	}
	trend, err := s.MonthlyTrend(ctx, q)
	if err != nil {
		return nil, err
	}
	top, err := s.TopCategories(ctx, q, dashboardTopCategories)
	if err != nil {
		return nil, err
	}
	data := &domain.DashboardData{
		Kpis:           *kpis,
		ScopeBreakdown: scopes,
		MonthlyTrend:   trend,
		TopCategories:  top,
	}
	if q.SiteID == nil {
		sites, err := s.SiteComparison(ctx, q)
		if err != nil {
			return nil, err
		}
		data.Sites = sites
	}
	return data, nil
}

func (s *dashboardService) Invalidate(ctx context.Context, organizationID uuid.UUID) error {
	if err := s.cache.Bump(ctx, dashboardNamespace(organizationID)); err != nil {
		return fmt.Errorf("dashboardService.Invalidate: %w", err)
	}
	return nil
}
