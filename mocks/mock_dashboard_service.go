package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, q domain.EmissionQuery) (*domain.Summary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockDashboardService) Comparison(ctx context.Context, q domain.EmissionQuery) (*domain.Comparison, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockDashboardService) Kpis(ctx context.Context, q domain.EmissionQuery) (*domain.Kpis, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kpis), args.Error(1)
}

func (m *MockDashboardService) ScopeBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeBreakdownEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScopeBreakdownEntry), args.Error(1)
}

func (m *MockDashboardService) CategoryBreakdown(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryBreakdownEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryBreakdownEntry), args.Error(1)
}

func (m *MockDashboardService) TopCategories(ctx context.Context, q domain.EmissionQuery, limit int) ([]domain.CategoryBreakdownEntry, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryBreakdownEntry), args.Error(1)
}

func (m *MockDashboardService) MonthlyTrend(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthlyTrendPoint, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTrendPoint), args.Error(1)
}

func (m *MockDashboardService) SiteComparison(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteComparisonEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SiteComparisonEntry), args.Error(1)
}

func (m *MockDashboardService) Dashboard(ctx context.Context, q domain.EmissionQuery) (*domain.DashboardData, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardData), args.Error(1)
}

func (m *MockDashboardService) Invalidate(ctx context.Context, organizationID uuid.UUID) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}
