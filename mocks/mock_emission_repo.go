package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockEmissionRepo is a mock implementation of port.EmissionRepository.
type MockEmissionRepo struct {
	mock.Mock
}

func (m *MockEmissionRepo) Create(ctx context.Context, record *domain.EmissionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEmissionRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionRecord), args.Error(1)
}

func (m *MockEmissionRepo) List(ctx context.Context, q domain.EmissionQuery, offset, limit int) ([]domain.EmissionRecord, int, error) {
	args := m.Called(ctx, q, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmissionRecord), args.Int(1), args.Error(2)
}

func (m *MockEmissionRepo) Update(ctx context.Context, record *domain.EmissionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEmissionRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockEmissionRepo) Total(ctx context.Context, q domain.EmissionQuery) (float64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEmissionRepo) TotalsByScope(ctx context.Context, q domain.EmissionQuery) ([]domain.ScopeTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScopeTotal), args.Error(1)
}

func (m *MockEmissionRepo) TotalsByCategory(ctx context.Context, q domain.EmissionQuery) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockEmissionRepo) TotalsByMonth(ctx context.Context, q domain.EmissionQuery) ([]domain.MonthTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthTotal), args.Error(1)
}

func (m *MockEmissionRepo) TotalsBySite(ctx context.Context, q domain.EmissionQuery) ([]domain.SiteTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SiteTotal), args.Error(1)
}

func (m *MockEmissionRepo) ListDetailed(ctx context.Context, q domain.EmissionQuery) ([]domain.EmissionDetail, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmissionDetail), args.Error(1)
}
