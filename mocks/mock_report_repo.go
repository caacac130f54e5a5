package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepo) Update(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID, offset, limit int) ([]domain.Report, int, error) {
	args := m.Called(ctx, organizationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportRepo) ListCompleted(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockReportRepo) ClaimPending(ctx context.Context, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}
