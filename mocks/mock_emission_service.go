package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
	"carbex/internal/service"
)

// MockEmissionService is a mock implementation of service.EmissionService.
type MockEmissionService struct {
	mock.Mock
}

func (m *MockEmissionService) Create(ctx context.Context, organizationID, userID uuid.UUID, in service.EmissionInput) (*domain.EmissionRecord, error) {
	args := m.Called(ctx, organizationID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionRecord), args.Error(1)
}

func (m *MockEmissionService) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.EmissionRecord, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionRecord), args.Error(1)
}

func (m *MockEmissionService) List(ctx context.Context, q domain.EmissionQuery, page, pageSize int) ([]domain.EmissionRecord, int, error) {
	args := m.Called(ctx, q, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmissionRecord), args.Int(1), args.Error(2)
}

func (m *MockEmissionService) Update(ctx context.Context, organizationID, id uuid.UUID, in service.EmissionInput) (*domain.EmissionRecord, error) {
	args := m.Called(ctx, organizationID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionRecord), args.Error(1)
}

func (m *MockEmissionService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockEmissionService) Export(ctx context.Context, q domain.EmissionQuery, w io.Writer) error {
	args := m.Called(ctx, q, w)
	return args.Error(0)
}
