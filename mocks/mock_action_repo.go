package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockActionRepo is a mock implementation of port.ActionRepository.
type MockActionRepo struct {
	mock.Mock
}

func (m *MockActionRepo) ListRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Action), args.Error(1)
}

func (m *MockActionRepo) ListOpenByReduction(ctx context.Context, organizationID uuid.UUID, limit int) ([]domain.Action, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Action), args.Error(1)
}
