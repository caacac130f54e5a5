package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockSettingRepo is a mock implementation of port.SettingRepository.
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingRepo) Upsert(ctx context.Context, setting *domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
