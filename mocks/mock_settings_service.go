package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsService) Set(ctx context.Context, key, value string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingsService) Branding(ctx context.Context) domain.Branding {
	args := m.Called(ctx)
	return args.Get(0).(domain.Branding)
}

func (m *MockSettingsService) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
