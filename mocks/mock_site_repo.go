package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockSiteRepo is a mock implementation of port.SiteRepository.
type MockSiteRepo struct {
	mock.Mock
}

func (m *MockSiteRepo) GetByID(ctx context.Context, organizationID, siteID uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, organizationID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]domain.Site, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}
