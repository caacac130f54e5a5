package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockReportBuilder is a mock implementation of service.ReportBuilder.
type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) Build(ctx context.Context, organizationID uuid.UUID, start, end time.Time, reportType domain.ReportType, siteID *uuid.UUID) (*domain.ReportData, error) {
	args := m.Called(ctx, organizationID, start, end, reportType, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportData), args.Error(1)
}
