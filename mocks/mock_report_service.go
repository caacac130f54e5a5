package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
	"carbex/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, in service.GenerateReportInput) (*domain.Report, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) Process(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportService) List(ctx context.Context, organizationID uuid.UUID, page, pageSize int) ([]domain.Report, int, error) {
	args := m.Called(ctx, organizationID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Report), args.Int(1), args.Error(2)
}

func (m *MockReportService) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockReportService) Open(ctx context.Context, organizationID, id uuid.UUID) (*service.ReportFile, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportFile), args.Error(1)
}

func (m *MockReportService) DownloadURL(ctx context.Context, organizationID, id uuid.UUID) (string, error) {
	args := m.Called(ctx, organizationID, id)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) Preview(ctx context.Context, organizationID, id uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, organizationID, id, w)
	return args.Error(0)
}

func (m *MockReportService) Quick(ctx context.Context, organizationID uuid.UUID, in service.QuickReportInput) ([]byte, string, error) {
	args := m.Called(ctx, organizationID, in)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
