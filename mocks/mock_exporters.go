package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockAdemeExporter is a mock implementation of service.AdemeExporter.
type MockAdemeExporter struct {
	mock.Mock
}

func (m *MockAdemeExporter) Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	args := m.Called(ctx, organizationID, year, siteID)
	return args.String(0), args.Error(1)
}

// MockGhgExporter is a mock implementation of service.GhgExporter.
type MockGhgExporter struct {
	mock.Mock
}

func (m *MockGhgExporter) Export(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	args := m.Called(ctx, organizationID, year, siteID)
	return args.String(0), args.Error(1)
}

// MockWordReportGenerator is a mock implementation of service.WordReportGenerator.
type MockWordReportGenerator struct {
	mock.Mock
}

func (m *MockWordReportGenerator) Generate(ctx context.Context, organizationID uuid.UUID, year int, siteID *uuid.UUID) (string, error) {
	args := m.Called(ctx, organizationID, year, siteID)
	return args.String(0), args.Error(1)
}

// MockPdfGenerator is a mock implementation of service.PdfGenerator.
type MockPdfGenerator struct {
	mock.Mock
}

func (m *MockPdfGenerator) Generate(ctx context.Context, data *domain.ReportData, template domain.ReportType) (string, error) {
	args := m.Called(ctx, data, template)
	return args.String(0), args.Error(1)
}

func (m *MockPdfGenerator) Download(ctx context.Context, data *domain.ReportData, template domain.ReportType) ([]byte, string, error) {
	args := m.Called(ctx, data, template)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockPdfGenerator) Stream(ctx context.Context, data *domain.ReportData, template domain.ReportType, w io.Writer) error {
	args := m.Called(ctx, data, template, w)
	return args.Error(0)
}
