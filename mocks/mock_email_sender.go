package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carbex/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReportReady(ctx context.Context, toEmail string, report *domain.Report) error {
	args := m.Called(ctx, toEmail, report)
	return args.Error(0)
}

func (m *MockEmailSender) SendReportFailed(ctx context.Context, toEmail string, report *domain.Report) error {
	args := m.Called(ctx, toEmail, report)
	return args.Error(0)
}
