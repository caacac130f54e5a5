package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"carbex/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*service.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) IssueToken(in service.IssueTokenInput) (string, time.Time, error) {
	args := m.Called(in)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
