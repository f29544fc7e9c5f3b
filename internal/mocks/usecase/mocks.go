// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"academy/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockSessionUsecase is a mock of usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a mock that asserts its expectations on cleanup.
func NewMockSessionUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)

	return args.String(0), args.Error(1)
}

func (m *MockSessionUsecase) Authenticate(ctx context.Context, bearer string) (*service.Claims, error) {
	args := m.Called(ctx, bearer)

	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockSessionUsecase) Logout(ctx context.Context, claims *service.Claims) error {
	return m.Called(ctx, claims).Error(0)
}
