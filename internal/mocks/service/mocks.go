// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"academy/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, event *service.LeadEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockTokenRevoker is a mock of service.TokenRevoker.
type MockTokenRevoker struct {
	mock.Mock
}

// NewMockTokenRevoker creates a mock that asserts its expectations on cleanup.
func NewMockTokenRevoker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenRevoker {
	m := &MockTokenRevoker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}

func (m *MockTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)

	return args.Bool(0), args.Error(1)
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock that asserts its expectations on cleanup.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}
