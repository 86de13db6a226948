package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"local-ads/internal/core/domain"
)

// MockFundLedger is a testify mock of port.FundLedger.
type MockFundLedger struct {
	mock.Mock
}

// NewMockFundLedger creates a mock that asserts its expectations on cleanup.
func NewMockFundLedger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFundLedger {
	m := &MockFundLedger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFundLedger) Reserve(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	return m.Called(ctx, sellerID, amount, reason).Error(0)
}

func (m *MockFundLedger) Release(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	return m.Called(ctx, sellerID, amount, reason).Error(0)
}

func (m *MockFundLedger) Adjust(ctx context.Context, sellerID int64, delta decimal.Decimal, reason domain.MovementReason) error {
	return m.Called(ctx, sellerID, delta, reason).Error(0)
}

func (m *MockFundLedger) Movements(ctx context.Context, sellerID int64, limit int) ([]domain.FundMovement, error) {
	args := m.Called(ctx, sellerID, limit)
	ms, _ := args.Get(0).([]domain.FundMovement)
	return ms, args.Error(1)
}

// MockEventPublisher is a testify mock of port.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock that asserts its expectations on cleanup.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.CampaignEvent) error {
	return m.Called(ctx, event).Error(0)
}

// PassthroughTransactor runs the unit of work directly. It lets use case
// tests built on mocks observe the error returned from the transaction.
type PassthroughTransactor struct{}

func (PassthroughTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
