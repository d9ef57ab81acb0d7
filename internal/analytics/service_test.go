package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Snapshot), args.Error(1)
}

func TestServiceUserOrderSummary(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(statsSnapshot(), nil)

		svc := NewService(repo)
		report, err := svc.UserOrderSummary(context.Background())

		require.NoError(t, err)
		assert.Len(t, report.UserSummary, 2)
		repo.AssertExpectations(t)
	})

	t.Run("LoadError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(nil, errors.New("db down"))

		svc := NewService(repo)
		report, err := svc.UserOrderSummary(context.Background())

		assert.Error(t, err)
		assert.Nil(t, report)
	})

	t.Run("InvariantViolation", func(t *testing.T) {
		snap := statsSnapshot()
		snap.Products[0].Price = -5

		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(snap, nil)

		svc := NewService(repo)
		report, err := svc.UserOrderSummary(context.Background())

		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Nil(t, report)
	})
}

func TestServiceOrderProductStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(statsSnapshot(), nil)

		svc := NewService(repo)
		report, err := svc.OrderProductStats(context.Background())

		require.NoError(t, err)
		assert.Len(t, report.OrderTotals, 4)
	})

	t.Run("LoadError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(nil, errors.New("db down"))

		svc := NewService(repo)
		_, err := svc.OrderProductStats(context.Background())

		assert.Error(t, err)
	})
}

func TestServiceOrderAnalysis(t *testing.T) {
	asOf := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(statsSnapshot(), nil)

		svc := NewService(repo)
		report, err := svc.OrderAnalysis(context.Background(), asOf)

		require.NoError(t, err)
		assert.Equal(t, 2, report.ShippedCount)
		assert.Len(t, report.RecentOrders, 3)
	})

	t.Run("InvariantViolation", func(t *testing.T) {
		snap := statsSnapshot()
		snap.Lines[0].Quantity = -1

		repo := new(MockRepository)
		repo.On("LoadSnapshot", mock.Anything).Return(snap, nil)

		svc := NewService(repo)
		report, err := svc.OrderAnalysis(context.Background(), asOf)

		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Nil(t, report)
	})
}
