package product

import (
	"context"
	"errors"
	"testing"

	"suplementi-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, productID uint) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) AdjustStock(ctx context.Context, productID uint, target StockTarget) (*Product, error) {
	args := m.Called(ctx, productID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), 1, "admin@example.com", utils.RoleAdmin)
}

func TestService_AdjustStock(t *testing.T) {
	t.Run("Success with adjustment", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		adj := -3
		target := StockTarget{Adjustment: &adj}
		repo.On("AdjustStock", mock.Anything, uint(1), target).
			Return(&Product{ID: 1, Name: "Whey", Stock: 2}, nil)

		p, err := svc.AdjustStock(adminCtx(), 1, target)
		assert.NoError(t, err)
		assert.Equal(t, 2, p.Stock)
		repo.AssertExpectations(t)
	})

	t.Run("Forbidden for non-admin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stock := 5
		_, err := svc.AdjustStock(context.Background(), 1, StockTarget{Stock: &stock})
		assert.ErrorIs(t, err, utils.ErrForbidden)
		repo.AssertNotCalled(t, "AdjustStock")
	})

	t.Run("Rejects empty target", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AdjustStock(adminCtx(), 1, StockTarget{})
		assert.ErrorIs(t, err, ErrInvalidStockInput)
	})

	t.Run("Rejects both absolute and relative", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stock, adj := 5, -1
		_, err := svc.AdjustStock(adminCtx(), 1, StockTarget{Stock: &stock, Adjustment: &adj})
		assert.ErrorIs(t, err, ErrInvalidStockInput)
	})

	t.Run("Propagates NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stock := 5
		target := StockTarget{Stock: &stock}
		repo.On("AdjustStock", mock.Anything, uint(99), target).
			Return(nil, ErrProductNotFound)

		_, err := svc.AdjustStock(adminCtx(), 99, target)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_GetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, uint(1)).
			Return(&Product{ID: 1, Name: "Creatine"}, nil)

		p, err := svc.GetProduct(adminCtx(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Creatine", p.Name)
	})

	t.Run("Forbidden for non-admin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.GetProduct(context.Background(), 1)
		assert.ErrorIs(t, err, utils.ErrForbidden)
		repo.AssertNotCalled(t, "GetByID")
	})
}

func TestService_GetProducts(t *testing.T) {
	t.Run("Forbidden for non-admin", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.GetProducts(context.Background())
		assert.ErrorIs(t, err, utils.ErrForbidden)
		repo.AssertNotCalled(t, "GetAll")
	})

	t.Run("Propagates repository error", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetAll", mock.Anything).Return(nil, errors.New("db error"))

		_, err := svc.GetProducts(adminCtx())
		assert.Error(t, err)
	})
}
