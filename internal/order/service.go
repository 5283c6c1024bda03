package order

import (
	"context"
	"errors"
	"fmt"

	"suplementi-be/internal/logger"
	"suplementi-be/internal/metrics"
	"suplementi-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetOrders(ctx context.Context, filter *OrderFilter, limit, page int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	ChangeStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrders(ctx context.Context, filter *OrderFilter, limit, page int32) ([]*Order, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetOrders(ctx, filter, limit, page)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetOrderDetail(ctx, orderID)
}

// ChangeStatus validates a requested status change and applies it together
// with its inventory side effects. Only two edges touch stock:
//
//	RECEIVED -> SHIPPED                 decrement (all-or-nothing pre-flight)
//	SHIPPED|DELIVERED -> CANCELLED      restore
//
// Every other edge, including same-status writes, only moves the status
// field. The graph is deliberately permissive beyond those two edges.
func (s *service) ChangeStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	existing, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ChangeStatus"),
		zap.Uint("order_id", orderID),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(status)),
	)

	switch {
	case existing.Status == StatusReceived && status == StatusShipped:
		err = s.repo.ShipOrder(ctx, orderID)
	case (existing.Status == StatusShipped || existing.Status == StatusDelivered) && status == StatusCancelled:
		err = s.repo.RestockOrder(ctx, orderID)
	default:
		err = s.repo.UpdateStatus(ctx, orderID, existing.Status, status)
	}
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			metrics.StockRejections.Inc()
		}
		log.Warn("status change failed", zap.Error(err))
		return nil, err
	}

	metrics.OrderTransitions.Inc()
	log.Info("order status changed", zap.Duration("duration", timer.Duration()))
	return s.repo.GetOrderDetail(ctx, orderID)
}
