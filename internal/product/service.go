package product

import (
	"context"

	"suplementi-be/internal/logger"
	"suplementi-be/internal/metrics"
	"suplementi-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID uint) (*Product, error)
	AdjustStock(ctx context.Context, productID uint, target StockTarget) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProducts(ctx context.Context) ([]Product, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

func (s *service) GetProduct(ctx context.Context, productID uint) (*Product, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, productID)
}

// AdjustStock is the direct admin stock-adjustment operation. The target is
// either an absolute value or a relative adjustment; the repository clamps
// the result at zero and mirrors the effective delta onto the variants.
func (s *service) AdjustStock(ctx context.Context, productID uint, target StockTarget) (*Product, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if (target.Stock == nil) == (target.Adjustment == nil) {
		return nil, ErrInvalidStockInput
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdjustStock"),
		zap.Uint("product_id", productID),
	)

	p, err := s.repo.AdjustStock(ctx, productID, target)
	if err != nil {
		log.Error("failed to adjust stock", zap.Error(err))
		return nil, err
	}

	metrics.StockAdjustments.Inc()
	log.Info("stock adjusted", zap.Int("stock", p.Stock))
	return p, nil
}
