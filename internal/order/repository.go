package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"suplementi-be/internal/logger"
	"suplementi-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetOrders(ctx context.Context, filter *OrderFilter, limit, page int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, from, to OrderStatus) error
	ShipOrder(ctx context.Context, orderID uint) error
	RestockOrder(ctx context.Context, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrders(
	ctx context.Context,
	filter *OrderFilter,
	limit, page int32,
) ([]*Order, error) {

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.total,
			o.shipping_name,
			o.shipping_city,
			o.created_at,
			o.updated_at
		FROM orders o
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Status != nil && *filter.Status != "" {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}

		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (o.order_number ILIKE $%d OR o.shipping_name ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}
	}

	query += " ORDER BY o.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.Status,
			&o.Total,
			&o.ShippingName,
			&o.ShippingCity,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_number, status, total,
		       shipping_name, shipping_address, shipping_city, shipping_postal_code,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.Total,
		&o.ShippingName, &o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

// UpdateStatus persists a status change that carries no inventory side
// effect. The write is conditional on the status the caller routed from:
// if a concurrent transition committed in between, zero rows match and the
// change is rejected rather than silently overwriting the newer status.
func (r *repository) UpdateStatus(ctx context.Context, orderID uint, from, to OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3
	`, to, orderID, from)
	if err != nil {
		return err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// requirement is the summed quantity one order needs from one product.
// Items referencing the same product are aggregated before any mutation.
type requirement struct {
	ProductID uint
	Quantity  int
}

func orderRequirements(ctx context.Context, tx *sql.Tx, orderID uint) ([]requirement, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT oi.product_id, SUM(oi.quantity)
		FROM order_items oi
		WHERE oi.order_id = $1
		GROUP BY oi.product_id
		ORDER BY oi.product_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []requirement
	for rows.Next() {
		var req requirement
		if err := rows.Scan(&req.ProductID, &req.Quantity); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

type lockedProduct struct {
	ID    uint
	Name  string
	Stock int
}

// lockProducts takes row locks on every product the order touches, in id
// order so two transitions sharing products cannot deadlock.
func lockProducts(ctx context.Context, tx *sql.Tx, reqs []requirement) (map[uint]lockedProduct, error) {
	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, int64(req.ProductID))
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, stock
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[uint]lockedProduct, len(reqs))
	for rows.Next() {
		var p lockedProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}

	return products, rows.Err()
}

// lockOrderStatus serializes concurrent transitions on one order: the
// second request blocks here until the first commits, then sees the
// committed status.
func lockOrderStatus(ctx context.Context, tx *sql.Tx, orderID uint) (OrderStatus, error) {
	var status OrderStatus
	err := tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	return status, err
}

// ShipOrder is the fulfillment commit (RECEIVED -> SHIPPED). Every item is
// validated against locked product stock before anything is decremented;
// a single shortfall aborts the whole transition.
func (r *repository) ShipOrder(ctx context.Context, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ShipOrder"),
		zap.Uint("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	status, err := lockOrderStatus(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if status != StatusReceived {
		log.Warn("order left RECEIVED before the transition could commit",
			zap.String("status", string(status)),
		)
		return ErrStatusConflict
	}

	reqs, err := orderRequirements(ctx, tx, orderID)
	if err != nil {
		return err
	}

	products, err := lockProducts(ctx, tx, reqs)
	if err != nil {
		return err
	}

	// Pre-flight: every item must be coverable before any product is
	// touched.
	for _, req := range reqs {
		p, ok := products[req.ProductID]
		if !ok {
			return product.ErrProductNotFound
		}
		if p.Stock < req.Quantity {
			log.Warn("insufficient stock",
				zap.String("product", p.Name),
				zap.Int("available", p.Stock),
				zap.Int("required", req.Quantity),
			)
			return &InsufficientStockError{
				ProductName: p.Name,
				Available:   p.Stock,
				Required:    req.Quantity,
			}
		}
	}

	for _, req := range reqs {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2
		`, req.Quantity, req.ProductID)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(ctx, tx, req.ProductID, -req.Quantity); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, StatusShipped, orderID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order shipped", zap.Int("products", len(reqs)))
	return nil
}

// RestockOrder is the fulfillment reversal ((SHIPPED|DELIVERED) ->
// CANCELLED). Stock is restored unconditionally, there is no upper bound.
func (r *repository) RestockOrder(ctx context.Context, orderID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RestockOrder"),
		zap.Uint("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	status, err := lockOrderStatus(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if status != StatusShipped && status != StatusDelivered {
		log.Warn("order no longer in a restockable status",
			zap.String("status", string(status)),
		)
		return ErrStatusConflict
	}

	reqs, err := orderRequirements(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if _, err := lockProducts(ctx, tx, reqs); err != nil {
		return err
	}

	for _, req := range reqs {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2
		`, req.Quantity, req.ProductID)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(ctx, tx, req.ProductID, req.Quantity); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, StatusCancelled, orderID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order cancelled, stock restored", zap.Int("products", len(reqs)))
	return nil
}
