package product

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, productID uint) (*Product, error)
	AdjustStock(ctx context.Context, productID uint, target StockTarget) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, sale_price, stock, created_at, updated_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.SalePrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, productID uint) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, sale_price, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`, productID).Scan(&p.ID, &p.Name, &p.Price, &p.SalePrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, value, stock, created_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at, id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.Stock, &v.CreatedAt); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}

	return &p, rows.Err()
}

// AdjustStock applies an absolute or relative stock change to a product and
// propagates the effective delta to its variants, all in one transaction.
// The product row is locked first so the read-resolve-write sequence cannot
// race with an order transition on the same product.
func (r *repository) AdjustStock(ctx context.Context, productID uint, target StockTarget) (*Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p Product
	err = tx.QueryRowContext(ctx, `
		SELECT id, name, price, sale_price, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID).Scan(&p.ID, &p.Name, &p.Price, &p.SalePrice, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	next := target.Resolve(p.Stock)
	delta := next - p.Stock

	_, err = tx.ExecContext(ctx, `
		UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2
	`, next, productID)
	if err != nil {
		return nil, err
	}

	if delta != 0 {
		if err := ApplyStockDelta(ctx, tx, productID, delta); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Stock = next
	return &p, nil
}
