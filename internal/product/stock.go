package product

import (
	"context"
	"database/sql"
)

// StockChange is a computed new stock value for one variant.
type StockChange struct {
	VariantID uint
	Stock     int
}

// DistributeDelta maps a product-level stock delta onto the product's
// variants. Variants are grouped by axis name, in creation order, and each
// group absorbs the delta independently.
//
// Decrements walk the group and drain variants front to back, skipping
// empty ones; whatever cannot be covered by variant stock is dropped, the
// product-level count stays authoritative. Increments land entirely on the
// first variant of each group. The asymmetry is intentional and relied
// upon by existing data.
func DistributeDelta(variants []Variant, delta int) []StockChange {
	if delta == 0 || len(variants) == 0 {
		return nil
	}

	groups := make(map[string][]Variant)
	var axes []string
	for _, v := range variants {
		if _, ok := groups[v.Name]; !ok {
			axes = append(axes, v.Name)
		}
		groups[v.Name] = append(groups[v.Name], v)
	}

	var changes []StockChange
	for _, axis := range axes {
		group := groups[axis]

		if delta > 0 {
			first := group[0]
			changes = append(changes, StockChange{VariantID: first.ID, Stock: first.Stock + delta})
			continue
		}

		remaining := -delta
		for _, v := range group {
			if remaining == 0 {
				break
			}
			if v.Stock <= 0 {
				continue
			}

			take := v.Stock
			if take > remaining {
				take = remaining
			}
			changes = append(changes, StockChange{VariantID: v.ID, Stock: v.Stock - take})
			remaining -= take
		}
	}

	return changes
}

// ApplyStockDelta propagates a product-level stock delta to the product's
// variants inside an open transaction. The variant rows are locked so
// concurrent transitions touching the same product serialize here as well.
func ApplyStockDelta(ctx context.Context, tx *sql.Tx, productID uint, delta int) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, product_id, name, value, stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at, id
		FOR UPDATE
	`, productID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.Stock); err != nil {
			return err
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	for _, change := range DistributeDelta(variants, delta) {
		_, err := tx.ExecContext(ctx, `
			UPDATE product_variants SET stock = $1 WHERE id = $2
		`, change.Stock, change.VariantID)
		if err != nil {
			return err
		}
	}

	return nil
}
