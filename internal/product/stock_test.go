package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizeVariants(stocks ...int) []Variant {
	values := []string{"S", "M", "L", "XL"}
	variants := make([]Variant, 0, len(stocks))
	for i, stock := range stocks {
		variants = append(variants, Variant{
			ID:        uint(i + 1),
			ProductID: 1,
			Name:      "Size",
			Value:     values[i],
			Stock:     stock,
		})
	}
	return variants
}

func TestDistributeDelta_Decrement(t *testing.T) {
	t.Run("Drains variants in creation order", func(t *testing.T) {
		// Size S=4, M=6; decrement 7 -> S=0, M=3
		changes := DistributeDelta(sizeVariants(4, 6), -7)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 0},
			{VariantID: 2, Stock: 3},
		}, changes)
	})

	t.Run("Stops once the decrement is covered", func(t *testing.T) {
		changes := DistributeDelta(sizeVariants(4, 6), -3)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 1},
		}, changes)
	})

	t.Run("Skips empty variants", func(t *testing.T) {
		changes := DistributeDelta(sizeVariants(0, 6), -2)

		assert.Equal(t, []StockChange{
			{VariantID: 2, Stock: 4},
		}, changes)
	})

	t.Run("Excess beyond variant stock is dropped", func(t *testing.T) {
		// Total variant stock is 10 but the product-level field is
		// authoritative: nothing goes negative, the rest is absorbed.
		changes := DistributeDelta(sizeVariants(4, 6), -25)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 0},
			{VariantID: 2, Stock: 0},
		}, changes)
	})
}

func TestDistributeDelta_Increment(t *testing.T) {
	t.Run("Entire increment lands on first variant", func(t *testing.T) {
		changes := DistributeDelta(sizeVariants(0, 3), 7)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 7},
		}, changes)
	})
}

func TestDistributeDelta_Groups(t *testing.T) {
	variants := []Variant{
		{ID: 1, Name: "Size", Value: "S", Stock: 2},
		{ID: 2, Name: "Size", Value: "M", Stock: 5},
		{ID: 3, Name: "Flavor", Value: "Vanilla", Stock: 4},
		{ID: 4, Name: "Flavor", Value: "Chocolate", Stock: 4},
	}

	t.Run("Each axis group absorbs the delta independently", func(t *testing.T) {
		changes := DistributeDelta(variants, -3)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 0},
			{VariantID: 2, Stock: 4},
			{VariantID: 3, Stock: 1},
		}, changes)
	})

	t.Run("Increment concentrates per group", func(t *testing.T) {
		changes := DistributeDelta(variants, 3)

		assert.Equal(t, []StockChange{
			{VariantID: 1, Stock: 5},
			{VariantID: 3, Stock: 7},
		}, changes)
	})
}

func TestDistributeDelta_ShipThenCancel(t *testing.T) {
	// Product stock 10, Size S=4 and M=6. Ship 7, then cancel: the
	// decrement is spread (S=0, M=3) but the restore lands entirely on S
	// (S=7, M=3). The asymmetry is deliberate.
	variants := sizeVariants(4, 6)

	down := DistributeDelta(variants, -7)
	assert.Equal(t, []StockChange{
		{VariantID: 1, Stock: 0},
		{VariantID: 2, Stock: 3},
	}, down)

	variants[0].Stock = 0
	variants[1].Stock = 3

	up := DistributeDelta(variants, 7)
	assert.Equal(t, []StockChange{
		{VariantID: 1, Stock: 7},
	}, up)
}

func TestDistributeDelta_Empty(t *testing.T) {
	assert.Nil(t, DistributeDelta(nil, -5))
	assert.Nil(t, DistributeDelta(sizeVariants(4, 6), 0))
}

func TestStockTarget_Resolve(t *testing.T) {
	abs := func(n int) StockTarget { return StockTarget{Stock: &n} }
	rel := func(n int) StockTarget { return StockTarget{Adjustment: &n} }

	t.Run("Absolute", func(t *testing.T) {
		assert.Equal(t, 2, abs(2).Resolve(5))
	})

	t.Run("Absolute clamps at zero", func(t *testing.T) {
		assert.Equal(t, 0, abs(-4).Resolve(5))
	})

	t.Run("Relative", func(t *testing.T) {
		assert.Equal(t, 8, rel(3).Resolve(5))
		assert.Equal(t, 2, rel(-3).Resolve(5))
	})

	t.Run("Relative clamps at zero", func(t *testing.T) {
		// adjustment of -100 on stock 5 clamps to 0; the effective
		// delta seen by variants is -5, not -100
		assert.Equal(t, 0, rel(-100).Resolve(5))
	})

	t.Run("Empty target keeps current", func(t *testing.T) {
		assert.Equal(t, 5, StockTarget{}.Resolve(5))
	})
}
