package costing

import (
	"testing"

	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, quantity, waste, price float64) RecipeLine {
	t.Helper()
	line, err := NewRecipeLine(
		uuid.New(), "Fabric", "m",
		decimal.NewFromFloat(quantity),
		decimal.NewFromFloat(waste),
		valueobject.NewMoneyTRYFromFloat(price),
	)
	require.NoError(t, err)
	return line
}

// ============================================
// Pricing Primitive Tests
// ============================================

func TestLineUsage(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		waste    float64
		expected string
	}{
		{"no waste", 2, 0, "2"},
		{"ten percent waste", 2, 10, "2.2"},
		{"fractional quantity", 1.5, 20, "1.8"},
		{"zero quantity", 0, 50, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := LineUsage(decimal.NewFromFloat(tt.quantity), decimal.NewFromFloat(tt.waste))
			expected, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, usage.Equal(expected), "got %s, want %s", usage, expected)
		})
	}
}

func TestLineCost(t *testing.T) {
	t.Run("applies waste multiplicatively", func(t *testing.T) {
		// 2 * 1.10 * 10 = 22.0
		cost := LineCost(decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.NewFromInt(10))
		assert.True(t, cost.Equal(decimal.NewFromFloat(22.0)), "got %s", cost)
	})

	t.Run("waste strictly increases cost", func(t *testing.T) {
		quantity := decimal.NewFromInt(3)
		price := decimal.NewFromFloat(7.5)

		previous := LineCost(quantity, decimal.Zero, price)
		for _, waste := range []int64{1, 5, 10, 25, 100, 250} {
			cost := LineCost(quantity, decimal.NewFromInt(waste), price)
			assert.True(t, cost.GreaterThan(previous), "waste %d: %s not > %s", waste, cost, previous)
			previous = cost
		}
	})
}

func TestRecipeLine_Cost(t *testing.T) {
	line := mustLine(t, 2, 10, 10)
	assert.True(t, line.Cost().Amount().Equal(decimal.NewFromFloat(22.0)))
}

func TestNewRecipeLine_Validation(t *testing.T) {
	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewRecipeLine(uuid.New(), "Fabric", "m",
			decimal.NewFromInt(-1), decimal.Zero, valueobject.ZeroTRY())
		require.Error(t, err)
	})

	t.Run("rejects negative waste", func(t *testing.T) {
		_, err := NewRecipeLine(uuid.New(), "Fabric", "m",
			decimal.NewFromInt(1), decimal.NewFromInt(-5), valueobject.ZeroTRY())
		require.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := NewRecipeLine(uuid.New(), "Fabric", "m",
			decimal.NewFromInt(1), decimal.Zero, valueobject.NewMoneyTRYFromFloat(-1))
		require.Error(t, err)
	})
}

// ============================================
// Product Cost Aggregator Tests
// ============================================

func TestComputeUnitPrice(t *testing.T) {
	t.Run("full cascade", func(t *testing.T) {
		// materialCost 22 + labor 5 + overhead 3 = 30, * 1.2 = 36.00
		recipe := Recipe{Source: SourceCatalog, Lines: []RecipeLine{mustLine(t, 2, 10, 10)}}

		price, err := ComputeUnitPrice(recipe,
			valueobject.NewMoneyTRYFromFloat(5),
			valueobject.NewMoneyTRYFromFloat(3),
			decimal.NewFromInt(20),
		)
		require.NoError(t, err)
		assert.Equal(t, "36.00", price.StringFixed(2))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		recipe := Recipe{Source: SourceManual, Lines: []RecipeLine{
			mustLine(t, 1.25, 7.5, 13.33),
			mustLine(t, 0.4, 3, 99.99),
		}}
		labor := valueobject.NewMoneyTRYFromFloat(12.5)
		overhead := valueobject.NewMoneyTRYFromFloat(4.75)
		margin := decimal.NewFromFloat(17.5)

		first, err := ComputeUnitPrice(recipe, labor, overhead, margin)
		require.NoError(t, err)
		second, err := ComputeUnitPrice(recipe, labor, overhead, margin)
		require.NoError(t, err)
		assert.True(t, first.Equals(second))
	})

	t.Run("empty recipe prices labor and overhead only", func(t *testing.T) {
		price, err := ComputeUnitPrice(Recipe{Source: SourceCatalog},
			valueobject.NewMoneyTRYFromFloat(10),
			valueobject.NewMoneyTRYFromFloat(5),
			decimal.NewFromInt(100),
		)
		require.NoError(t, err)
		assert.Equal(t, "30.00", price.StringFixed(2))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usdPrice, err := valueobject.NewMoney(decimal.NewFromInt(10), valueobject.USD)
		require.NoError(t, err)
		usdLine, err := NewRecipeLine(uuid.New(), "Imported fabric", "m",
			decimal.NewFromInt(1), decimal.Zero, usdPrice)
		require.NoError(t, err)

		recipe := Recipe{Source: SourceCatalog, Lines: []RecipeLine{mustLine(t, 1, 0, 10), usdLine}}
		_, err = ComputeUnitPrice(recipe, valueobject.ZeroTRY(), valueobject.ZeroTRY(), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative margin", func(t *testing.T) {
		recipe := Recipe{Source: SourceCatalog, Lines: []RecipeLine{mustLine(t, 1, 0, 10)}}
		_, err := ComputeUnitPrice(recipe, valueobject.ZeroTRY(), valueobject.ZeroTRY(), decimal.NewFromInt(-10))
		require.Error(t, err)
	})

	t.Run("rounds once at the end", func(t *testing.T) {
		// 3 * 1/3 stays exact through the cascade; only the final value is rounded
		line, err := NewRecipeLine(uuid.New(), "Trim", "pcs",
			decimal.NewFromInt(1), decimal.Zero,
			valueobject.NewMoneyTRY(decimal.NewFromInt(1).Div(decimal.NewFromInt(3))),
		)
		require.NoError(t, err)
		recipe := Recipe{Source: SourceCatalog, Lines: []RecipeLine{line, line, line}}

		price, err := ComputeUnitPrice(recipe, valueobject.ZeroTRY(), valueobject.ZeroTRY(), decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "1.00", price.StringFixed(2))
	})
}

// ============================================
// Order Pricing Cascade Tests
// ============================================

func TestComputeOrderPricing(t *testing.T) {
	t.Run("percent margin", func(t *testing.T) {
		// 36 * 3 = 108, + 10% = 118.80
		pricing, err := ComputeOrderPricing(valueobject.NewMoneyTRYFromFloat(36), 3, MarginPercent, decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.Equal(t, "36.00", pricing.BaseAmount.StringFixed(2))
		assert.Equal(t, "10.80", pricing.ProfitAmount.StringFixed(2))
		assert.Equal(t, "118.80", pricing.TotalAmount.StringFixed(2))
	})

	t.Run("amount margin", func(t *testing.T) {
		pricing, err := ComputeOrderPricing(valueobject.NewMoneyTRYFromFloat(36), 3, MarginAmount, decimal.NewFromInt(25))
		require.NoError(t, err)

		assert.Equal(t, "25.00", pricing.ProfitAmount.StringFixed(2))
		assert.Equal(t, "133.00", pricing.TotalAmount.StringFixed(2))
	})

	t.Run("total equals base times quantity plus profit", func(t *testing.T) {
		cases := []struct {
			unitPrice   float64
			quantity    int64
			marginType  MarginType
			marginValue float64
		}{
			{36, 3, MarginPercent, 10},
			{12.75, 1, MarginPercent, 0},
			{99.99, 250, MarginAmount, 1234.56},
			{0.01, 7, MarginPercent, 33.3},
		}

		for _, tc := range cases {
			pricing, err := ComputeOrderPricing(
				valueobject.NewMoneyTRYFromFloat(tc.unitPrice), tc.quantity, tc.marginType, decimal.NewFromFloat(tc.marginValue))
			require.NoError(t, err)

			base := pricing.BaseAmount.MultiplyByInt(pricing.Quantity)
			expected, err := base.Add(pricing.ProfitAmount)
			require.NoError(t, err)
			assert.True(t, pricing.TotalAmount.Equals(expected.RoundBank(2)),
				"unit %v qty %d: total %s != base*qty+profit %s",
				tc.unitPrice, tc.quantity, pricing.TotalAmount, expected)
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := ComputeOrderPricing(valueobject.ZeroTRY(), 0, MarginPercent, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects unknown margin type", func(t *testing.T) {
		_, err := ComputeOrderPricing(valueobject.ZeroTRY(), 1, MarginType("RATIO"), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative margin value", func(t *testing.T) {
		_, err := ComputeOrderPricing(valueobject.ZeroTRY(), 1, MarginPercent, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

// ============================================
// Offer Pricing Cascade Tests
// ============================================

func TestComputeOfferTotal(t *testing.T) {
	t.Run("sums line totals", func(t *testing.T) {
		// 3*10 + 1*50 = 80
		result, err := ComputeOfferTotal([]OfferLine{
			{Quantity: 3, UnitPrice: valueobject.NewMoneyTRYFromFloat(10)},
			{Quantity: 1, UnitPrice: valueobject.NewMoneyTRYFromFloat(50)},
		})
		require.NoError(t, err)

		require.Len(t, result.LineTotals, 2)
		assert.Equal(t, "30.00", result.LineTotals[0].StringFixed(2))
		assert.Equal(t, "50.00", result.LineTotals[1].StringFixed(2))
		assert.Equal(t, "80.00", result.TotalAmount.StringFixed(2))
	})

	t.Run("empty list yields zero", func(t *testing.T) {
		result, err := ComputeOfferTotal(nil)
		require.NoError(t, err)
		assert.True(t, result.TotalAmount.IsZero())
		assert.Empty(t, result.LineTotals)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := ComputeOfferTotal([]OfferLine{{Quantity: 0, UnitPrice: valueobject.ZeroTRY()}})
		require.Error(t, err)
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd, err := valueobject.NewMoney(decimal.NewFromInt(5), valueobject.USD)
		require.NoError(t, err)

		_, err = ComputeOfferTotal([]OfferLine{
			{Quantity: 1, UnitPrice: valueobject.NewMoneyTRYFromFloat(5)},
			{Quantity: 1, UnitPrice: usd},
		})
		require.Error(t, err)
	})
}
