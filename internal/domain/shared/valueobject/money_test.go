package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_IsValid(t *testing.T) {
	tests := []struct {
		currency Currency
		isValid  bool
	}{
		{TRY, true},
		{USD, true},
		{EUR, true},
		{GBP, true},
		{Currency("JPY"), false},
		{Currency(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.currency.IsValid())
		})
	}
}

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), TRY)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, TRY, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		require.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyTRYFromFloat(10.50)
		b := NewMoneyTRYFromFloat(4.50)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyTRYFromFloat(10)
		b, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyTRYFromFloat(10)
	b := NewMoneyTRYFromFloat(25)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(-15)))
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyTRYFromFloat(2.5)

	result := m.MultiplyByInt(4)
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, TRY, result.Currency())
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyTRY(decimal.NewFromInt(108))

	result := m.CalculatePercentage(decimal.NewFromInt(10))
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(10.8)))
}

func TestMoney_RoundBank(t *testing.T) {
	// Banker's rounding: 2.125 -> 2.12, 2.135 -> 2.14
	a, err := NewMoneyFromString("2.125", TRY)
	require.NoError(t, err)
	assert.Equal(t, "2.12", a.RoundBank(2).StringFixed(2))

	b, err := NewMoneyFromString("2.135", TRY)
	require.NoError(t, err)
	assert.Equal(t, "2.14", b.RoundBank(2).StringFixed(2))
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyTRYFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"TRY"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.3400"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(12.34)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(12.34))
	})
}
