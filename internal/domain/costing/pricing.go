package costing

import (
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineUsage returns the effective quantity of material consumed for a nominal
// quantity and a waste percentage: quantity * (1 + waste/100).
func LineUsage(quantity, wastePercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(wastePercent.Div(hundred))
	return quantity.Mul(factor)
}

// LineCost returns the cost of a single recipe line:
// usage-with-waste times unit price.
func LineCost(quantity, wastePercent, unitPrice decimal.Decimal) decimal.Decimal {
	return LineUsage(quantity, wastePercent).Mul(unitPrice)
}

// ComputeUnitPrice runs the product cost cascade:
//
//  1. materialCost = Σ line cost over all recipe lines
//  2. base = materialCost + laborCost + overheadCost
//  3. unitPrice = base * (1 + profitMargin/100)
//
// The result is rounded once at the end with banker's rounding to 2 places;
// intermediate values are kept exact. Labor and overhead must share the
// recipe's currency.
func ComputeUnitPrice(recipe Recipe, laborCost, overheadCost valueobject.Money, profitMargin decimal.Decimal) (valueobject.Money, error) {
	if profitMargin.IsNegative() {
		return valueobject.Money{}, shared.NewDomainError("INVALID_MARGIN", "Profit margin cannot be negative")
	}

	materialCost, err := recipe.MaterialCost()
	if err != nil {
		return valueobject.Money{}, err
	}

	base, err := materialCost.Add(laborCost)
	if err != nil {
		return valueobject.Money{}, shared.ErrCurrencyMismatch
	}
	base, err = base.Add(overheadCost)
	if err != nil {
		return valueobject.Money{}, shared.ErrCurrencyMismatch
	}

	marginFactor := decimal.NewFromInt(1).Add(profitMargin.Div(hundred))
	return base.Multiply(marginFactor).RoundBank(2), nil
}

// MarginType selects how the order-level secondary margin is interpreted
type MarginType string

const (
	MarginPercent MarginType = "PERCENT" // marginValue is a percentage of the base total
	MarginAmount  MarginType = "AMOUNT"  // marginValue is a fixed amount
)

// IsValid checks if the margin type is supported
func (m MarginType) IsValid() bool {
	return m == MarginPercent || m == MarginAmount
}

// OrderPricing is the result of the order pricing cascade.
// Invariant: TotalAmount = BaseAmount * Quantity + ProfitAmount.
type OrderPricing struct {
	BaseAmount   valueobject.Money // unit price snapshot
	Quantity     int64
	ProfitAmount valueobject.Money // secondary margin on top of the base total
	TotalAmount  valueobject.Money
}

// ComputeOrderPricing runs the order cascade on top of a unit price:
//
//  1. totalBase = unitPrice * quantity
//  2. profit    = marginType == PERCENT ? totalBase * marginValue/100 : marginValue
//  3. total     = totalBase + profit
//
// No VAT is applied at order level. The profit and total are rounded once at
// the end with banker's rounding to 2 places.
func ComputeOrderPricing(unitPrice valueobject.Money, quantity int64, marginType MarginType, marginValue decimal.Decimal) (OrderPricing, error) {
	if quantity < 1 {
		return OrderPricing{}, shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be at least 1")
	}
	if !marginType.IsValid() {
		return OrderPricing{}, shared.NewDomainError("INVALID_MARGIN_TYPE", "Margin type must be PERCENT or AMOUNT")
	}
	if marginValue.IsNegative() {
		return OrderPricing{}, shared.NewDomainError("INVALID_MARGIN", "Margin value cannot be negative")
	}
	if unitPrice.IsNegative() {
		return OrderPricing{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	totalBase := unitPrice.MultiplyByInt(quantity)

	var profit valueobject.Money
	if marginType == MarginPercent {
		profit = totalBase.CalculatePercentage(marginValue)
	} else {
		var err error
		profit, err = valueobject.NewMoney(marginValue, unitPrice.Currency())
		if err != nil {
			return OrderPricing{}, err
		}
	}
	profit = profit.RoundBank(2)

	total, err := totalBase.Add(profit)
	if err != nil {
		return OrderPricing{}, shared.ErrCurrencyMismatch
	}

	return OrderPricing{
		BaseAmount:   unitPrice,
		Quantity:     quantity,
		ProfitAmount: profit,
		TotalAmount:  total.RoundBank(2),
	}, nil
}

// OfferLine is one input line of the offer cascade. The unit price comes from
// the caller as-is; it is not recomputed from the product recipe here, since
// offer line prices are user-editable and only default from the product cost.
type OfferLine struct {
	Quantity  int64
	UnitPrice valueobject.Money
}

// OfferTotal is the result of the offer pricing cascade.
// Invariant: TotalAmount = Σ LineTotals.
type OfferTotal struct {
	LineTotals  []valueobject.Money
	TotalAmount valueobject.Money
}

// ComputeOfferTotal sums line totals (quantity * unitPrice) over all items.
// An empty item list yields a zero total. All lines must share one currency.
func ComputeOfferTotal(items []OfferLine) (OfferTotal, error) {
	currency := valueobject.DefaultCurrency
	if len(items) > 0 {
		currency = items[0].UnitPrice.Currency()
	}

	lineTotals := make([]valueobject.Money, 0, len(items))
	total := valueobject.Zero(currency)
	for _, item := range items {
		if item.Quantity < 1 {
			return OfferTotal{}, shared.NewDomainError("INVALID_QUANTITY", "Offer item quantity must be at least 1")
		}
		if item.UnitPrice.IsNegative() {
			return OfferTotal{}, shared.NewDomainError("INVALID_PRICE", "Offer item unit price cannot be negative")
		}

		lineTotal := item.UnitPrice.MultiplyByInt(item.Quantity)
		lineTotals = append(lineTotals, lineTotal)

		sum, err := total.Add(lineTotal)
		if err != nil {
			return OfferTotal{}, shared.ErrCurrencyMismatch
		}
		total = sum
	}

	return OfferTotal{
		LineTotals:  lineTotals,
		TotalAmount: total.RoundBank(2),
	}, nil
}
