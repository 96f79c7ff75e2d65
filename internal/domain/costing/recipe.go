package costing

import (
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeSource identifies which representation a recipe was built from.
// A product carries either catalog lines (references to stocked materials)
// or manual lines (inline items entered on the quick-create path); when both
// are present the catalog lines win.
type RecipeSource string

const (
	SourceCatalog RecipeSource = "CATALOG"
	SourceManual  RecipeSource = "MANUAL"
)

// RecipeLine is one material consumption line of a recipe: a quantity of a
// material consumed per single product unit, plus a waste percentage applied
// multiplicatively on top of the nominal quantity.
type RecipeLine struct {
	MaterialID   uuid.UUID // Nil for manual lines
	Name         string
	Unit         string
	Quantity     decimal.Decimal
	WastePercent decimal.Decimal
	UnitPrice    valueobject.Money
}

// NewRecipeLine creates a validated recipe line
func NewRecipeLine(materialID uuid.UUID, name, unit string, quantity, wastePercent decimal.Decimal, unitPrice valueobject.Money) (RecipeLine, error) {
	if quantity.IsNegative() {
		return RecipeLine{}, shared.NewDomainError("INVALID_QUANTITY", "Recipe line quantity cannot be negative")
	}
	if wastePercent.IsNegative() {
		return RecipeLine{}, shared.NewDomainError("INVALID_WASTE", "Waste percent cannot be negative")
	}
	if unitPrice.IsNegative() {
		return RecipeLine{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return RecipeLine{
		MaterialID:   materialID,
		Name:         name,
		Unit:         unit,
		Quantity:     quantity,
		WastePercent: wastePercent,
		UnitPrice:    unitPrice,
	}, nil
}

// Usage returns the effective material usage of the line including waste
func (l RecipeLine) Usage() decimal.Decimal {
	return LineUsage(l.Quantity, l.WastePercent)
}

// Cost returns the line cost: usage-with-waste times unit price
func (l RecipeLine) Cost() valueobject.Money {
	return l.UnitPrice.Multiply(l.Usage())
}

// Recipe is the resolved set of lines consumed to produce one unit of a
// product, tagged with the representation it was built from.
type Recipe struct {
	Source RecipeSource
	Lines  []RecipeLine
}

// IsEmpty reports whether the recipe has no lines
func (r Recipe) IsEmpty() bool {
	return len(r.Lines) == 0
}

// Currency returns the currency shared by all recipe lines.
// An empty recipe reports the default currency.
func (r Recipe) Currency() valueobject.Currency {
	if len(r.Lines) == 0 {
		return valueobject.DefaultCurrency
	}
	return r.Lines[0].UnitPrice.Currency()
}

// MaterialCost sums the cost of all lines.
// Lines must share a single currency; heterogeneous currencies are rejected
// rather than summed without conversion.
func (r Recipe) MaterialCost() (valueobject.Money, error) {
	total := valueobject.Zero(r.Currency())
	for _, line := range r.Lines {
		sum, err := total.Add(line.Cost())
		if err != nil {
			return valueobject.Money{}, shared.ErrCurrencyMismatch
		}
		total = sum
	}
	return total, nil
}
