package catalog

import (
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog context
const (
	EventTypeMaterialStockAdjusted = "catalog.material.stock_adjusted"
)

// MaterialStockAdjustedEvent is emitted whenever the stock ledger changes a
// material's stock balance.
type MaterialStockAdjustedEvent struct {
	shared.BaseDomainEvent
	MaterialName  string          `json:"material_name"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	Delta         decimal.Decimal `json:"delta"`
	NewStock      decimal.Decimal `json:"new_stock"`
}

// NewMaterialStockAdjustedEvent creates a new stock adjusted event
func NewMaterialStockAdjustedEvent(material *Material, previous, delta decimal.Decimal) *MaterialStockAdjustedEvent {
	return &MaterialStockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialStockAdjusted, "Material", material.ID, material.TenantID),
		MaterialName:    material.Name,
		PreviousStock:   previous,
		Delta:           delta,
		NewStock:        material.Stock,
	}
}
