package catalog

import (
	"time"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material represents a raw material in the tenant's catalog.
// Stock is a running ledger balance: it is mutated only by stock ledger
// operations (supply receipts and offer acceptances), never set directly.
// A negative balance is representable and means oversold inventory.
type Material struct {
	shared.TenantAggregateRoot
	Name     string               `gorm:"size:200;not null"`
	Unit     string               `gorm:"size:20;not null"`
	Price    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	Stock    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a new material for a tenant
func NewMaterial(tenantID uuid.UUID, name, unit string, price decimal.Decimal, currency valueobject.Currency) (*Material, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Material unit cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Material price cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	return &Material{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Unit:                unit,
		Price:               price,
		Currency:            currency,
		Stock:               decimal.Zero,
	}, nil
}

// Update changes the material's descriptive fields. Stock is untouched.
func (m *Material) Update(name, unit string, price decimal.Decimal, currency valueobject.Currency) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Material unit cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Material price cannot be negative")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	m.Name = name
	m.Unit = unit
	m.Price = price
	m.Currency = currency
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// ApplyStockDelta applies a signed ledger adjustment to the stock balance.
// A zero delta is a no-op. The resulting balance may go negative; the ledger
// represents oversold inventory rather than rejecting it.
func (m *Material) ApplyStockDelta(delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	previous := m.Stock
	m.Stock = m.Stock.Add(delta)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMaterialStockAdjustedEvent(m, previous, delta))
}

// PriceMoney returns the unit price as a Money value object
func (m *Material) PriceMoney() valueobject.Money {
	money, _ := valueobject.NewMoney(m.Price, m.Currency)
	return money
}
