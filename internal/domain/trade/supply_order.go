package trade

import (
	"time"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplyOrderStatus tracks a material purchase through receipt
type SupplyOrderStatus string

const (
	SupplyOrderStatusCreated  SupplyOrderStatus = "CREATED"
	SupplyOrderStatusOrdered  SupplyOrderStatus = "ORDERED"
	SupplyOrderStatusReceived SupplyOrderStatus = "RECEIVED"
)

// IsValid checks if the status is a known supply order status
func (s SupplyOrderStatus) IsValid() bool {
	switch s {
	case SupplyOrderStatusCreated, SupplyOrderStatusOrdered, SupplyOrderStatusReceived:
		return true
	}
	return false
}

// SupplyOrder is a purchase of raw material from a supplier. Only the RECEIVED
// status affects stock: the ledger adds the net received quantity on entry and
// subtracts the previously stored net on exit or deletion.
type SupplyOrder struct {
	shared.TenantAggregateRoot
	OrderNumber  string               `gorm:"size:50;not null;uniqueIndex:idx_supply_orders_tenant_number"`
	SupplierName string               `gorm:"size:200;not null"`
	MaterialID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	WasteAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	VatRate      decimal.Decimal      `gorm:"type:decimal(9,4);not null;default:0"`
	TotalPrice   decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	VatAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	GrandTotal   decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Status       SupplyOrderStatus    `gorm:"size:20;not null;default:'CREATED';index"`
}

// TableName returns the table name for GORM
func (SupplyOrder) TableName() string {
	return "supply_orders"
}

// NewSupplyOrder creates a new supply order in the CREATED status
func NewSupplyOrder(tenantID uuid.UUID, orderNumber, supplierName string, materialID uuid.UUID, quantity, wasteAmount, unitPrice, vatRate decimal.Decimal, currency valueobject.Currency) (*SupplyOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Supply order number cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}

	order := &SupplyOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		SupplierName:        supplierName,
		MaterialID:          materialID,
		Status:              SupplyOrderStatusCreated,
	}
	if err := order.UpdateTerms(quantity, wasteAmount, unitPrice, vatRate, currency); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateTerms changes the commercial terms and recalculates the derived
// amounts. TotalPrice, VatAmount and GrandTotal are never written directly;
// every mutation goes through this recalculation so the amount invariants
// hold after each write.
func (so *SupplyOrder) UpdateTerms(quantity, wasteAmount, unitPrice, vatRate decimal.Decimal, currency valueobject.Currency) error {
	if quantity.IsNegative() || quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Supply order quantity must be positive")
	}
	if wasteAmount.IsNegative() {
		return shared.NewDomainError("INVALID_WASTE", "Waste amount cannot be negative")
	}
	if wasteAmount.GreaterThan(quantity) {
		return shared.NewDomainError("INVALID_WASTE", "Waste amount cannot exceed quantity")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	so.Quantity = quantity
	so.WasteAmount = wasteAmount
	so.UnitPrice = unitPrice
	so.VatRate = vatRate
	so.Currency = currency
	so.recalculate()
	so.UpdatedAt = time.Now()
	so.IncrementVersion()

	return nil
}

func (so *SupplyOrder) recalculate() {
	hundred := decimal.NewFromInt(100)
	so.TotalPrice = so.Quantity.Mul(so.UnitPrice).RoundBank(2)
	so.VatAmount = so.TotalPrice.Mul(so.VatRate).Div(hundred).RoundBank(2)
	so.GrandTotal = so.TotalPrice.Add(so.VatAmount)
}

// NetQuantity is the stock-relevant quantity: received minus waste
func (so *SupplyOrder) NetQuantity() decimal.Decimal {
	return so.Quantity.Sub(so.WasteAmount)
}

// ChangeStatus moves the supply order to a new status. Transitions are
// free-form among the three statuses; the caller is responsible for applying
// the matching stock delta in the same transaction.
func (so *SupplyOrder) ChangeStatus(target SupplyOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown supply order status")
	}
	if so.Status == target {
		return nil
	}

	previous := so.Status
	so.Status = target
	so.UpdatedAt = time.Now()
	so.IncrementVersion()

	if target == SupplyOrderStatusReceived {
		so.AddDomainEvent(NewSupplyOrderReceivedEvent(so, previous))
	}

	return nil
}
