package trade

import (
	"time"

	"github.com/atolye/backend/internal/domain/costing"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks a sales order through the production workflow.
// The statuses are the workflow stages the ateliers actually use.
type OrderStatus string

const (
	OrderStatusQuoteCreated   OrderStatus = "TEKLIF_OLUSTURULDU"
	OrderStatusQuoteSent      OrderStatus = "TEKLIF_ILETILDI"
	OrderStatusQuoteAccepted  OrderStatus = "TEKLIF_KABUL_EDILDI"
	OrderStatusProductionDone OrderStatus = "URETIM_YAPILDI"
	OrderStatusDelivered      OrderStatus = "TESLIMAT_YAPILDI"
	OrderStatusCancelled      OrderStatus = "IPTAL"
)

// IsValid checks if the status is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusQuoteCreated, OrderStatusQuoteSent, OrderStatusQuoteAccepted,
		OrderStatusProductionDone, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further workflow transition is expected
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if a transition to the target status is allowed.
// Transitions between workflow stages are free-form so an operator can move an
// order backwards to fix a mistake. The exceptions: a delivered order cannot
// be cancelled, and a cancelled order can only be reactivated to the initial
// quote stage.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	switch {
	case s == OrderStatusCancelled:
		return target == OrderStatusQuoteCreated
	case target == OrderStatusCancelled:
		return s != OrderStatusDelivered
	default:
		return true
	}
}

// Order is a single-product sales order. Pricing fields are snapshots taken
// when the order is created or updated; later edits to the product or its
// materials never change an existing order.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber  string               `gorm:"size:50;not null;uniqueIndex:idx_orders_tenant_number"`
	CustomerID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Quantity     int64                `gorm:"not null"`
	MarginType   costing.MarginType   `gorm:"size:10;not null"`
	MarginValue  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	BaseAmount   decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	ProfitAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	Status       OrderStatus          `gorm:"size:30;not null;default:'TEKLIF_OLUSTURULDU';index"`

	// Per-stage cost snapshots, informational only. They do not feed the
	// pricing cascade; the operator records them for post-hoc cost tracking.
	FabricPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CuttingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SewingPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IroningPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// StageCosts groups the informational per-stage cost snapshot fields
type StageCosts struct {
	FabricPrice   decimal.Decimal
	CuttingPrice  decimal.Decimal
	SewingPrice   decimal.Decimal
	IroningPrice  decimal.Decimal
	ShippingPrice decimal.Decimal
}

// NewOrder creates a new order, snapshotting the supplied unit price through
// the order pricing cascade.
func NewOrder(tenantID uuid.UUID, orderNumber string, customerID, productID uuid.UUID, unitPrice valueobject.Money, quantity int64, marginType costing.MarginType, marginValue decimal.Decimal, stageCosts StageCosts) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		ProductID:           productID,
		Status:              OrderStatusQuoteCreated,
	}
	if err := order.Reprice(unitPrice, quantity, marginType, marginValue, stageCosts); err != nil {
		return nil, err
	}
	order.ClearDomainEvents()
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// Reprice recomputes every pricing snapshot from the given inputs. Updates
// never patch individual amounts; the whole cascade runs again so the total
// invariant holds after every write.
func (o *Order) Reprice(unitPrice valueobject.Money, quantity int64, marginType costing.MarginType, marginValue decimal.Decimal, stageCosts StageCosts) error {
	pricing, err := costing.ComputeOrderPricing(unitPrice, quantity, marginType, marginValue)
	if err != nil {
		return err
	}

	o.Quantity = pricing.Quantity
	o.MarginType = marginType
	o.MarginValue = marginValue
	o.BaseAmount = pricing.BaseAmount.Amount()
	o.ProfitAmount = pricing.ProfitAmount.Amount()
	o.TotalAmount = pricing.TotalAmount.Amount()
	o.Currency = unitPrice.Currency()
	o.FabricPrice = stageCosts.FabricPrice
	o.CuttingPrice = stageCosts.CuttingPrice
	o.SewingPrice = stageCosts.SewingPrice
	o.IroningPrice = stageCosts.IroningPrice
	o.ShippingPrice = stageCosts.ShippingPrice
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ChangeStatus moves the order to a new workflow stage
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	previous := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// Cancel moves the order to the cancelled state
func (o *Order) Cancel() error {
	return o.ChangeStatus(OrderStatusCancelled)
}

// Reactivate returns a cancelled order to the initial quote stage
func (o *Order) Reactivate() error {
	if o.Status != OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only cancelled orders can be reactivated")
	}
	return o.ChangeStatus(OrderStatusQuoteCreated)
}
