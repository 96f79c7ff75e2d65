package trade

import (
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the trade context
const (
	EventTypeOrderCreated        = "trade.order.created"
	EventTypeOrderStatusChanged  = "trade.order.status_changed"
	EventTypeOfferAccepted       = "trade.offer.accepted"
	EventTypeSupplyOrderReceived = "trade.supply_order.received"
)

// OrderCreatedEvent is emitted when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderStatusChangedEvent is emitted on every order workflow transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string      `json:"order_number"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new order status changed event
func NewOrderStatusChangedEvent(order *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		PreviousStatus:  previous,
		NewStatus:       order.Status,
	}
}

// OfferAcceptedEvent is emitted exactly once per offer, on the transition
// into ACCEPTED.
type OfferAcceptedEvent struct {
	shared.BaseDomainEvent
	OfferNumber    string          `json:"offer_number"`
	PreviousStatus OfferStatus     `json:"previous_status"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewOfferAcceptedEvent creates a new offer accepted event
func NewOfferAcceptedEvent(offer *Offer, previous OfferStatus) *OfferAcceptedEvent {
	return &OfferAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferAccepted, "Offer", offer.ID, offer.TenantID),
		OfferNumber:     offer.OfferNumber,
		PreviousStatus:  previous,
		TotalAmount:     offer.TotalAmount,
	}
}

// SupplyOrderReceivedEvent is emitted when a supply order enters RECEIVED
type SupplyOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string            `json:"order_number"`
	PreviousStatus SupplyOrderStatus `json:"previous_status"`
	NetQuantity    decimal.Decimal   `json:"net_quantity"`
}

// NewSupplyOrderReceivedEvent creates a new supply order received event
func NewSupplyOrderReceivedEvent(order *SupplyOrder, previous SupplyOrderStatus) *SupplyOrderReceivedEvent {
	return &SupplyOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplyOrderReceived, "SupplyOrder", order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		PreviousStatus:  previous,
		NetQuantity:     order.NetQuantity(),
	}
}
