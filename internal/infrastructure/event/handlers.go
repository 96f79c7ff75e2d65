package event

import (
	"context"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// AuditLogHandler writes a structured audit line for the domain events that
// matter operationally: order lifecycle, offer acceptance and stock receipts.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler subscribes to
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderStatusChanged,
		trade.EventTypeOfferAccepted,
		trade.EventTypeSupplyOrderReceived,
		catalog.EventTypeMaterialStockAdjusted,
	}
}

// Handle logs the event with type-specific fields
func (h *AuditLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("tenant_id", event.TenantID().String()),
	}

	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("total_amount", e.TotalAmount.String()))
	case *trade.OrderStatusChangedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("previous_status", string(e.PreviousStatus)),
			zap.String("new_status", string(e.NewStatus)))
	case *trade.OfferAcceptedEvent:
		fields = append(fields,
			zap.String("offer_number", e.OfferNumber),
			zap.String("total_amount", e.TotalAmount.String()))
	case *trade.SupplyOrderReceivedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("net_quantity", e.NetQuantity.String()))
	case *catalog.MaterialStockAdjustedEvent:
		fields = append(fields,
			zap.String("material_name", e.MaterialName),
			zap.String("delta", e.Delta.String()),
			zap.String("new_stock", e.NewStock.String()))
	}

	h.logger.Info("domain event", fields...)
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
