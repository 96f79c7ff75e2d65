package trade

import (
	"context"

	appinventory "github.com/atolye/backend/internal/application/inventory"
	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplyOrderService handles supply order operations. Every write that can
// move stock (status change, edit of a received order, deletion) runs its
// stock delta and the document write in one transaction, with the delta
// computed from the previously stored quantities.
type SupplyOrderService struct {
	supplyRepo     trade.SupplyOrderRepository
	scope          appinventory.TransactionScope
	ledger         *appinventory.StockLedgerService
	license        appinventory.LicenseGate
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSupplyOrderService creates a new SupplyOrderService
func NewSupplyOrderService(
	supplyRepo trade.SupplyOrderRepository,
	scope appinventory.TransactionScope,
	ledger *appinventory.StockLedgerService,
	license appinventory.LicenseGate,
	logger *zap.Logger,
) *SupplyOrderService {
	return &SupplyOrderService{
		supplyRepo: supplyRepo,
		scope:      scope,
		ledger:     ledger,
		license:    license,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SupplyOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *SupplyOrderService) publishDomainEvents(ctx context.Context, order *trade.SupplyOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

func stockState(order *trade.SupplyOrder) inventory.SupplyStockState {
	return inventory.SupplyStockState{
		Status:      order.Status,
		Quantity:    order.Quantity,
		WasteAmount: order.WasteAmount,
	}
}

// movementTypeFor picks the audit category for a supply transition delta
func movementTypeFor(prev, next inventory.SupplyStockState) inventory.MovementType {
	switch {
	case prev.Status != trade.SupplyOrderStatusReceived && next.Status == trade.SupplyOrderStatusReceived:
		return inventory.MovementSupplyReceipt
	case prev.Status == trade.SupplyOrderStatusReceived && next.Status != trade.SupplyOrderStatusReceived:
		return inventory.MovementSupplyReversal
	default:
		return inventory.MovementSupplyAdjustment
	}
}

// Create creates a new supply order. The initial CREATED status never
// touches stock.
func (s *SupplyOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplyOrderRequest) (*SupplyOrderResponse, error) {
	order, err := trade.NewSupplyOrder(tenantID, req.OrderNumber, req.SupplierName, req.MaterialID,
		req.Quantity, req.WasteAmount, req.UnitPrice, req.VatRate, currencyOrDefault(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.supplyRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("supply order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("supply_order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber))

	response := ToSupplyOrderResponse(order)
	return &response, nil
}

// Update changes the commercial terms. For a RECEIVED order the stock is
// adjusted by the difference between the new and old net quantities, computed
// from the stored values before the edit.
func (s *SupplyOrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateSupplyOrderRequest) (*SupplyOrderResponse, error) {
	var updated *trade.SupplyOrder
	err := s.scope.Execute(ctx, func(ctx context.Context, repos appinventory.TransactionalRepositories) error {
		order, err := repos.SupplyOrders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		prev := stockState(order)
		order.SupplierName = req.SupplierName
		if err := order.UpdateTerms(req.Quantity, req.WasteAmount, req.UnitPrice, req.VatRate, currencyOrDefault(req.Currency)); err != nil {
			return err
		}
		next := stockState(order)

		delta := inventory.SupplyTransitionDelta(prev, next)
		if !delta.IsZero() {
			if err := s.license.EnsureActive(ctx, tenantID); err != nil {
				return err
			}
			source := appinventory.MovementSource{
				Type: inventory.MovementSupplyAdjustment,
				Kind: "SupplyOrder",
				ID:   order.ID,
				Note: "received supply order " + order.OrderNumber + " edited",
			}
			if err := s.ledger.Apply(ctx, repos, tenantID, inventory.MaterialDelta{MaterialID: order.MaterialID, Delta: delta}, source); err != nil {
				return err
			}
		}

		if err := repos.SupplyOrders.SaveWithLock(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToSupplyOrderResponse(updated)
	return &response, nil
}

// ChangeStatus moves the supply order to a new status and applies the
// matching stock delta in the same transaction: entering RECEIVED adds the
// net quantity, leaving RECEIVED subtracts the previously stored net.
func (s *SupplyOrderService) ChangeStatus(ctx context.Context, tenantID, orderID uuid.UUID, req ChangeSupplyOrderStatusRequest) (*SupplyOrderResponse, error) {
	var changed *trade.SupplyOrder
	err := s.scope.Execute(ctx, func(ctx context.Context, repos appinventory.TransactionalRepositories) error {
		order, err := repos.SupplyOrders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		prev := stockState(order)
		if err := order.ChangeStatus(trade.SupplyOrderStatus(req.Status)); err != nil {
			return err
		}
		next := stockState(order)

		// re-submitting the current status leaves the aggregate untouched,
		// so there is nothing to lock or persist
		if next.Status == prev.Status {
			changed = order
			return nil
		}

		delta := inventory.SupplyTransitionDelta(prev, next)
		if !delta.IsZero() {
			if err := s.license.EnsureActive(ctx, tenantID); err != nil {
				return err
			}
			source := appinventory.MovementSource{
				Type: movementTypeFor(prev, next),
				Kind: "SupplyOrder",
				ID:   order.ID,
				Note: "supply order " + order.OrderNumber + ": " + string(prev.Status) + " to " + string(next.Status),
			}
			if err := s.ledger.Apply(ctx, repos, tenantID, inventory.MaterialDelta{MaterialID: order.MaterialID, Delta: delta}, source); err != nil {
				return err
			}
		}

		if err := repos.SupplyOrders.SaveWithLock(ctx, order); err != nil {
			return err
		}
		changed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("supply order status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("supply_order_id", changed.ID.String()),
		zap.String("status", string(changed.Status)))

	s.publishDomainEvents(ctx, changed)

	response := ToSupplyOrderResponse(changed)
	return &response, nil
}

// Delete removes a supply order. A RECEIVED order is reversed out of stock
// first; the reversal and the deletion commit together.
func (s *SupplyOrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(ctx context.Context, repos appinventory.TransactionalRepositories) error {
		order, err := repos.SupplyOrders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		delta := inventory.SupplyDeletionDelta(stockState(order))
		if !delta.IsZero() {
			if err := s.license.EnsureActive(ctx, tenantID); err != nil {
				return err
			}
			source := appinventory.MovementSource{
				Type: inventory.MovementSupplyReversal,
				Kind: "SupplyOrder",
				ID:   order.ID,
				Note: "supply order " + order.OrderNumber + " deleted",
			}
			if err := s.ledger.Apply(ctx, repos, tenantID, inventory.MaterialDelta{MaterialID: order.MaterialID, Delta: delta}, source); err != nil {
				return err
			}
		}

		return repos.SupplyOrders.DeleteForTenant(ctx, tenantID, orderID)
	})
}

// GetByID retrieves a supply order by ID
func (s *SupplyOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*SupplyOrderResponse, error) {
	order, err := s.supplyRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSupplyOrderResponse(order)
	return &response, nil
}

// List retrieves supply orders with filtering and pagination
func (s *SupplyOrderService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[SupplyOrderResponse], error) {
	result, err := s.supplyRepo.ListForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return shared.Paginated[SupplyOrderResponse]{}, err
	}

	items := make([]SupplyOrderResponse, 0, len(result.Items))
	for _, order := range result.Items {
		items = append(items, ToSupplyOrderResponse(order))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}
