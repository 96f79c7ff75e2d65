package trade

import (
	"context"

	"github.com/atolye/backend/internal/domain/costing"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductPricer computes a product's current unit price through the cost
// cascade. Implemented by the catalog product service.
type ProductPricer interface {
	UnitPriceByID(ctx context.Context, tenantID, productID uuid.UUID) (valueobject.Money, error)
}

// OrderService handles sales order operations
type OrderService struct {
	orderRepo      trade.OrderRepository
	pricer         ProductPricer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, pricer ProductPricer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		pricer:    pricer,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *OrderService) publishDomainEvents(ctx context.Context, order *trade.Order) {
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

// Create creates a new order, snapshotting the product's current unit price
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	unitPrice, err := s.pricer.UnitPriceByID(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(tenantID, req.OrderNumber, req.CustomerID, req.ProductID,
		unitPrice, req.Quantity, costing.MarginType(req.MarginType), req.MarginValue, req.StageCosts.toDomain())
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.String()))

	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Update reprices the order from scratch: the product's current unit price is
// snapshotted again and the whole cascade reruns with the new inputs.
func (s *OrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := s.pricer.UnitPriceByID(ctx, tenantID, order.ProductID)
	if err != nil {
		return nil, err
	}

	if err := order.Reprice(unitPrice, req.Quantity, costing.MarginType(req.MarginType), req.MarginValue, req.StageCosts.toDomain()); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ChangeStatus moves the order to a new workflow stage
func (s *OrderService) ChangeStatus(ctx context.Context, tenantID, orderID uuid.UUID, req ChangeOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(trade.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))

	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[OrderResponse], error) {
	result, err := s.orderRepo.ListForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, 0, len(result.Items))
	for _, order := range result.Items {
		items = append(items, ToOrderResponse(order))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.orderRepo.DeleteForTenant(ctx, tenantID, orderID)
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
