package persistence

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ? AND tenant_id = ? AND version = ?", order.ID, order.TenantID, order.Version-1).
		Updates(map[string]interface{}{
			"customer_id":    order.CustomerID,
			"product_id":     order.ProductID,
			"quantity":       order.Quantity,
			"margin_type":    order.MarginType,
			"margin_value":   order.MarginValue,
			"base_amount":    order.BaseAmount,
			"profit_amount":  order.ProfitAmount,
			"total_amount":   order.TotalAmount,
			"currency":       order.Currency,
			"status":         order.Status,
			"fabric_price":   order.FabricPrice,
			"cutting_price":  order.CuttingPrice,
			"sewing_price":   order.SewingPrice,
			"ironing_price":  order.IroningPrice,
			"shipping_price": order.ShippingPrice,
			"version":        order.Version,
			"updated_at":     order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListForTenant returns one page of the tenant's orders
func (r *GormOrderRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	query := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}

	return queryPage[trade.Order](query, filter, "created_at", "updated_at", "order_number", "total_amount", "status")
}

// DeleteForTenant deletes an order within a tenant
func (r *GormOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Order{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
