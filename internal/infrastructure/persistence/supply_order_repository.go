package persistence

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplyOrderRepository implements trade.SupplyOrderRepository using GORM
type GormSupplyOrderRepository struct {
	db *gorm.DB
}

// NewGormSupplyOrderRepository creates a new GormSupplyOrderRepository
func NewGormSupplyOrderRepository(db *gorm.DB) *GormSupplyOrderRepository {
	return &GormSupplyOrderRepository{db: db}
}

// Save creates or updates a supply order
func (r *GormSupplyOrderRepository) Save(ctx context.Context, order *trade.SupplyOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormSupplyOrderRepository) SaveWithLock(ctx context.Context, order *trade.SupplyOrder) error {
	result := r.db.WithContext(ctx).
		Model(&trade.SupplyOrder{}).
		Where("id = ? AND tenant_id = ? AND version = ?", order.ID, order.TenantID, order.Version-1).
		Updates(map[string]interface{}{
			"supplier_name": order.SupplierName,
			"material_id":   order.MaterialID,
			"quantity":      order.Quantity,
			"waste_amount":  order.WasteAmount,
			"unit_price":    order.UnitPrice,
			"currency":      order.Currency,
			"vat_rate":      order.VatRate,
			"total_price":   order.TotalPrice,
			"vat_amount":    order.VatAmount,
			"grand_total":   order.GrandTotal,
			"status":        order.Status,
			"version":       order.Version,
			"updated_at":    order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByIDForTenant finds a supply order by ID within a tenant
func (r *GormSupplyOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.SupplyOrder, error) {
	var order trade.SupplyOrder
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

// ListForTenant returns one page of the tenant's supply orders
func (r *GormSupplyOrderRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.SupplyOrder], error) {
	query := r.db.WithContext(ctx).
		Model(&trade.SupplyOrder{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR supplier_name ILIKE ?", search, search)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if materialID, ok := filter.Filters["material_id"]; ok {
		query = query.Where("material_id = ?", materialID)
	}

	return queryPage[trade.SupplyOrder](query, filter, "created_at", "updated_at", "order_number", "grand_total", "status")
}

// DeleteForTenant deletes a supply order within a tenant
func (r *GormSupplyOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.SupplyOrder{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.SupplyOrderRepository = (*GormSupplyOrderRepository)(nil)
