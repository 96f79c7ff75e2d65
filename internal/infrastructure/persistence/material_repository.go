package persistence

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMaterialRepository implements catalog.MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// Save creates or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, material *catalog.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

// SaveWithLock saves with optimistic locking. The stored row must still carry
// the aggregate's pre-increment version; a zero-row update means another
// writer committed first.
func (r *GormMaterialRepository) SaveWithLock(ctx context.Context, material *catalog.Material) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Material{}).
		Where("id = ? AND tenant_id = ? AND version = ?", material.ID, material.TenantID, material.Version-1).
		Updates(map[string]interface{}{
			"name":       material.Name,
			"unit":       material.Unit,
			"price":      material.Price,
			"currency":   material.Currency,
			"stock":      material.Stock,
			"version":    material.Version,
			"updated_at": material.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByIDForTenant finds a material by ID within a tenant
func (r *GormMaterialRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Material, error) {
	var material catalog.Material
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindByIDsForTenant finds multiple materials by their IDs within a tenant
func (r *GormMaterialRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Material, error) {
	if len(ids) == 0 {
		return []*catalog.Material{}, nil
	}

	var materials []*catalog.Material
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// ListForTenant returns one page of the tenant's materials
func (r *GormMaterialRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Material], error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Material{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	return queryPage[catalog.Material](query, filter, "created_at", "updated_at", "name", "stock")
}

// DeleteForTenant deletes a material within a tenant
func (r *GormMaterialRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Material{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.MaterialRepository = (*GormMaterialRepository)(nil)
