package persistence

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists the product and replaces its recipe wholesale. Recipe lines
// and manual items carry no identity across updates: the stored set is always
// exactly what the aggregate holds.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.RecipeLine{}).Error; err != nil {
			return err
		}
		if len(product.Lines) > 0 {
			if err := tx.Create(&product.Lines).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.ManualRecipeItem{}).Error; err != nil {
			return err
		}
		if len(product.ManualItems) > 0 {
			if err := tx.Create(&product.ManualItems).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByIDForTenant finds a product with its recipe within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("ManualItems").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDsForTenant finds multiple products with their recipes within a tenant
func (r *GormProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}

	var products []*catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("ManualItems").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListForTenant returns one page of the tenant's products
func (r *GormProductRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Preload("Lines").
		Preload("ManualItems").
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", search, search)
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}

	return queryPage[catalog.Product](query, filter, "created_at", "updated_at", "name", "code")
}

// DeleteForTenant deletes a product and its recipe within a tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&catalog.Product{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("product_id = ?", id).Delete(&catalog.RecipeLine{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", id).Delete(&catalog.ManualRecipeItem{}).Error
	})
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
