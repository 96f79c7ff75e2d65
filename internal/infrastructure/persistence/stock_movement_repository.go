package persistence

import (
	"context"

	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements inventory.StockMovementRepository
// using GORM. The table is append-only; there is no update or delete path.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a stock movement record
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// ListForMaterial returns one page of a material's movement history
func (r *GormStockMovementRepository) ListForMaterial(ctx context.Context, tenantID, materialID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockMovement], error) {
	query := r.movementQuery(ctx, tenantID, filter).
		Where("material_id = ?", materialID)
	return queryPage[inventory.StockMovement](query, filter, "created_at", "quantity", "type")
}

// ListForTenant returns one page of the tenant's movement history
func (r *GormStockMovementRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockMovement], error) {
	query := r.movementQuery(ctx, tenantID, filter)
	return queryPage[inventory.StockMovement](query, filter, "created_at", "quantity", "type")
}

func (r *GormStockMovementRepository) movementQuery(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ?", tenantID)

	if movementType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", movementType)
	}
	if sourceID, ok := filter.Filters["source_id"]; ok {
		query = query.Where("source_id = ?", sourceID)
	}
	return query
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
