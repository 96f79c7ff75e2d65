package inventory

import (
	"context"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType categorizes a stock movement by its origin
type MovementType string

const (
	MovementSupplyReceipt    MovementType = "SUPPLY_RECEIPT"    // supply order entered RECEIVED
	MovementSupplyReversal   MovementType = "SUPPLY_REVERSAL"   // supply order left RECEIVED or was deleted
	MovementSupplyAdjustment MovementType = "SUPPLY_ADJUSTMENT" // received supply order edited in place
	MovementOfferConsumption MovementType = "OFFER_CONSUMPTION" // offer accepted, recipe materials consumed
)

// IsValid checks if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementSupplyReceipt, MovementSupplyReversal, MovementSupplyAdjustment, MovementOfferConsumption:
		return true
	}
	return false
}

// StockMovement is the append-only audit record behind every stock delta.
// Movements are never updated or deleted; a correction is a new movement
// with the opposite sign.
type StockMovement struct {
	shared.BaseEntity
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Type       MovementType    `gorm:"size:30;not null;index"`
	SourceType string          `gorm:"size:30;not null"`
	SourceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Note       string          `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(tenantID, materialID uuid.UUID, quantity decimal.Decimal, movementType MovementType, sourceType string, sourceID uuid.UUID, note string) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown stock movement type")
	}
	if materialID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock movement quantity cannot be zero")
	}

	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		MaterialID: materialID,
		Quantity:   quantity,
		Type:       movementType,
		SourceType: sourceType,
		SourceID:   sourceID,
		Note:       note,
	}, nil
}

// StockMovementRepository defines the persistence interface for movements
type StockMovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	ListForMaterial(ctx context.Context, tenantID, materialID uuid.UUID, filter shared.Filter) (shared.Paginated[*StockMovement], error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*StockMovement], error)
}
