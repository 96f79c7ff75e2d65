package inventory

import (
	"context"
	"time"

	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementResponse represents a stock movement in API responses
type StockMovementResponse struct {
	ID         uuid.UUID       `json:"id"`
	MaterialID uuid.UUID       `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Type       string          `json:"type"`
	SourceType string          `json:"source_type"`
	SourceID   uuid.UUID       `json:"source_id"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToStockMovementResponse maps a movement record to its response DTO
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Quantity:   m.Quantity,
		Type:       string(m.Type),
		SourceType: m.SourceType,
		SourceID:   m.SourceID,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
	}
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	MaterialID *uuid.UUID `form:"material_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockMovementService serves the read side of the stock ledger
type StockMovementService struct {
	movementRepo inventory.StockMovementRepository
}

// NewStockMovementService creates a new StockMovementService
func NewStockMovementService(movementRepo inventory.StockMovementRepository) *StockMovementService {
	return &StockMovementService{movementRepo: movementRepo}
}

// List retrieves stock movements, optionally narrowed to one material
func (s *StockMovementService) List(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) (shared.Paginated[StockMovementResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var result shared.Paginated[*inventory.StockMovement]
	var err error
	if filter.MaterialID != nil {
		result, err = s.movementRepo.ListForMaterial(ctx, tenantID, *filter.MaterialID, domainFilter)
	} else {
		result, err = s.movementRepo.ListForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return shared.Paginated[StockMovementResponse]{}, err
	}

	items := make([]StockMovementResponse, 0, len(result.Items))
	for _, movement := range result.Items {
		items = append(items, ToStockMovementResponse(movement))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}
