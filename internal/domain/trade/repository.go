package trade

import (
	"context"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// OfferRepository defines the persistence interface for offers
type OfferRepository interface {
	Save(ctx context.Context, offer *Offer) error
	SaveWithLock(ctx context.Context, offer *Offer) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Offer, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*Offer], error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// SupplyOrderRepository defines the persistence interface for supply orders
type SupplyOrderRepository interface {
	Save(ctx context.Context, order *SupplyOrder) error
	SaveWithLock(ctx context.Context, order *SupplyOrder) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SupplyOrder, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*SupplyOrder], error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
