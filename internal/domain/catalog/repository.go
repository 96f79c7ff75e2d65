package catalog

import (
	"context"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaterialRepository defines the persistence interface for materials
type MaterialRepository interface {
	Save(ctx context.Context, material *Material) error
	// SaveWithLock persists the material only if the stored version matches
	// the aggregate's pre-increment version. Returns ErrConcurrencyConflict
	// when another writer got there first.
	SaveWithLock(ctx context.Context, material *Material) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Material, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Material, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*Material], error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*Product, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
