package inventory

import (
	"context"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// TransactionalRepositories bundles every repository bound to one database
// transaction. A status change and its stock mutations always go through the
// same bundle so they commit or roll back together.
type TransactionalRepositories struct {
	Materials      catalog.MaterialRepository
	Products       catalog.ProductRepository
	Orders         trade.OrderRepository
	Offers         trade.OfferRepository
	SupplyOrders   trade.SupplyOrderRepository
	StockMovements inventory.StockMovementRepository
}

// TransactionScope runs a unit of work inside a single database transaction.
// The callback's error rolls everything back; a nil return commits.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the unit of work without a real transaction.
// Useful in tests, where the fake repositories have no transactional state.
type NoOpTransactionScope struct {
	repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos TransactionalRepositories) error) error {
	return fn(ctx, s.repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)

// LicenseGate checks the tenant's license before stock-mutating operations.
// The check is an opaque precondition: callers only learn active or not.
type LicenseGate interface {
	EnsureActive(ctx context.Context, tenantID uuid.UUID) error
}
