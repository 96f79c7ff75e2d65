package persistence

import (
	"context"

	appinventory "github.com/atolye/backend/internal/application/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scope using GORM
// transactions. Every repository handed to the callback is bound to the same
// transaction, so a status change and its stock mutations commit atomically.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. An error from
// the function rolls the transaction back; a nil return commits it.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context, repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewTransactionalRepositories(tx))
	})
}

// NewTransactionalRepositories builds the repository bundle over one DB handle
func NewTransactionalRepositories(db *gorm.DB) appinventory.TransactionalRepositories {
	return appinventory.TransactionalRepositories{
		Materials:      NewGormMaterialRepository(db),
		Products:       NewGormProductRepository(db),
		Orders:         NewGormOrderRepository(db),
		Offers:         NewGormOfferRepository(db),
		SupplyOrders:   NewGormSupplyOrderRepository(db),
		StockMovements: NewGormStockMovementRepository(db),
	}
}

var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)
