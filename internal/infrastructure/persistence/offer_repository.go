package persistence

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOfferRepository implements trade.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// Save persists the offer and replaces its item list wholesale
func (r *GormOfferRepository) Save(ctx context.Context, offer *trade.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(offer).Error; err != nil {
			return err
		}
		return replaceOfferItems(tx, offer)
	})
}

// SaveWithLock saves with optimistic locking on the aggregate version.
// The item replacement rides the same transaction as the version check, so a
// conflicting writer rolls both back.
func (r *GormOfferRepository) SaveWithLock(ctx context.Context, offer *trade.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&trade.Offer{}).
			Where("id = ? AND tenant_id = ? AND version = ?", offer.ID, offer.TenantID, offer.Version-1).
			Updates(map[string]interface{}{
				"customer_id":  offer.CustomerID,
				"total_amount": offer.TotalAmount,
				"currency":     offer.Currency,
				"status":       offer.Status,
				"accepted_at":  offer.AcceptedAt,
				"version":      offer.Version,
				"updated_at":   offer.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return replaceOfferItems(tx, offer)
	})
}

func replaceOfferItems(tx *gorm.DB, offer *trade.Offer) error {
	if err := tx.Where("offer_id = ?", offer.ID).Delete(&trade.OfferItem{}).Error; err != nil {
		return err
	}
	if len(offer.Items) == 0 {
		return nil
	}
	return tx.Create(&offer.Items).Error
}

// FindByIDForTenant finds an offer with its items within a tenant
func (r *GormOfferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Offer, error) {
	var offer trade.Offer
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// ListForTenant returns one page of the tenant's offers
func (r *GormOfferRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Offer], error) {
	query := r.db.WithContext(ctx).
		Model(&trade.Offer{}).
		Preload("Items").
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("offer_number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}

	return queryPage[trade.Offer](query, filter, "created_at", "updated_at", "offer_number", "total_amount", "status")
}

// DeleteForTenant deletes an offer and its items within a tenant
func (r *GormOfferRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&trade.Offer{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("offer_id = ?", id).Delete(&trade.OfferItem{}).Error
	})
}

var _ trade.OfferRepository = (*GormOfferRepository)(nil)
