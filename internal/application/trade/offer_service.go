package trade

import (
	"context"

	appinventory "github.com/atolye/backend/internal/application/inventory"
	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OfferService handles price offer operations. Acceptance is the critical
// path: the status write and the material consumption run in one transaction
// so stock can never drift from the offer's state.
type OfferService struct {
	offerRepo      trade.OfferRepository
	scope          appinventory.TransactionScope
	ledger         *appinventory.StockLedgerService
	license        appinventory.LicenseGate
	pricer         ProductPricer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo trade.OfferRepository,
	scope appinventory.TransactionScope,
	ledger *appinventory.StockLedgerService,
	license appinventory.LicenseGate,
	pricer ProductPricer,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		scope:     scope,
		ledger:    ledger,
		license:   license,
		pricer:    pricer,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OfferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *OfferService) publishDomainEvents(ctx context.Context, offer *trade.Offer) {
	if s.eventPublisher == nil {
		return
	}
	events := offer.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	offer.ClearDomainEvents()
}

// buildItems turns request lines into offer items, defaulting any omitted
// unit price from the product's current cost cascade.
func (s *OfferService) buildItems(ctx context.Context, tenantID uuid.UUID, requests []OfferItemRequest) ([]trade.OfferItem, error) {
	items := make([]trade.OfferItem, 0, len(requests))
	for _, req := range requests {
		var unitPrice decimal.Decimal
		currency := valueobject.DefaultCurrency
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		} else {
			price, err := s.pricer.UnitPriceByID(ctx, tenantID, req.ProductID)
			if err != nil {
				return nil, err
			}
			unitPrice = price.Amount()
			currency = price.Currency()
		}
		items = append(items, trade.OfferItem{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
			Currency:  currency,
		})
	}
	return items, nil
}

// Create creates a new draft offer
func (s *OfferService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error) {
	offer, err := trade.NewOffer(tenantID, req.OfferNumber, req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, tenantID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := offer.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info("offer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("offer_id", offer.ID.String()),
		zap.String("offer_number", offer.OfferNumber))

	response := ToOfferResponse(offer)
	return &response, nil
}

// Update replaces the offer's items and recomputes its totals
func (s *OfferService) Update(ctx context.Context, tenantID, offerID uuid.UUID, req UpdateOfferRequest) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, tenantID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := offer.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	response := ToOfferResponse(offer)
	return &response, nil
}

// ChangeStatus moves the offer to a new status. The transition into ACCEPTED
// consumes recipe materials: the license gate runs first, then the status
// write, the stock deltas and the movement rows commit atomically. The
// aggregate rejects any transition out of ACCEPTED, so consumption fires
// exactly once per offer and is never reversed.
func (s *OfferService) ChangeStatus(ctx context.Context, tenantID, offerID uuid.UUID, req ChangeOfferStatusRequest) (*OfferResponse, error) {
	target := trade.OfferStatus(req.Status)

	if target != trade.OfferStatusAccepted {
		offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
		if err != nil {
			return nil, err
		}
		previous := offer.Status
		if err := offer.ChangeStatus(target); err != nil {
			return nil, err
		}
		// same-status re-submissions leave the aggregate untouched, skip the save
		if offer.Status != previous {
			if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
				return nil, err
			}
		}
		response := ToOfferResponse(offer)
		return &response, nil
	}

	if err := s.license.EnsureActive(ctx, tenantID); err != nil {
		return nil, err
	}

	var accepted *trade.Offer
	err := s.scope.Execute(ctx, func(ctx context.Context, repos appinventory.TransactionalRepositories) error {
		offer, err := repos.Offers.FindByIDForTenant(ctx, tenantID, offerID)
		if err != nil {
			return err
		}
		if err := offer.ChangeStatus(trade.OfferStatusAccepted); err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(offer.Items))
		for _, item := range offer.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := repos.Products.FindByIDsForTenant(ctx, tenantID, productIDs)
		if err != nil {
			return err
		}
		productsByID := make(map[uuid.UUID]*catalog.Product, len(products))
		for _, product := range products {
			productsByID[product.ID] = product
		}
		deltas, err := inventory.OfferAcceptanceDeltas(offer.Items, productsByID)
		if err != nil {
			return err
		}

		source := appinventory.MovementSource{
			Type: inventory.MovementOfferConsumption,
			Kind: "Offer",
			ID:   offer.ID,
			Note: "offer " + offer.OfferNumber + " accepted",
		}
		if err := s.ledger.ApplyAll(ctx, repos, tenantID, deltas, source); err != nil {
			return err
		}

		if err := repos.Offers.SaveWithLock(ctx, offer); err != nil {
			return err
		}

		accepted = offer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("offer accepted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("offer_id", accepted.ID.String()),
		zap.String("offer_number", accepted.OfferNumber))

	s.publishDomainEvents(ctx, accepted)

	response := ToOfferResponse(accepted)
	return &response, nil
}

// GetByID retrieves an offer by ID
func (s *OfferService) GetByID(ctx context.Context, tenantID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByIDForTenant(ctx, tenantID, offerID)
	if err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer)
	return &response, nil
}

// List retrieves offers with filtering and pagination
func (s *OfferService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[OfferResponse], error) {
	result, err := s.offerRepo.ListForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return shared.Paginated[OfferResponse]{}, err
	}

	items := make([]OfferResponse, 0, len(result.Items))
	for _, offer := range result.Items {
		items = append(items, ToOfferResponse(offer))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// Delete removes an offer
func (s *OfferService) Delete(ctx context.Context, tenantID, offerID uuid.UUID) error {
	return s.offerRepo.DeleteForTenant(ctx, tenantID, offerID)
}
