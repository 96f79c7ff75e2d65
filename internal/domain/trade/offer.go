package trade

import (
	"time"

	"github.com/atolye/backend/internal/domain/costing"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus tracks a price offer's lifecycle
type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "DRAFT"
	OfferStatusSent     OfferStatus = "SENT"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

// IsValid checks if the status is a known offer status
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusDraft, OfferStatusSent, OfferStatusAccepted, OfferStatusRejected:
		return true
	}
	return false
}

// OfferItem is one product line of an offer. UnitPrice defaults from the
// product cost cascade but the operator may override it; TotalPrice is always
// derived, never set by the caller.
type OfferItem struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OfferID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Quantity   int64                `gorm:"not null"`
	UnitPrice  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	TotalPrice decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency   valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (OfferItem) TableName() string {
	return "offer_items"
}

// Offer is a multi-line price offer. On acceptance the stock ledger consumes
// the recipe materials of every offered product; the ACCEPTED status is
// terminal so that consumption can never fire twice for one offer.
type Offer struct {
	shared.TenantAggregateRoot
	OfferNumber string               `gorm:"size:50;not null;uniqueIndex:idx_offers_tenant_number"`
	CustomerID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	Status      OfferStatus          `gorm:"size:20;not null;default:'DRAFT';index"`
	AcceptedAt  *time.Time

	Items []OfferItem `gorm:"foreignKey:OfferID;references:ID"`
}

// TableName returns the table name for GORM
func (Offer) TableName() string {
	return "offers"
}

// NewOffer creates a new draft offer
func NewOffer(tenantID uuid.UUID, offerNumber string, customerID uuid.UUID) (*Offer, error) {
	if offerNumber == "" {
		return nil, shared.NewDomainError("INVALID_OFFER_NUMBER", "Offer number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Offer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OfferNumber:         offerNumber,
		CustomerID:          customerID,
		TotalAmount:         decimal.Zero,
		Currency:            valueobject.DefaultCurrency,
		Status:              OfferStatusDraft,
		Items:               make([]OfferItem, 0),
	}, nil
}

// IsAccepted reports whether the offer has been accepted
func (o *Offer) IsAccepted() bool {
	return o.Status == OfferStatusAccepted
}

// ReplaceItems swaps the offer's item list and recomputes every line total and
// the offer total through the offer pricing cascade. Only allowed while the
// offer is still open.
func (o *Offer) ReplaceItems(items []OfferItem) error {
	if o.IsAccepted() {
		return shared.NewDomainError("OFFER_ACCEPTED", "Accepted offers cannot be modified")
	}

	lines := make([]costing.OfferLine, 0, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", "Offer item product ID cannot be empty")
		}
		unitPrice, err := valueobject.NewMoney(item.UnitPrice, item.Currency)
		if err != nil {
			return err
		}
		lines = append(lines, costing.OfferLine{Quantity: item.Quantity, UnitPrice: unitPrice})
	}

	total, err := costing.ComputeOfferTotal(lines)
	if err != nil {
		return err
	}

	now := time.Now()
	replaced := make([]OfferItem, 0, len(items))
	for i, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
			item.CreatedAt = now
		}
		item.OfferID = o.ID
		item.TotalPrice = total.LineTotals[i].Amount()
		item.UpdatedAt = now
		replaced = append(replaced, item)
	}

	o.Items = replaced
	o.TotalAmount = total.TotalAmount.Amount()
	o.Currency = total.TotalAmount.Currency()
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// ChangeStatus moves the offer to a new status. ACCEPTED is terminal; an
// accepted offer rejects every further transition so material consumption
// cannot run twice and is never reversed.
func (o *Offer) ChangeStatus(target OfferStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown offer status")
	}
	if o.IsAccepted() {
		return shared.NewDomainError("OFFER_ACCEPTED", "Accepted offers cannot change status")
	}
	if o.Status == target {
		return nil
	}

	previous := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	if target == OfferStatusAccepted {
		now := time.Now()
		o.AcceptedAt = &now
		o.AddDomainEvent(NewOfferAcceptedEvent(o, previous))
	}

	return nil
}
