package inventory

import (
	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplyStockState is the stock-relevant snapshot of a supply order: its
// status plus the quantities the ledger math runs on. Transitions are always
// evaluated against the previously stored values, not the incoming ones, so
// an edit that changes quantity and status at once still reverses exactly
// what was added before.
type SupplyStockState struct {
	Status      trade.SupplyOrderStatus
	Quantity    decimal.Decimal
	WasteAmount decimal.Decimal
}

// Net returns the stock-relevant quantity: received minus waste
func (s SupplyStockState) Net() decimal.Decimal {
	return s.Quantity.Sub(s.WasteAmount)
}

func (s SupplyStockState) received() bool {
	return s.Status == trade.SupplyOrderStatusReceived
}

// SupplyTransitionDelta returns the signed stock adjustment for a supply
// order moving from prev to next:
//
//	into RECEIVED        ⇒ +next.Net()
//	out of RECEIVED      ⇒ -prev.Net()
//	RECEIVED → RECEIVED  ⇒ next.Net() - prev.Net() (an edit of a received order)
//	otherwise            ⇒ 0
//
// The function is pure; applying it for a transition and then for the exact
// reverse transition nets out to zero.
func SupplyTransitionDelta(prev, next SupplyStockState) decimal.Decimal {
	switch {
	case !prev.received() && next.received():
		return next.Net()
	case prev.received() && !next.received():
		return prev.Net().Neg()
	case prev.received() && next.received():
		return next.Net().Sub(prev.Net())
	default:
		return decimal.Zero
	}
}

// SupplyDeletionDelta returns the signed stock adjustment for deleting a
// supply order: a RECEIVED order is reversed first, anything else is
// stock-neutral.
func SupplyDeletionDelta(prev SupplyStockState) decimal.Decimal {
	if prev.received() {
		return prev.Net().Neg()
	}
	return decimal.Zero
}

// MaterialDelta is one signed stock adjustment for a material
type MaterialDelta struct {
	MaterialID uuid.UUID
	Delta      decimal.Decimal
}

// OfferAcceptanceDeltas computes the material consumption for an offer
// entering ACCEPTED: for every item, orderedQty times each catalog recipe
// line quantity of the item's product, summed per material. Waste is not
// applied here; acceptance consumes the nominal recipe quantities. Manual
// recipe items reference no stocked material and are skipped. A missing
// product aborts the whole computation.
func OfferAcceptanceDeltas(items []trade.OfferItem, productsByID map[uuid.UUID]*catalog.Product) ([]MaterialDelta, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)

	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, shared.ErrReferenceNotFound
		}

		orderedQty := decimal.NewFromInt(item.Quantity)
		for _, line := range product.Lines {
			consumed := orderedQty.Mul(line.Quantity)
			if _, seen := totals[line.MaterialID]; !seen {
				order = append(order, line.MaterialID)
			}
			totals[line.MaterialID] = totals[line.MaterialID].Sub(consumed)
		}
	}

	deltas := make([]MaterialDelta, 0, len(order))
	for _, materialID := range order {
		deltas = append(deltas, MaterialDelta{MaterialID: materialID, Delta: totals[materialID]})
	}
	return deltas, nil
}
