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
)

type fakeMaterialRepo struct {
	materials map[uuid.UUID]*catalog.Material
}

func newFakeMaterialRepo(materials ...*catalog.Material) *fakeMaterialRepo {
	repo := &fakeMaterialRepo{materials: make(map[uuid.UUID]*catalog.Material)}
	for _, m := range materials {
		repo.materials[m.ID] = m
	}
	return repo
}

func (r *fakeMaterialRepo) Save(_ context.Context, material *catalog.Material) error {
	r.materials[material.ID] = material
	return nil
}

func (r *fakeMaterialRepo) SaveWithLock(_ context.Context, material *catalog.Material) error {
	r.materials[material.ID] = material
	return nil
}

func (r *fakeMaterialRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Material, error) {
	material, ok := r.materials[id]
	if !ok || material.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return material, nil
}

func (r *fakeMaterialRepo) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Material, error) {
	found := make([]*catalog.Material, 0, len(ids))
	for _, id := range ids {
		if material, ok := r.materials[id]; ok && material.TenantID == tenantID {
			found = append(found, material)
		}
	}
	return found, nil
}

func (r *fakeMaterialRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Material], error) {
	items := make([]*catalog.Material, 0)
	for _, material := range r.materials {
		if material.TenantID == tenantID {
			items = append(items, material)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeMaterialRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo(products ...*catalog.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok || product.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*catalog.Product, error) {
	found := make([]*catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.TenantID == tenantID {
			found = append(found, product)
		}
	}
	return found, nil
}

func (r *fakeProductRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	items := make([]*catalog.Product, 0)
	for _, product := range r.products {
		if product.TenantID == tenantID {
			items = append(items, product)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeProductRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*trade.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*trade.Order)}
}

func (r *fakeOrderRepo) Save(_ context.Context, order *trade.Order) error {
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

// SaveWithLock mirrors the optimistic predicate of the real repository: the
// stored version must be exactly one behind the incoming aggregate.
func (r *fakeOrderRepo) SaveWithLock(_ context.Context, order *trade.Order) error {
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != order.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeOrderRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	order, ok := r.orders[id]
	if !ok || order.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Order], error) {
	items := make([]*trade.Order, 0)
	for _, order := range r.orders {
		if order.TenantID == tenantID {
			items = append(items, order)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeOrderRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

type fakeOfferRepo struct {
	offers map[uuid.UUID]*trade.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[uuid.UUID]*trade.Offer)}
}

func (r *fakeOfferRepo) Save(_ context.Context, offer *trade.Offer) error {
	clone := *offer
	r.offers[offer.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) SaveWithLock(_ context.Context, offer *trade.Offer) error {
	stored, ok := r.offers[offer.ID]
	if !ok || stored.Version != offer.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	clone := *offer
	r.offers[offer.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.Offer, error) {
	offer, ok := r.offers[id]
	if !ok || offer.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	clone := *offer
	return &clone, nil
}

func (r *fakeOfferRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.Offer], error) {
	items := make([]*trade.Offer, 0)
	for _, offer := range r.offers {
		if offer.TenantID == tenantID {
			items = append(items, offer)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeOfferRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	delete(r.offers, id)
	return nil
}

type fakeSupplyOrderRepo struct {
	orders map[uuid.UUID]*trade.SupplyOrder
}

func newFakeSupplyOrderRepo() *fakeSupplyOrderRepo {
	return &fakeSupplyOrderRepo{orders: make(map[uuid.UUID]*trade.SupplyOrder)}
}

func (r *fakeSupplyOrderRepo) Save(_ context.Context, order *trade.SupplyOrder) error {
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeSupplyOrderRepo) SaveWithLock(_ context.Context, order *trade.SupplyOrder) error {
	stored, ok := r.orders[order.ID]
	if !ok || stored.Version != order.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *fakeSupplyOrderRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*trade.SupplyOrder, error) {
	order, ok := r.orders[id]
	if !ok || order.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeSupplyOrderRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*trade.SupplyOrder], error) {
	items := make([]*trade.SupplyOrder, 0)
	for _, order := range r.orders {
		if order.TenantID == tenantID {
			items = append(items, order)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeSupplyOrderRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*inventory.StockMovement
}

func (r *fakeMovementRepo) Save(_ context.Context, movement *inventory.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeMovementRepo) ListForMaterial(_ context.Context, tenantID, materialID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockMovement], error) {
	items := make([]*inventory.StockMovement, 0)
	for _, movement := range r.movements {
		if movement.TenantID == tenantID && movement.MaterialID == materialID {
			items = append(items, movement)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeMovementRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[*inventory.StockMovement], error) {
	items := make([]*inventory.StockMovement, 0)
	for _, movement := range r.movements {
		if movement.TenantID == tenantID {
			items = append(items, movement)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

type fakeLicenseGate struct {
	err   error
	calls int
}

func (g *fakeLicenseGate) EnsureActive(_ context.Context, _ uuid.UUID) error {
	g.calls++
	return g.err
}

type fakePricer struct {
	prices map[uuid.UUID]valueobject.Money
}

func (p *fakePricer) UnitPriceByID(_ context.Context, _ uuid.UUID, productID uuid.UUID) (valueobject.Money, error) {
	price, ok := p.prices[productID]
	if !ok {
		return valueobject.Money{}, shared.ErrReferenceNotFound
	}
	return price, nil
}

var (
	_ catalog.MaterialRepository        = (*fakeMaterialRepo)(nil)
	_ catalog.ProductRepository         = (*fakeProductRepo)(nil)
	_ trade.OrderRepository             = (*fakeOrderRepo)(nil)
	_ trade.OfferRepository             = (*fakeOfferRepo)(nil)
	_ trade.SupplyOrderRepository       = (*fakeSupplyOrderRepo)(nil)
	_ inventory.StockMovementRepository = (*fakeMovementRepo)(nil)
	_ appinventory.LicenseGate          = (*fakeLicenseGate)(nil)
	_ ProductPricer                     = (*fakePricer)(nil)
)
