package inventory

import (
	"context"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
)

type fakeMaterialRepo struct {
	materials map[uuid.UUID]*catalog.Material
	// conflictsLeft makes the next N SaveWithLock calls fail with a
	// concurrency conflict before succeeding.
	conflictsLeft int
	saveCalls     int
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
	r.saveCalls++
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return shared.ErrConcurrencyConflict
	}
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
	items := make([]*catalog.Material, 0, len(r.materials))
	for _, material := range r.materials {
		if material.TenantID == tenantID {
			items = append(items, material)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeMaterialRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	if material, ok := r.materials[id]; ok && material.TenantID == tenantID {
		delete(r.materials, id)
		return nil
	}
	return shared.ErrNotFound
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

var (
	_ catalog.MaterialRepository        = (*fakeMaterialRepo)(nil)
	_ inventory.StockMovementRepository = (*fakeMovementRepo)(nil)
)
