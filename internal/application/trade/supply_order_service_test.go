package trade

import (
	"context"
	"testing"

	appinventory "github.com/atolye/backend/internal/application/inventory"
	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type supplyServiceFixture struct {
	service      *SupplyOrderService
	supplyRepo   *fakeSupplyOrderRepo
	movementRepo *fakeMovementRepo
	license      *fakeLicenseGate
	tenantID     uuid.UUID
	material     *catalog.Material
}

func newSupplyServiceFixture(t *testing.T) *supplyServiceFixture {
	t.Helper()

	tenantID := uuid.New()
	material, err := catalog.NewMaterial(tenantID, "Fabric", "m", decimal.NewFromInt(10), valueobject.TRY)
	require.NoError(t, err)
	material.ApplyStockDelta(decimal.NewFromInt(50))
	material.ClearDomainEvents()

	materialRepo := newFakeMaterialRepo(material)
	supplyRepo := newFakeSupplyOrderRepo()
	movementRepo := &fakeMovementRepo{}
	license := &fakeLicenseGate{}

	scope := appinventory.NewNoOpTransactionScope(appinventory.TransactionalRepositories{
		Materials:      materialRepo,
		SupplyOrders:   supplyRepo,
		StockMovements: movementRepo,
	})
	ledger := appinventory.NewStockLedgerService(zap.NewNop())

	return &supplyServiceFixture{
		service:      NewSupplyOrderService(supplyRepo, scope, ledger, license, zap.NewNop()),
		supplyRepo:   supplyRepo,
		movementRepo: movementRepo,
		license:      license,
		tenantID:     tenantID,
		material:     material,
	}
}

func (f *supplyServiceFixture) createSupplyOrder(t *testing.T) *SupplyOrderResponse {
	t.Helper()
	response, err := f.service.Create(context.Background(), f.tenantID, CreateSupplyOrderRequest{
		OrderNumber:  "SUP-001",
		SupplierName: "Kumaşçı A.Ş.",
		MaterialID:   f.material.ID,
		Quantity:     decimal.NewFromInt(100),
		WasteAmount:  decimal.NewFromInt(5),
		UnitPrice:    decimal.NewFromInt(12),
		VatRate:      decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return response
}

func (f *supplyServiceFixture) changeStatus(t *testing.T, orderID uuid.UUID, status string) *SupplyOrderResponse {
	t.Helper()
	response, err := f.service.ChangeStatus(context.Background(), f.tenantID, orderID,
		ChangeSupplyOrderStatusRequest{Status: status})
	require.NoError(t, err)
	return response
}

func TestSupplyOrderService_Create(t *testing.T) {
	f := newSupplyServiceFixture(t)
	response := f.createSupplyOrder(t)

	assert.Equal(t, "CREATED", response.Status)
	assert.Equal(t, "1440", response.GrandTotal.String())
	// creation never touches stock
	assert.Equal(t, "50", f.material.Stock.String())
	assert.Empty(t, f.movementRepo.movements)
}

func TestSupplyOrderService_ChangeStatus(t *testing.T) {
	t.Run("receipt adds net quantity", func(t *testing.T) {
		// 50 + (100 - 5) = 145
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		f.changeStatus(t, order.ID, "ORDERED")
		assert.Equal(t, "50", f.material.Stock.String())

		f.changeStatus(t, order.ID, "RECEIVED")
		assert.Equal(t, "145", f.material.Stock.String())

		require.Len(t, f.movementRepo.movements, 1)
		assert.Equal(t, inventory.MovementSupplyReceipt, f.movementRepo.movements[0].Type)
		assert.Equal(t, "95", f.movementRepo.movements[0].Quantity.String())
		assert.Equal(t, 1, f.license.calls)
	})

	t.Run("leaving received reverses the stored net", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		f.changeStatus(t, order.ID, "RECEIVED")
		f.changeStatus(t, order.ID, "ORDERED")

		assert.Equal(t, "50", f.material.Stock.String())
		require.Len(t, f.movementRepo.movements, 2)
		assert.Equal(t, inventory.MovementSupplyReversal, f.movementRepo.movements[1].Type)
		assert.Equal(t, "-95", f.movementRepo.movements[1].Quantity.String())
	})

	t.Run("neutral transition skips license and stock", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		f.changeStatus(t, order.ID, "ORDERED")
		assert.Zero(t, f.license.calls)
		assert.Empty(t, f.movementRepo.movements)
	})

	t.Run("re-submitting the current status is a no-op", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		response := f.changeStatus(t, order.ID, "CREATED")
		assert.Equal(t, "CREATED", response.Status)
		assert.Empty(t, f.movementRepo.movements)
		assert.Zero(t, f.license.calls)
	})

	t.Run("re-submitting received leaves stock alone", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)
		f.changeStatus(t, order.ID, "RECEIVED")
		require.Equal(t, "145", f.material.Stock.String())

		response := f.changeStatus(t, order.ID, "RECEIVED")
		assert.Equal(t, "RECEIVED", response.Status)
		assert.Equal(t, "145", f.material.Stock.String())
		assert.Len(t, f.movementRepo.movements, 1)
	})

	t.Run("inactive license blocks receipt", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		f.license.err = shared.ErrLicenseInactive
		order := f.createSupplyOrder(t)

		_, err := f.service.ChangeStatus(context.Background(), f.tenantID, order.ID,
			ChangeSupplyOrderStatusRequest{Status: "RECEIVED"})
		assert.ErrorIs(t, err, shared.ErrLicenseInactive)
		assert.Equal(t, "50", f.material.Stock.String())
	})
}

func TestSupplyOrderService_Update(t *testing.T) {
	t.Run("editing a received order applies the net difference", func(t *testing.T) {
		// 145 + ((120-5) - (100-5)) = 165
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)
		f.changeStatus(t, order.ID, "RECEIVED")
		require.Equal(t, "145", f.material.Stock.String())

		response, err := f.service.Update(context.Background(), f.tenantID, order.ID, UpdateSupplyOrderRequest{
			SupplierName: "Kumaşçı A.Ş.",
			Quantity:     decimal.NewFromInt(120),
			WasteAmount:  decimal.NewFromInt(5),
			UnitPrice:    decimal.NewFromInt(12),
			VatRate:      decimal.NewFromInt(20),
		})
		require.NoError(t, err)

		assert.Equal(t, "165", f.material.Stock.String())
		assert.Equal(t, "115", response.NetQuantity.String())

		last := f.movementRepo.movements[len(f.movementRepo.movements)-1]
		assert.Equal(t, inventory.MovementSupplyAdjustment, last.Type)
		assert.Equal(t, "20", last.Quantity.String())
	})

	t.Run("editing an unreceived order is stock-neutral", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		_, err := f.service.Update(context.Background(), f.tenantID, order.ID, UpdateSupplyOrderRequest{
			SupplierName: "Kumaşçı A.Ş.",
			Quantity:     decimal.NewFromInt(500),
			WasteAmount:  decimal.Zero,
			UnitPrice:    decimal.NewFromInt(12),
			VatRate:      decimal.NewFromInt(20),
		})
		require.NoError(t, err)

		assert.Equal(t, "50", f.material.Stock.String())
		assert.Empty(t, f.movementRepo.movements)
	})
}

func TestSupplyOrderService_Delete(t *testing.T) {
	t.Run("deleting a received order reverses first", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)
		f.changeStatus(t, order.ID, "RECEIVED")
		require.Equal(t, "145", f.material.Stock.String())

		require.NoError(t, f.service.Delete(context.Background(), f.tenantID, order.ID))

		assert.Equal(t, "50", f.material.Stock.String())
		_, err := f.service.GetByID(context.Background(), f.tenantID, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		last := f.movementRepo.movements[len(f.movementRepo.movements)-1]
		assert.Equal(t, inventory.MovementSupplyReversal, last.Type)
		assert.Equal(t, "-95", last.Quantity.String())
	})

	t.Run("deleting an unreceived order is stock-neutral", func(t *testing.T) {
		f := newSupplyServiceFixture(t)
		order := f.createSupplyOrder(t)

		require.NoError(t, f.service.Delete(context.Background(), f.tenantID, order.ID))
		assert.Equal(t, "50", f.material.Stock.String())
		assert.Empty(t, f.movementRepo.movements)
	})
}
