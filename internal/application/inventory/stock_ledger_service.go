package inventory

import (
	"context"
	"errors"

	"github.com/atolye/backend/internal/domain/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovementSource identifies the document that caused a stock delta
type MovementSource struct {
	Type inventory.MovementType
	Kind string // aggregate type of the source document
	ID   uuid.UUID
	Note string
}

// StockLedgerService applies signed stock deltas to materials and records the
// matching movement rows. It always runs inside a caller-provided transaction
// bundle so the deltas commit together with the status change that caused
// them.
type StockLedgerService struct {
	logger *zap.Logger
}

// NewStockLedgerService creates a new stock ledger service
func NewStockLedgerService(logger *zap.Logger) *StockLedgerService {
	return &StockLedgerService{logger: logger}
}

// Apply applies one delta to one material. Zero deltas are skipped entirely:
// no version bump, no movement row. A concurrent write to the material is
// retried once on a fresh load before giving up with a conflict error.
func (s *StockLedgerService) Apply(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, delta inventory.MaterialDelta, source MovementSource) error {
	if delta.Delta.IsZero() {
		return nil
	}

	if err := s.applyOnce(ctx, repos, tenantID, delta); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		s.logger.Warn("stock update conflict, retrying",
			zap.String("tenant_id", tenantID.String()),
			zap.String("material_id", delta.MaterialID.String()))
		if err := s.applyOnce(ctx, repos, tenantID, delta); err != nil {
			return err
		}
	}

	movement, err := inventory.NewStockMovement(tenantID, delta.MaterialID, delta.Delta, source.Type, source.Kind, source.ID, source.Note)
	if err != nil {
		return err
	}
	if err := repos.StockMovements.Save(ctx, movement); err != nil {
		return err
	}

	s.logger.Info("stock adjusted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("material_id", delta.MaterialID.String()),
		zap.String("delta", delta.Delta.String()),
		zap.String("movement_type", string(source.Type)))

	return nil
}

func (s *StockLedgerService) applyOnce(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, delta inventory.MaterialDelta) error {
	material, err := repos.Materials.FindByIDForTenant(ctx, tenantID, delta.MaterialID)
	if err != nil {
		return err
	}
	material.ApplyStockDelta(delta.Delta)
	return repos.Materials.SaveWithLock(ctx, material)
}

// ApplyAll applies a batch of deltas from a single source document.
// The caller's transaction makes the batch all-or-nothing.
func (s *StockLedgerService) ApplyAll(ctx context.Context, repos TransactionalRepositories, tenantID uuid.UUID, deltas []inventory.MaterialDelta, source MovementSource) error {
	for _, delta := range deltas {
		if err := s.Apply(ctx, repos, tenantID, delta, source); err != nil {
			return err
		}
	}
	return nil
}
