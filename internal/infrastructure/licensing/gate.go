package licensing

import (
	"context"
	"errors"
	"time"

	appinventory "github.com/atolye/backend/internal/application/inventory"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantLicense is a tenant's subscription record. A tenant without a row, or
// with an inactive or expired row, may browse and price but not mutate stock.
type TenantLicense struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Active    bool      `gorm:"not null;default:false"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (TenantLicense) TableName() string {
	return "tenant_licenses"
}

// IsActive reports whether the license currently allows stock mutations
func (l *TenantLicense) IsActive(now time.Time) bool {
	if !l.Active {
		return false
	}
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return false
	}
	return true
}

// Gate checks tenant licenses before stock-mutating operations. Enforcement
// can be switched off for development environments; the gate then treats
// every tenant as licensed.
type Gate struct {
	db      *gorm.DB
	enforce bool
	logger  *zap.Logger
}

// NewGate creates a new license gate
func NewGate(db *gorm.DB, enforce bool, logger *zap.Logger) *Gate {
	return &Gate{db: db, enforce: enforce, logger: logger}
}

// EnsureActive returns nil when the tenant's license permits stock mutations.
// Callers only learn active or not; the reason stays server-side.
func (g *Gate) EnsureActive(ctx context.Context, tenantID uuid.UUID) error {
	if !g.enforce {
		return nil
	}

	var license TenantLicense
	if err := g.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&license).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g.logger.Warn("stock mutation blocked, tenant has no license",
				zap.String("tenant_id", tenantID.String()))
			return shared.ErrLicenseInactive
		}
		return err
	}

	if !license.IsActive(time.Now()) {
		g.logger.Warn("stock mutation blocked, tenant license inactive",
			zap.String("tenant_id", tenantID.String()),
			zap.Bool("active", license.Active))
		return shared.ErrLicenseInactive
	}
	return nil
}

var _ appinventory.LicenseGate = (*Gate)(nil)
