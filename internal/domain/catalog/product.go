package catalog

import (
	"time"

	"github.com/atolye/backend/internal/domain/costing"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine is a catalog recipe line: a quantity of a stocked material
// consumed per product unit, plus a waste percentage. Once an order is
// delivered the pricing derived from these lines lives on as snapshot fields
// of the order, so later edits here never rewrite history.
type RecipeLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	WastePercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (RecipeLine) TableName() string {
	return "product_recipe_lines"
}

// ManualRecipeItem is a denormalized recipe line used by the quick product
// path: the material is described inline instead of referencing the catalog.
type ManualRecipeItem struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name         string               `gorm:"size:200;not null"`
	Unit         string               `gorm:"size:20;not null"`
	Quantity     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	WastePercent decimal.Decimal      `gorm:"type:decimal(9,4);not null;default:0"`
	UnitPrice    decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency     valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (ManualRecipeItem) TableName() string {
	return "product_manual_recipe_items"
}

// Product represents a sellable product with a cost recipe.
// Unit sale price is never stored; it is always derived from the recipe,
// labor, overhead and profit margin through the costing cascade.
type Product struct {
	shared.TenantAggregateRoot
	Name         string               `gorm:"size:200;not null"`
	Code         string               `gorm:"size:50"`
	LaborCost    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OverheadCost decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ProfitMargin decimal.Decimal      `gorm:"type:decimal(9,4);not null;default:0"`
	Currency     valueobject.Currency `gorm:"size:3;not null;default:'TRY'"`
	IsActive     bool                 `gorm:"not null;default:true"`

	Lines       []RecipeLine       `gorm:"foreignKey:ProductID;references:ID"`
	ManualItems []ManualRecipeItem `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product for a tenant
func NewProduct(tenantID uuid.UUID, name, code string, laborCost, overheadCost, profitMargin decimal.Decimal, currency valueobject.Currency) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if laborCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Labor cost cannot be negative")
	}
	if overheadCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Overhead cost cannot be negative")
	}
	if profitMargin.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MARGIN", "Profit margin cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                code,
		LaborCost:           laborCost,
		OverheadCost:        overheadCost,
		ProfitMargin:        profitMargin,
		Currency:            currency,
		IsActive:            true,
		Lines:               make([]RecipeLine, 0),
		ManualItems:         make([]ManualRecipeItem, 0),
	}, nil
}

// AddLine adds a catalog recipe line referencing a stocked material
func (p *Product) AddLine(materialID uuid.UUID, quantity, wastePercent decimal.Decimal) error {
	if materialID == uuid.Nil {
		return shared.NewDomainError("INVALID_MATERIAL", "Material ID cannot be empty")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Recipe line quantity cannot be negative")
	}
	if wastePercent.IsNegative() {
		return shared.NewDomainError("INVALID_WASTE", "Waste percent cannot be negative")
	}

	now := time.Now()
	p.Lines = append(p.Lines, RecipeLine{
		ID:           uuid.New(),
		ProductID:    p.ID,
		MaterialID:   materialID,
		Quantity:     quantity,
		WastePercent: wastePercent,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	p.UpdatedAt = now

	return nil
}

// AddManualItem adds an inline recipe item (quick product path)
func (p *Product) AddManualItem(name, unit string, quantity, wastePercent, unitPrice decimal.Decimal, currency valueobject.Currency) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Manual item name cannot be empty")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Manual item quantity cannot be negative")
	}
	if wastePercent.IsNegative() {
		return shared.NewDomainError("INVALID_WASTE", "Waste percent cannot be negative")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Manual item unit price cannot be negative")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency code")
	}

	now := time.Now()
	p.ManualItems = append(p.ManualItems, ManualRecipeItem{
		ID:           uuid.New(),
		ProductID:    p.ID,
		Name:         name,
		Unit:         unit,
		Quantity:     quantity,
		WastePercent: wastePercent,
		UnitPrice:    unitPrice,
		Currency:     currency,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	p.UpdatedAt = now

	return nil
}

// UpdateCosts changes labor cost, overhead cost and profit margin
func (p *Product) UpdateCosts(laborCost, overheadCost, profitMargin decimal.Decimal) error {
	if laborCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Labor cost cannot be negative")
	}
	if overheadCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Overhead cost cannot be negative")
	}
	if profitMargin.IsNegative() {
		return shared.NewDomainError("INVALID_MARGIN", "Profit margin cannot be negative")
	}

	p.LaborCost = laborCost
	p.OverheadCost = overheadCost
	p.ProfitMargin = profitMargin
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// HasCatalogRecipe reports whether the product has catalog recipe lines
func (p *Product) HasCatalogRecipe() bool {
	return len(p.Lines) > 0
}

// ResolveRecipe builds the costing recipe for this product. Catalog lines are
// resolved against the supplied material set and take precedence over manual
// items when both are present. A catalog line whose material is missing from
// the set aborts the whole resolution; no partial recipe is returned.
func (p *Product) ResolveRecipe(materialsByID map[uuid.UUID]*Material) (costing.Recipe, error) {
	if p.HasCatalogRecipe() {
		lines := make([]costing.RecipeLine, 0, len(p.Lines))
		for _, l := range p.Lines {
			material, ok := materialsByID[l.MaterialID]
			if !ok {
				return costing.Recipe{}, shared.ErrReferenceNotFound
			}
			line, err := costing.NewRecipeLine(material.ID, material.Name, material.Unit, l.Quantity, l.WastePercent, material.PriceMoney())
			if err != nil {
				return costing.Recipe{}, err
			}
			lines = append(lines, line)
		}
		return costing.Recipe{Source: costing.SourceCatalog, Lines: lines}, nil
	}

	lines := make([]costing.RecipeLine, 0, len(p.ManualItems))
	for _, item := range p.ManualItems {
		unitPrice, err := valueobject.NewMoney(item.UnitPrice, item.Currency)
		if err != nil {
			return costing.Recipe{}, err
		}
		line, err := costing.NewRecipeLine(uuid.Nil, item.Name, item.Unit, item.Quantity, item.WastePercent, unitPrice)
		if err != nil {
			return costing.Recipe{}, err
		}
		lines = append(lines, line)
	}
	return costing.Recipe{Source: costing.SourceManual, Lines: lines}, nil
}

// UnitPrice computes the canonical unit sale price of the product through the
// costing cascade. This is the value used wherever the product must be priced:
// order creation, offer line defaults and product listing.
func (p *Product) UnitPrice(materialsByID map[uuid.UUID]*Material) (valueobject.Money, error) {
	recipe, err := p.ResolveRecipe(materialsByID)
	if err != nil {
		return valueobject.Money{}, err
	}
	return p.PriceRecipe(recipe)
}

// PriceRecipe runs the costing cascade over an already resolved recipe.
// Callers that need both the recipe and the price resolve once and pass
// the result here instead of resolving twice through UnitPrice.
func (p *Product) PriceRecipe(recipe costing.Recipe) (valueobject.Money, error) {
	laborCost, err := valueobject.NewMoney(p.LaborCost, p.Currency)
	if err != nil {
		return valueobject.Money{}, err
	}
	overheadCost, err := valueobject.NewMoney(p.OverheadCost, p.Currency)
	if err != nil {
		return valueobject.Money{}, err
	}

	return costing.ComputeUnitPrice(recipe, laborCost, overheadCost, p.ProfitMargin)
}
