package catalog

import (
	"time"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest represents a request to create a material
type CreateMaterialRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Unit     string          `json:"unit" binding:"required,min=1,max=20"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Currency string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// UpdateMaterialRequest represents a request to update a material.
// Stock is absent on purpose: the balance only moves through the ledger.
type UpdateMaterialRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Unit     string          `json:"unit" binding:"required,min=1,max=20"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Currency string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// ToMaterialResponse maps a material aggregate to its response DTO
func ToMaterialResponse(m *catalog.Material) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Price:     m.Price,
		Currency:  string(m.Currency),
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Version:   m.GetVersion(),
	}
}

// RecipeLineRequest represents one catalog recipe line in a product request
type RecipeLineRequest struct {
	MaterialID   uuid.UUID       `json:"material_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WastePercent decimal.Decimal `json:"waste_percent"`
}

// ManualItemRequest represents one inline recipe item in a product request
type ManualItemRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WastePercent decimal.Decimal `json:"waste_percent"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	Currency     string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=200"`
	Code         string              `json:"code" binding:"max=50"`
	LaborCost    decimal.Decimal     `json:"labor_cost"`
	OverheadCost decimal.Decimal     `json:"overhead_cost"`
	ProfitMargin decimal.Decimal     `json:"profit_margin"`
	Currency     string              `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	Lines        []RecipeLineRequest `json:"lines"`
	ManualItems  []ManualItemRequest `json:"manual_items"`
}

// UpdateProductRequest represents a request to update a product.
// The recipe is replaced wholesale, not patched line by line.
type UpdateProductRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=200"`
	Code         string              `json:"code" binding:"max=50"`
	LaborCost    decimal.Decimal     `json:"labor_cost"`
	OverheadCost decimal.Decimal     `json:"overhead_cost"`
	ProfitMargin decimal.Decimal     `json:"profit_margin"`
	Lines        []RecipeLineRequest `json:"lines"`
	ManualItems  []ManualItemRequest `json:"manual_items"`
}

// RecipeLineResponse represents a catalog recipe line in API responses
type RecipeLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	MaterialID   uuid.UUID       `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	WastePercent decimal.Decimal `json:"waste_percent"`
}

// ManualItemResponse represents an inline recipe item in API responses
type ManualItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	WastePercent decimal.Decimal `json:"waste_percent"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Code         string               `json:"code"`
	LaborCost    decimal.Decimal      `json:"labor_cost"`
	OverheadCost decimal.Decimal      `json:"overhead_cost"`
	ProfitMargin decimal.Decimal      `json:"profit_margin"`
	Currency     string               `json:"currency"`
	IsActive     bool                 `json:"is_active"`
	Lines        []RecipeLineResponse `json:"lines"`
	ManualItems  []ManualItemResponse `json:"manual_items"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Version      int                  `json:"version"`
}

// ToProductResponse maps a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	lines := make([]RecipeLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, RecipeLineResponse{
			ID:           l.ID,
			MaterialID:   l.MaterialID,
			Quantity:     l.Quantity,
			WastePercent: l.WastePercent,
		})
	}

	items := make([]ManualItemResponse, 0, len(p.ManualItems))
	for _, item := range p.ManualItems {
		items = append(items, ManualItemResponse{
			ID:           item.ID,
			Name:         item.Name,
			Unit:         item.Unit,
			Quantity:     item.Quantity,
			WastePercent: item.WastePercent,
			UnitPrice:    item.UnitPrice,
			Currency:     string(item.Currency),
		})
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		LaborCost:    p.LaborCost,
		OverheadCost: p.OverheadCost,
		ProfitMargin: p.ProfitMargin,
		Currency:     string(p.Currency),
		IsActive:     p.IsActive,
		Lines:        lines,
		ManualItems:  items,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.GetVersion(),
	}
}

// UnitPriceResponse represents a computed product unit price
type UnitPriceResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Source    string          `json:"source"`
}

// ListFilter represents common list filter options
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func currencyOrDefault(code string) valueobject.Currency {
	if code == "" {
		return valueobject.DefaultCurrency
	}
	return valueobject.Currency(code)
}
