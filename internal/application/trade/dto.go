package trade

import (
	"time"

	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/atolye/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StageCostsRequest carries the informational per-stage cost snapshots
type StageCostsRequest struct {
	FabricPrice   decimal.Decimal `json:"fabric_price"`
	CuttingPrice  decimal.Decimal `json:"cutting_price"`
	SewingPrice   decimal.Decimal `json:"sewing_price"`
	IroningPrice  decimal.Decimal `json:"ironing_price"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
}

func (r StageCostsRequest) toDomain() trade.StageCosts {
	return trade.StageCosts{
		FabricPrice:   r.FabricPrice,
		CuttingPrice:  r.CuttingPrice,
		SewingPrice:   r.SewingPrice,
		IroningPrice:  r.IroningPrice,
		ShippingPrice: r.ShippingPrice,
	}
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	OrderNumber string            `json:"order_number" binding:"required,min=1,max=50"`
	CustomerID  uuid.UUID         `json:"customer_id" binding:"required"`
	ProductID   uuid.UUID         `json:"product_id" binding:"required"`
	Quantity    int64             `json:"quantity" binding:"required,min=1"`
	MarginType  string            `json:"margin_type" binding:"required,oneof=PERCENT AMOUNT"`
	MarginValue decimal.Decimal   `json:"margin_value"`
	StageCosts  StageCostsRequest `json:"stage_costs"`
}

// UpdateOrderRequest represents a request to update an order. Every pricing
// snapshot is recomputed from the current product cost; there is no partial
// amount patching.
type UpdateOrderRequest struct {
	Quantity    int64             `json:"quantity" binding:"required,min=1"`
	MarginType  string            `json:"margin_type" binding:"required,oneof=PERCENT AMOUNT"`
	MarginValue decimal.Decimal   `json:"margin_value"`
	StageCosts  StageCostsRequest `json:"stage_costs"`
}

// ChangeOrderStatusRequest represents an order workflow transition request
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	MarginType    string          `json:"margin_type"`
	MarginValue   decimal.Decimal `json:"margin_value"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	ProfitAmount  decimal.Decimal `json:"profit_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	FabricPrice   decimal.Decimal `json:"fabric_price"`
	CuttingPrice  decimal.Decimal `json:"cutting_price"`
	SewingPrice   decimal.Decimal `json:"sewing_price"`
	IroningPrice  decimal.Decimal `json:"ironing_price"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToOrderResponse maps an order aggregate to its response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		MarginType:    string(o.MarginType),
		MarginValue:   o.MarginValue,
		BaseAmount:    o.BaseAmount,
		ProfitAmount:  o.ProfitAmount,
		TotalAmount:   o.TotalAmount,
		Currency:      string(o.Currency),
		Status:        string(o.Status),
		FabricPrice:   o.FabricPrice,
		CuttingPrice:  o.CuttingPrice,
		SewingPrice:   o.SewingPrice,
		IroningPrice:  o.IroningPrice,
		ShippingPrice: o.ShippingPrice,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.GetVersion(),
	}
}

// OfferItemRequest represents one offer line in a request. UnitPrice is
// optional: when omitted it defaults from the product cost cascade.
type OfferItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOfferRequest represents a request to create an offer
type CreateOfferRequest struct {
	OfferNumber string             `json:"offer_number" binding:"required,min=1,max=50"`
	CustomerID  uuid.UUID          `json:"customer_id" binding:"required"`
	Items       []OfferItemRequest `json:"items"`
}

// UpdateOfferRequest represents a request to replace an offer's items
type UpdateOfferRequest struct {
	Items []OfferItemRequest `json:"items"`
}

// ChangeOfferStatusRequest represents an offer status change request
type ChangeOfferStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT SENT ACCEPTED REJECTED"`
}

// OfferItemResponse represents an offer line in API responses
type OfferItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID          uuid.UUID           `json:"id"`
	OfferNumber string              `json:"offer_number"`
	CustomerID  uuid.UUID           `json:"customer_id"`
	Items       []OfferItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Currency    string              `json:"currency"`
	Status      string              `json:"status"`
	AcceptedAt  *time.Time          `json:"accepted_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Version     int                 `json:"version"`
}

// ToOfferResponse maps an offer aggregate to its response DTO
func ToOfferResponse(o *trade.Offer) OfferResponse {
	items := make([]OfferItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OfferItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
			Currency:   string(item.Currency),
		})
	}

	return OfferResponse{
		ID:          o.ID,
		OfferNumber: o.OfferNumber,
		CustomerID:  o.CustomerID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Currency:    string(o.Currency),
		Status:      string(o.Status),
		AcceptedAt:  o.AcceptedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.GetVersion(),
	}
}

// CreateSupplyOrderRequest represents a request to create a supply order
type CreateSupplyOrderRequest struct {
	OrderNumber  string          `json:"order_number" binding:"required,min=1,max=50"`
	SupplierName string          `json:"supplier_name" binding:"required,min=1,max=200"`
	MaterialID   uuid.UUID       `json:"material_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WasteAmount  decimal.Decimal `json:"waste_amount"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	Currency     string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// UpdateSupplyOrderRequest represents a request to update a supply order's
// commercial terms. Editing a RECEIVED order adjusts stock by the net
// quantity difference.
type UpdateSupplyOrderRequest struct {
	SupplierName string          `json:"supplier_name" binding:"required,min=1,max=200"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	WasteAmount  decimal.Decimal `json:"waste_amount"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	Currency     string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// ChangeSupplyOrderStatusRequest represents a supply order status change
type ChangeSupplyOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CREATED ORDERED RECEIVED"`
}

// SupplyOrderResponse represents a supply order in API responses
type SupplyOrderResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	SupplierName string          `json:"supplier_name"`
	MaterialID   uuid.UUID       `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	WasteAmount  decimal.Decimal `json:"waste_amount"`
	NetQuantity  decimal.Decimal `json:"net_quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency"`
	VatRate      decimal.Decimal `json:"vat_rate"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	VatAmount    decimal.Decimal `json:"vat_amount"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToSupplyOrderResponse maps a supply order aggregate to its response DTO
func ToSupplyOrderResponse(o *trade.SupplyOrder) SupplyOrderResponse {
	return SupplyOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierName: o.SupplierName,
		MaterialID:   o.MaterialID,
		Quantity:     o.Quantity,
		WasteAmount:  o.WasteAmount,
		NetQuantity:  o.NetQuantity(),
		UnitPrice:    o.UnitPrice,
		Currency:     string(o.Currency),
		VatRate:      o.VatRate,
		TotalPrice:   o.TotalPrice,
		VatAmount:    o.VatAmount,
		GrandTotal:   o.GrandTotal,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.GetVersion(),
	}
}

func currencyOrDefault(code string) valueobject.Currency {
	if code == "" {
		return valueobject.DefaultCurrency
	}
	return valueobject.Currency(code)
}

// ListFilter represents common list filter options
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
