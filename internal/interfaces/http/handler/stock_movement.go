package handler

import (
	inventoryapp "github.com/atolye/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// StockMovementHandler serves the read side of the stock ledger
type StockMovementHandler struct {
	BaseHandler
	movementService *inventoryapp.StockMovementService
}

// NewStockMovementHandler creates a new StockMovementHandler
func NewStockMovementHandler(movementService *inventoryapp.StockMovementService) *StockMovementHandler {
	return &StockMovementHandler{movementService: movementService}
}

// RegisterRoutes registers stock movement routes on the given group
func (h *StockMovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock-movements", h.List)
}

// List retrieves stock movements, optionally narrowed to one material
func (h *StockMovementHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.movementService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
