package handler

import (
	tradeapp "github.com/atolye/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// SupplyOrderHandler handles material purchase endpoints. Entering or leaving
// the RECEIVED status moves the material's stock balance.
type SupplyOrderHandler struct {
	BaseHandler
	supplyService *tradeapp.SupplyOrderService
}

// NewSupplyOrderHandler creates a new SupplyOrderHandler
func NewSupplyOrderHandler(supplyService *tradeapp.SupplyOrderService) *SupplyOrderHandler {
	return &SupplyOrderHandler{supplyService: supplyService}
}

// RegisterRoutes registers supply order routes on the given group
func (h *SupplyOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	supplyOrders := rg.Group("/supply-orders")
	{
		supplyOrders.POST("", h.Create)
		supplyOrders.GET("", h.List)
		supplyOrders.GET("/:id", h.Get)
		supplyOrders.PUT("/:id", h.Update)
		supplyOrders.PATCH("/:id/status", h.ChangeStatus)
		supplyOrders.DELETE("/:id", h.Delete)
	}
}

// Create creates a new supply order in the CREATED status
func (h *SupplyOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tradeapp.CreateSupplyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.supplyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Get retrieves a supply order by ID
func (h *SupplyOrderHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply order ID format")
		return
	}

	response, err := h.supplyService.GetByID(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List retrieves the tenant's supply orders
func (h *SupplyOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter tradeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.supplyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update changes the supply order's commercial terms. Editing a received
// order adjusts stock by the net quantity difference.
func (h *SupplyOrderHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply order ID format")
		return
	}

	var req tradeapp.UpdateSupplyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.supplyService.Update(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// ChangeStatus moves the supply order to a new status, applying the matching
// stock delta in the same transaction
func (h *SupplyOrderHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply order ID format")
		return
	}

	var req tradeapp.ChangeSupplyOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.supplyService.ChangeStatus(c.Request.Context(), tenantID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes a supply order, reversing its stock contribution when it was
// received
func (h *SupplyOrderHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supply order ID format")
		return
	}

	if err := h.supplyService.Delete(c.Request.Context(), tenantID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
