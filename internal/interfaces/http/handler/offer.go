package handler

import (
	tradeapp "github.com/atolye/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OfferHandler handles price offer endpoints. Accepting an offer consumes the
// recipe materials of every offered product from stock.
type OfferHandler struct {
	BaseHandler
	offerService *tradeapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *tradeapp.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// RegisterRoutes registers offer routes on the given group
func (h *OfferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	offers := rg.Group("/offers")
	{
		offers.POST("", h.Create)
		offers.GET("", h.List)
		offers.GET("/:id", h.Get)
		offers.PUT("/:id", h.Update)
		offers.PATCH("/:id/status", h.ChangeStatus)
		offers.DELETE("/:id", h.Delete)
	}
}

// Create creates a new draft offer
func (h *OfferHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tradeapp.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.offerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Get retrieves an offer by ID
func (h *OfferHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	offerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	response, err := h.offerService.GetByID(c.Request.Context(), tenantID, offerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List retrieves the tenant's offers
func (h *OfferHandler) List(c *gin.Context) {
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

	result, err := h.offerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update replaces the offer's item list
func (h *OfferHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	offerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	var req tradeapp.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.offerService.Update(c.Request.Context(), tenantID, offerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// ChangeStatus moves the offer to a new status. The ACCEPTED transition runs
// material consumption in the same transaction and is terminal.
func (h *OfferHandler) ChangeStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	offerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	var req tradeapp.ChangeOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	response, err := h.offerService.ChangeStatus(c.Request.Context(), tenantID, offerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes an offer
func (h *OfferHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	offerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid offer ID format")
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), tenantID, offerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
