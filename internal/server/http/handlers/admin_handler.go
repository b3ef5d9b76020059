package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/server/http/dto"
)

// AdminHandler exposes back-office lifecycle actions.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// UpdateDetails handles PUT /api/admin/orders/:id.
func (h *AdminHandler) UpdateDetails(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	header, err := h.facade.UpdateDetails(c.Request.Context(), id, model.DetailsUpdate{
		ShippingInfo:   toShippingInfo(req.ShippingFields),
		Carrier:        model.OptionalText(req.Carrier),
		TrackingNumber: model.OptionalText(req.TrackingNumber),
	})
	h.respond(c, header, err)
}

// StartProcessing handles POST /api/admin/orders/:id/processing.
func (h *AdminHandler) StartProcessing(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	header, err := h.facade.StartProcessing(c.Request.Context(), id)
	h.respond(c, header, err)
}

// Ship handles POST /api/admin/orders/:id/shipment.
func (h *AdminHandler) Ship(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	header, err := h.facade.Ship(c.Request.Context(), id, req.Carrier, req.TrackingNumber)
	h.respond(c, header, err)
}

// Cancel handles POST /api/admin/orders/:id/cancellation.
func (h *AdminHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	header, err := h.facade.Cancel(c.Request.Context(), id)
	h.respond(c, header, err)
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.facade.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) respond(c *gin.Context, header *model.OrderHeader, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHeaderResponse(*header))
}
