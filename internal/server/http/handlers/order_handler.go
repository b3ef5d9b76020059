package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/server/http/dto"
)

// OrderHandler manages order endpoints for signed-in users.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.OrderLine{ProductID: l.ProductID, Count: l.Count})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentRequester(c), toShippingInfo(req.ShippingFields), lines)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders?status=.
func (h *OrderHandler) List(c *gin.Context) {
	headers, err := h.facade.Orders(c.Request.Context(), CurrentRequester(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(headers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderHeaderResponse, 0, len(headers))
	for _, o := range headers {
		response = append(response, toHeaderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.facade.OrderDetails(c.Request.Context(), CurrentRequester(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// ConfirmPayment handles POST /api/orders/:id/payment.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	header, err := h.facade.ConfirmPayment(c.Request.Context(), id, req.PaymentIntentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHeaderResponse(*header))
}
