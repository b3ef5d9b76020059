package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/server/http/dto"
	"github.com/polkiloo/ordermart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentRequester extracts the authenticated identity from context.
func CurrentRequester(c *gin.Context) model.Requester {
	r := model.Requester{UserID: CurrentUserID(c)}
	if val, ok := c.Get(middleware.RoleContextKey); ok {
		r.Role, _ = val.(model.Role)
	}
	return r
}

// orderID parses the :id path parameter.
func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrPaymentGateway):
		status = http.StatusBadGateway
	case errors.Is(err, domainErrors.ErrForbidden):
		status = http.StatusForbidden
	default:
		_ = c.Error(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
