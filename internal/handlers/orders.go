package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/response"
)

// OrderHandler exposes the order lifecycle transitions that raise order events.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler constructs an order handler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create places an order and raises order_created.
func (h *OrderHandler) Create(c *gin.Context) {
	var payload services.CreateOrderInput
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.Create(requestContext(c), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// UpdateStatus moves an order to a new status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload services.UpdateOrderStatusInput
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.UpdateStatus(requestContext(c), id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
