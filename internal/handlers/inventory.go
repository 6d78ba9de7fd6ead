package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/services"
	"github.com/gastropro/backoffice/pkg/response"
)

// InventoryHandler exposes the stock operations that feed inventory alerts.
type InventoryHandler struct {
	service *services.InventoryService
}

// NewInventoryHandler constructs an inventory handler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type adjustStockRequest struct {
	Delta *float64 `json:"delta" validate:"required"`
}

// Get returns an inventory item.
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// AdjustStock applies a signed stock delta and reports any alert it raised.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload adjustStockRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.service.AdjustStock(requestContext(c), id, *payload.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CheckAlerts sweeps every item and raises any missing stock alerts.
func (h *InventoryHandler) CheckAlerts(c *gin.Context) {
	created, err := h.service.SweepStock(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"created": created})
}
