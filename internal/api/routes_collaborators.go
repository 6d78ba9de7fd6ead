package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/handlers"
)

func registerInventoryRoutes(api *gin.RouterGroup, handler *handlers.InventoryHandler) {
	group := api.Group("/inventory")
	{
		group.POST("/check-alerts", handler.CheckAlerts)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id/stock", handler.AdjustStock)
	}
}

func registerOrderRoutes(api *gin.RouterGroup, handler *handlers.OrderHandler) {
	group := api.Group("/orders")
	{
		group.POST("", handler.Create)
		group.PATCH("/:id/status", handler.UpdateStatus)
	}
}

func registerStaffRoutes(api *gin.RouterGroup, handler *handlers.StaffHandler) {
	api.POST("/staff/:id/shift-reminder", handler.ShiftReminder)
}
