package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/handlers"
)

func registerNotificationRoutes(api *gin.RouterGroup, handler *handlers.NotificationHandler) {
	group := api.Group("/notifications")
	{
		group.GET("", handler.List)
		group.GET("/stats", handler.Stats)
		group.GET("/unread-count", handler.UnreadCount)
		group.GET("/stream", handler.Stream)
		group.POST("", handler.Create)
		group.POST("/events", handler.Raise)
		group.POST("/mark-all-read", handler.MarkAllRead)
		group.POST("/cleanup-expired", handler.CleanupExpired)

		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.PATCH("/:id", handler.Update)
		group.POST("/:id/read", handler.MarkRead)
		group.POST("/:id/dismiss", handler.Dismiss)
		group.DELETE("/:id", handler.Delete)
	}
}
