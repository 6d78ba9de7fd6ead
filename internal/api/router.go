package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gastropro/backoffice/internal/app"
	"github.com/gastropro/backoffice/internal/handlers"
	"github.com/gastropro/backoffice/internal/middleware"
	"github.com/gastropro/backoffice/internal/monitoring"
	"github.com/gastropro/backoffice/internal/realtime"
	"github.com/gastropro/backoffice/internal/services"
)

// Dependencies carries the services the router mounts. Hub and Health are
// optional; a nil Hub disables the notification stream.
type Dependencies struct {
	Notifications *services.NotificationService
	Inventory     *services.InventoryService
	Orders        *services.OrderService
	Staff         *services.StaffService
	Hub           *realtime.Hub
	Health        *monitoring.HealthManager
	RateStore     middleware.RateStore
}

// NewRouter builds the Gin engine, wires middleware and registers routes under /api.
func NewRouter(cfg *app.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config must be provided")
	}
	if deps.Notifications == nil {
		return nil, errors.New("notification service must be provided")
	}
	if deps.Inventory == nil || deps.Orders == nil || deps.Staff == nil {
		return nil, errors.New("inventory, order and staff services must be provided")
	}
	if deps.RateStore == nil {
		deps.RateStore = middleware.NewMemoryRateStore()
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowedOrigins...))
	r.Use(middleware.RateLimitWithStore(deps.RateStore, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))

	registerHealthRoutes(r, cfg, deps.Health)

	api := r.Group("/api")

	registerNotificationRoutes(api, handlers.NewNotificationHandler(deps.Notifications, deps.Hub))
	registerInventoryRoutes(api, handlers.NewInventoryHandler(deps.Inventory))
	registerOrderRoutes(api, handlers.NewOrderHandler(deps.Orders))
	registerStaffRoutes(api, handlers.NewStaffHandler(deps.Staff))

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
