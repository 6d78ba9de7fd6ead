package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gastropro/backoffice/internal/monitoring"
)

// HealthHandler renders liveness and readiness reports.
type HealthHandler struct {
	manager *monitoring.HealthManager
}

// NewHealthHandler constructs a health handler.
func NewHealthHandler(manager *monitoring.HealthManager) *HealthHandler {
	return &HealthHandler{manager: manager}
}

// Health combines every probe.
func (h *HealthHandler) Health(c *gin.Context) {
	writeHealthReport(c, h.manager.Evaluate(requestContext(c)))
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	writeHealthReport(c, h.manager.EvaluateLiveness(requestContext(c)))
}

// Ready reports whether dependencies can serve traffic.
func (h *HealthHandler) Ready(c *gin.Context) {
	writeHealthReport(c, h.manager.EvaluateReadiness(requestContext(c)))
}

func writeHealthReport(c *gin.Context, report monitoring.HealthReport) {
	c.JSON(report.HTTPStatus(), report)
}
