package handlers

import (
	"github.com/datatrail-io/datatrail/internal/config"
	"github.com/datatrail-io/datatrail/internal/services"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles the health route
type HealthHandler struct {
	Config *config.Config
	Store  store.Store
}

// GetHealth handles GET /api/health
// @Summary Health check
// @Description Report store and pinning-service reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.Context(), h.Config, h.Store)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
