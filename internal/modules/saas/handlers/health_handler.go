package handlers

import (
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	catalog  *catalog.Service
	dbDriver string
}

func NewHealthHandler(cat *catalog.Service, dbDriver string) *HealthHandler {
	return &HealthHandler{catalog: cat, dbDriver: dbDriver}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "ok",
		"service":           "sales-api",
		"database":          h.dbDriver,
		"strains_loaded_at": h.catalog.LoadedAt(),
	})
}
