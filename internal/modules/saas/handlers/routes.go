package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every route handler of the sales API
type Handlers struct {
	Health   *HealthHandler
	Sale     *SaleHandler
	Strain   *StrainHandler
	ParseLog *ParseLogHandler
}

// RegisterRoutes mounts the sales API on app
func RegisterRoutes(app fiber.Router, h Handlers) {
	// Health check
	app.Get("/health", h.Health.GetHealth)

	// Sale parsing
	app.Post("/sales/parse", h.Sale.ParseSale)
	app.Post("/sales/parse/batch", h.Sale.ParseBatch)

	// Strain catalog
	app.Get("/strains", h.Strain.ListStrains)
	app.Post("/strains", h.Strain.CreateStrain)
	app.Post("/strains/refresh", h.Strain.RefreshStrains)

	// Parse logs
	app.Get("/parse-logs", h.ParseLog.ListParseLogs)
}
