package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/repositories"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/services"
	"github.com/gofiber/fiber/v2"
)

type StrainHandler struct {
	strainService *services.StrainService
}

func NewStrainHandler(strainService *services.StrainService) *StrainHandler {
	return &StrainHandler{strainService: strainService}
}

// ListStrains godoc
// @Summary List known strains
// @Description Strains the parser matches exactly, merged from every configured source
// @Tags Strains
// @Produce json
// @Success 200 {object} models.StrainListResponse
// @Router /strains [get]
func (h *StrainHandler) ListStrains(c *fiber.Ctx) error {
	return c.JSON(h.strainService.ListStrains(c.UserContext()))
}

// CreateStrain godoc
// @Summary Add a strain
// @Description Store a strain with optional aliases and refresh the catalog (requires a database)
// @Tags Strains
// @Accept json
// @Produce json
// @Param strain body models.CreateStrainRequest true "Strain data"
// @Success 201 {object} models.Strain
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /strains [post]
func (h *StrainHandler) CreateStrain(c *fiber.Ctx) error {
	var req models.CreateStrainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	strain, err := h.strainService.CreateStrain(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, repositories.ErrStrainExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(strain)
}

// RefreshStrains godoc
// @Summary Reload the strain catalog
// @Description Reload every strain source now instead of waiting for the schedule
// @Tags Strains
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /strains/refresh [post]
func (h *StrainHandler) RefreshStrains(c *fiber.Ctx) error {
	n, err := h.strainService.Refresh(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "refreshed",
		"strains": n,
	})
}
