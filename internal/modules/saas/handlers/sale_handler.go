package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/services"
	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// ParseSale godoc
// @Summary Parse a sale description
// @Description Extract customer, strain, date, quantity, price, profit and tick status from free text
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body models.ParseSaleRequest true "Sale text"
// @Success 200 {object} models.ParseResult
// @Failure 400 {object} map[string]interface{}
// @Router /sales/parse [post]
func (h *SaleHandler) ParseSale(c *fiber.Ctx) error {
	var req models.ParseSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return c.JSON(h.saleService.Parse(c.UserContext(), req.Text))
}

// ParseBatch godoc
// @Summary Parse several sale descriptions
// @Description Parse up to 100 lines, given as an array or as one multi-line text. Blank lines are skipped.
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body models.ParseBatchRequest true "Lines or multi-line text"
// @Success 200 {object} models.ParseBatchResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /sales/parse/batch [post]
func (h *SaleHandler) ParseBatch(c *fiber.Ctx) error {
	var req models.ParseBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.saleService.ParseBatch(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// errorResponse maps service errors to HTTP statuses
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrEmptyBatch), errors.Is(err, services.ErrInvalidStrain):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrBatchTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrStoreNotConfigured):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
