package handlers

import (
	"strconv"
	"time"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/services"
	"github.com/gofiber/fiber/v2"
)

type ParseLogHandler struct {
	saleService *services.SaleService
}

func NewParseLogHandler(saleService *services.SaleService) *ParseLogHandler {
	return &ParseLogHandler{saleService: saleService}
}

// ListParseLogs godoc
// @Summary List parse logs
// @Description Recorded parses, newest first (requires a database with auditing enabled)
// @Tags Parse Logs
// @Produce json
// @Param needs_review query boolean false "Only flagged (true) or only clean (false) parses"
// @Param since query string false "RFC3339 lower bound on created_at"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} audit.ParseLogResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /parse-logs [get]
func (h *ParseLogHandler) ListParseLogs(c *fiber.Ctx) error {
	filter := audit.ParseLogFilter{
		Page:     1,
		PageSize: 50,
	}

	if v := c.Query("needs_review"); v != "" {
		needsReview, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "needs_review must be true or false",
			})
		}
		filter.NeedsReview = &needsReview
	}

	if v := c.Query("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "since must be an RFC3339 timestamp",
			})
		}
		filter.Since = &since
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 {
		filter.PageSize = pageSize
	}

	resp, err := h.saleService.ListParseLogs(c.UserContext(), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
