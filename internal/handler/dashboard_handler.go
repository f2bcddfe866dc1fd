package handler

import (
	"strconv"

	"go-farm-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSalesAnalytics returns totals, top sellers, recent sales and category rollups
// GET /api/v1/admin/analytics
func (h *DashboardHandler) GetSalesAnalytics(c *fiber.Ctx) error {
	return c.JSON(h.service.GetSalesAnalytics())
}

// GetSalesMovement returns per-day sales for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetSalesMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   h.service.GetSalesMovement(days),
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetDashboardStats())
}
