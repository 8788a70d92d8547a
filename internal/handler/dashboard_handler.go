package handler

import (
	"bytes"
	"io"

	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	service service.ReportService
}

func NewDashboardHandler(s service.ReportService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetHome returns chart series for the dashboard.
// Query params: product (optional, exact name)
func (h *DashboardHandler) GetHome(c *fiber.Ctx) error {
	view, err := h.service.Home(c.Query("product"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard"})
	}
	return c.JSON(view)
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) ExportStock(c *fiber.Ctx) error {
	return h.export(c, "stock.xlsx", h.service.ExportStock)
}

func (h *DashboardHandler) ExportSales(c *fiber.Ctx) error {
	return h.export(c, "sales.xlsx", h.service.ExportSales)
}

func (h *DashboardHandler) ExportPurchases(c *fiber.Ctx) error {
	return h.export(c, "purchases.xlsx", h.service.ExportPurchases)
}

func (h *DashboardHandler) export(c *fiber.Ctx, filename string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
