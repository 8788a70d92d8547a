package handler

import (
	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MaintenanceHandler struct {
	service service.MaintenanceService
}

func NewMaintenanceHandler(s service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: s}
}

// ClearData wipes every stock, supplier and bill.
// POST /api/v1/maintenance/clear-data
func (h *MaintenanceHandler) ClearData(c *fiber.Ctx) error {
	if err := h.service.ClearAll(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *MaintenanceHandler) MethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed."})
}
