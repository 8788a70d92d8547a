package handler

import (
	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	service  service.SupplierService
	pageSize int
}

func NewSupplierHandler(s service.SupplierService, pageSize int) *SupplierHandler {
	return &SupplierHandler{service: s, pageSize: pageSize}
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	page, err := h.service.List(pageQuery(c, h.pageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "supplier id")
	}
	supplier, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	supplier, err := h.service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Supplier has been created successfully", "data": supplier})
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "supplier id")
	}
	var req service.SupplierInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	supplier, err := h.service.Update(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier details has been updated successfully", "data": supplier})
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "supplier id")
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier has been deleted successfully"})
}

// GetProfile shows a supplier by name with its purchase bills.
func (h *SupplierHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Params("name"), pageQuery(c, h.pageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
