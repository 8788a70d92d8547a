package handler

import (
	"fmt"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchases service.PurchaseService
	suppliers service.SupplierService
	pageSize  int
}

func NewPurchaseHandler(p service.PurchaseService, s service.SupplierService, pageSize int) *PurchaseHandler {
	return &PurchaseHandler{purchases: p, suppliers: s, pageSize: pageSize}
}

type SelectSupplierRequest struct {
	SupplierID uint `json:"supplier_id"`
}

// GetPurchases lists bills, newest first.
func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	page, err := h.purchases.List(pageQuery(c, h.pageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// SelectSupplier is the first step of a manual purchase: it checks the
// supplier and points the client at the create endpoint.
func (h *PurchaseHandler) SelectSupplier(c *fiber.Ctx) error {
	var req SelectSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}
	if req.SupplierID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"supplier_id": "this field is required"},
		})
	}

	supplier, err := h.suppliers.Select(req.SupplierID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"supplier": supplier,
		"next":     fmt.Sprintf("/api/v1/suppliers/%d/purchases", supplier.ID),
	})
}

// CreatePurchase records a bill against the supplier in the path.
func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	supplierID, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "supplier id")
	}
	var req service.PurchaseInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	result, err := h.purchases.Create(supplierID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Purchased items have been registered successfully",
		"data":    result,
	})
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	bill, err := h.purchases.Get(billNo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bill": bill, "total": bill.TotalPrice()})
}

func (h *PurchaseHandler) UpdateDetails(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	var req model.BillDetails
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	details, err := h.purchases.UpdateDetails(billNo, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bill details have been modified successfully", "data": details})
}

func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	if err := h.purchases.Delete(billNo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase bill has been deleted successfully"})
}
