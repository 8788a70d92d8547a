package handler

import (
	"time"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	sales    service.SaleService
	reports  service.ReportService
	pageSize int
}

func NewSaleHandler(s service.SaleService, r service.ReportService, pageSize int) *SaleHandler {
	return &SaleHandler{sales: s, reports: r, pageSize: pageSize}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	page, err := h.sales.List(pageQuery(c, h.pageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	result, err := h.sales.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sold items have been registered successfully",
		"data":    result,
	})
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	bill, err := h.sales.Get(billNo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bill": bill, "total": bill.TotalPrice()})
}

func (h *SaleHandler) UpdateDetails(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	var req model.BillDetails
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	details, err := h.sales.UpdateDetails(billNo, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bill details have been modified successfully", "data": details})
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	billNo, ok := uintParam(c, "billno")
	if !ok {
		return badParam(c, "bill number")
	}
	result, err := h.sales.Delete(billNo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale bill has been deleted successfully", "reorders": result.Reorders})
}

// GetProductSales returns monthly sold quantities of a product for the last six months.
func (h *SaleHandler) GetProductSales(c *fiber.Ctx) error {
	data, err := h.reports.ProductSales(c.Params("name"), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
