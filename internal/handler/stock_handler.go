package handler

import (
	"go-inventory-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service  service.StockService
	pageSize int
}

func NewStockHandler(s service.StockService, pageSize int) *StockHandler {
	return &StockHandler{service: s, pageSize: pageSize}
}

// GetStocks lists active stock, optionally filtered with ?name=
func (h *StockHandler) GetStocks(c *fiber.Ctx) error {
	page, err := h.service.List(c.Query("name"), pageQuery(c, h.pageSize))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "stock id")
	}
	stock, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

func (h *StockHandler) CreateStock(c *fiber.Ctx) error {
	var req service.StockInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	stock, err := h.service.Create(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock has been created successfully", "data": stock})
}

func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "stock id")
	}
	var req service.StockInput
	if err := c.BodyParser(&req); err != nil {
		return badJSON(c)
	}

	change, err := h.service.Update(id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock has been updated successfully", "data": change})
}

func (h *StockHandler) DeleteStock(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "stock id")
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock has been deleted successfully"})
}

// GetVariants lists every active stock sharing the name of :id.
func (h *StockHandler) GetVariants(c *fiber.Ctx) error {
	id, ok := uintParam(c, "id")
	if !ok {
		return badParam(c, "stock id")
	}
	rows, err := h.service.Variants(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *StockHandler) GetReorderList(c *fiber.Ctx) error {
	rows, err := h.service.ReorderList()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"title": "Reorder Products", "data": rows})
}
