package service

import (
	"fmt"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/shopspring/decimal"
)

// LineInput is one bill line. The stock is chosen by StockID, or by
// (Name, SubCategory) when StockID is zero.
type LineInput struct {
	StockID     uint            `json:"stock_id"`
	Name        string          `json:"name" validate:"max=30"`
	SubCategory string          `json:"sub_category" validate:"max=30"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	PerPrice    decimal.Decimal `json:"per_price"`
}

func checkLines(lines []LineInput) error {
	if len(lines) == 0 {
		return fieldError("items", "add at least one item")
	}
	for i, line := range lines {
		key := fmt.Sprintf("items[%d]", i)
		if err := validate(&line); err != nil {
			ve := err.(*ValidationError)
			fields := make(map[string]string, len(ve.Fields))
			for f, msg := range ve.Fields {
				fields[key+"."+f] = msg
			}
			return &ValidationError{Fields: fields}
		}
		if line.StockID == 0 && line.Name == "" {
			return fieldError(key+".stock_id", "choose a stock")
		}
		if line.PerPrice.IsNegative() {
			return fieldError(key+".per_price", "must not be negative")
		}
	}
	return nil
}

// resolveStock finds the stock a line refers to. Soft-deleted stock still resolves.
func resolveStock(tx repository.Store, line LineInput) (*model.Stock, error) {
	var (
		stock *model.Stock
		err   error
	)
	if line.StockID != 0 {
		stock, err = tx.Stocks().FindByID(line.StockID)
	} else {
		stock, err = tx.Stocks().FindByIdentity(line.Name, line.SubCategory)
	}
	if err != nil {
		if line.StockID != 0 {
			return nil, fmt.Errorf("%w: id %d", translate(err, ErrStockNotFound), line.StockID)
		}
		return nil, fmt.Errorf("%w: %s (%s)", translate(err, ErrStockNotFound), line.Name, line.SubCategory)
	}
	return stock, nil
}
