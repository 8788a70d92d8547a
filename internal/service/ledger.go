package service

import (
	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/shopspring/decimal"
)

// maxReplenishRounds bounds how often the post-adjust hook runs for one save.
// One round orders stock, the next confirms the quantity is back above threshold.
const maxReplenishRounds = 2

// Replenishment is stock ordered by a PostAdjustHook that the ledger must add.
type Replenishment struct {
	Bill     *model.PurchaseBill
	Quantity int
}

// PostAdjustHook observes a persisted stock and may order more of it.
type PostAdjustHook interface {
	AfterAdjust(tx repository.Store, stock *model.Stock) (*Replenishment, error)
}

type AdjustOptions struct {
	// SkipReplenish suppresses the hook, e.g. while reversing a purchase.
	SkipReplenish bool
	// IgnoreDeleted leaves soft-deleted stock untouched.
	IgnoreDeleted bool
	// SalesValue is added to the stock's cumulative sales value.
	SalesValue decimal.Decimal
}

// StockLedger applies quantity deltas and runs the replenishment hook after each one.
type StockLedger struct {
	hook PostAdjustHook
}

func NewStockLedger(hook PostAdjustHook) *StockLedger {
	return &StockLedger{hook: hook}
}

// Adjust locks the stock row, applies delta (no floor) and persists it, then
// settles it unless opts.SkipReplenish is set. It must run inside tx.
func (l *StockLedger) Adjust(tx repository.Store, stockID uint, delta int, opts AdjustOptions) (*model.Stock, []model.PurchaseBill, error) {
	stock, err := tx.Stocks().FindByIDForUpdate(stockID)
	if err != nil {
		return nil, nil, translate(err, ErrStockNotFound)
	}
	if opts.IgnoreDeleted && stock.IsDeleted {
		return stock, nil, nil
	}

	stock.Quantity += delta
	stock.TotalSalesValue = stock.TotalSalesValue.Add(opts.SalesValue)
	if err := tx.Stocks().SaveCounters(stock); err != nil {
		return nil, nil, translate(err, ErrStockNotFound)
	}

	if opts.SkipReplenish {
		return stock, nil, nil
	}
	bills, err := l.Settle(tx, stock)
	if err != nil {
		return nil, nil, err
	}
	return stock, bills, nil
}

// Settle runs the hook for an already persisted stock until it stops ordering,
// at most maxReplenishRounds times. The returned bills were created in tx.
func (l *StockLedger) Settle(tx repository.Store, stock *model.Stock) ([]model.PurchaseBill, error) {
	if l.hook == nil {
		return nil, nil
	}

	var bills []model.PurchaseBill
	for round := 0; round < maxReplenishRounds; round++ {
		r, err := l.hook.AfterAdjust(tx, stock)
		if err != nil {
			return nil, err
		}
		if r == nil {
			break
		}

		stock.Quantity += r.Quantity
		if err := tx.Stocks().SaveCounters(stock); err != nil {
			return nil, translate(err, ErrStockNotFound)
		}
		bills = append(bills, *r.Bill)
	}
	return bills, nil
}
