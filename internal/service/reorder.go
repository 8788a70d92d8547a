package service

import (
	"errors"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/sirupsen/logrus"
)

// Reorderer raises an auto-generated purchase bill when a stock falls below its threshold.
type Reorderer struct {
	threshold int
	excess    int
	log       *logrus.Logger
}

func NewReorderer(cfg config.ReorderConfig, log *logrus.Logger) *Reorderer {
	return &Reorderer{threshold: cfg.Threshold, excess: cfg.Excess, log: log}
}

// Threshold is the configured fallback used when a stock has no reorder point.
func (r *Reorderer) Threshold() int { return r.threshold }

// AfterAdjust raises a replenishment bill for stock below its threshold.
// Soft-deleted stock is never reordered, even though any save of its row would otherwise qualify.
func (r *Reorderer) AfterAdjust(tx repository.Store, stock *model.Stock) (*Replenishment, error) {
	threshold := stock.Threshold(r.threshold)

	// 1. Nothing to do for retired stock or healthy quantities
	if stock.IsDeleted || stock.Quantity >= threshold {
		return nil, nil
	}

	// 2. First active supplier, in registry order
	supplier, err := tx.Suppliers().FirstActive()
	if errors.Is(err, repository.ErrNotFound) {
		r.log.WithFields(logrus.Fields{
			"stock_id": stock.ID,
			"quantity": stock.Quantity,
		}).Debug("reorder skipped: no active supplier")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// 3. Order enough to clear the threshold plus the excess margin
	quantity := threshold - stock.Quantity + r.excess

	bill := &model.PurchaseBill{
		SupplierID:    supplier.ID,
		AutoGenerated: true,
		Details:       &model.PurchaseBillDetails{},
	}
	if err := tx.Purchases().CreateBill(bill); err != nil {
		return nil, err
	}

	item := model.PurchaseItem{
		BillNo:     bill.BillNo,
		StockID:    stock.ID,
		Quantity:   quantity,
		PerPrice:   stock.Cost,
		TotalPrice: model.LineTotal(quantity, stock.Cost),
	}
	if err := tx.Purchases().AddItem(&item); err != nil {
		return nil, err
	}
	bill.Supplier = supplier
	bill.Items = []model.PurchaseItem{item}

	r.log.WithFields(logrus.Fields{
		"stock_id":    stock.ID,
		"bill_no":     bill.BillNo,
		"supplier_id": supplier.ID,
		"quantity":    quantity,
	}).Info("auto-generated purchase bill")

	return &Replenishment{Bill: bill, Quantity: quantity}, nil
}
