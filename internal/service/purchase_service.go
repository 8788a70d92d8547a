package service

import (
	"fmt"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/sirupsen/logrus"
)

type PurchaseInput struct {
	Items []LineInput `json:"items"`
}

// PurchaseResult is a created bill plus any reorders its stock changes raised.
type PurchaseResult struct {
	Bill     *model.PurchaseBill  `json:"bill"`
	Reorders []model.PurchaseBill `json:"reorders"`
}

type PurchaseService interface {
	Create(supplierID uint, in PurchaseInput) (*PurchaseResult, error)
	Delete(billNo uint) error
	Get(billNo uint) (*model.PurchaseBill, error)
	List(page repository.Page) (*Paged[model.PurchaseBill], error)
	UpdateDetails(billNo uint, details model.BillDetails) (*model.PurchaseBillDetails, error)
}

type purchaseService struct {
	store  repository.Store
	ledger *StockLedger
	pub    Publisher
	log    *logrus.Logger
}

func NewPurchaseService(store repository.Store, ledger *StockLedger, pub Publisher, log *logrus.Logger) PurchaseService {
	return &purchaseService{store: store, ledger: ledger, pub: orNop(pub), log: log}
}

// Create records a purchase from an active supplier and adds every line to stock.
// Either every line is applied or none is.
func (s *purchaseService) Create(supplierID uint, in PurchaseInput) (*PurchaseResult, error) {
	if err := checkLines(in.Items); err != nil {
		return nil, err
	}

	result := &PurchaseResult{Reorders: []model.PurchaseBill{}}
	var box outbox
	err := s.store.Transaction(func(tx repository.Store) error {
		// 1. Supplier must exist and be active
		supplier, err := tx.Suppliers().FindByID(supplierID)
		if err != nil {
			return translate(err, ErrSupplierNotFound)
		}
		if supplier.IsDeleted {
			return fmt.Errorf("%w: supplier %d is deleted", ErrSupplierNotFound, supplierID)
		}

		// 2. Header and empty details
		bill := &model.PurchaseBill{
			SupplierID: supplier.ID,
			Details:    &model.PurchaseBillDetails{},
		}
		if err := tx.Purchases().CreateBill(bill); err != nil {
			return err
		}

		// 3. Lines: item, then stock through the ledger
		for _, line := range in.Items {
			stock, err := resolveStock(tx, line)
			if err != nil {
				return err
			}
			item := &model.PurchaseItem{
				BillNo:     bill.BillNo,
				StockID:    stock.ID,
				Quantity:   line.Quantity,
				PerPrice:   line.PerPrice,
				TotalPrice: model.LineTotal(line.Quantity, line.PerPrice),
			}
			if err := tx.Purchases().AddItem(item); err != nil {
				return err
			}

			_, reorders, err := s.ledger.Adjust(tx, stock.ID, line.Quantity, AdjustOptions{})
			if err != nil {
				return err
			}
			result.Reorders = append(result.Reorders, reorders...)
		}

		saved, err := tx.Purchases().FindByBillNo(bill.BillNo)
		if err != nil {
			return translate(err, ErrBillNotFound)
		}
		result.Bill = saved

		box.add(Event{
			Type:    EventPurchaseCreated,
			Action:  "purchase_created",
			Data:    saved,
			Message: fmt.Sprintf("purchase bill #%d from '%s'", saved.BillNo, supplier.Name),
		})
		addReorderEvents(&box, result.Reorders)
		return nil
	})
	if err != nil {
		logUnexpected(s.log, "purchaseService", "Create", supplierID, err)
		return nil, err
	}

	box.flush(s.pub)
	return result, nil
}

// Delete reverses the bill's stock increments and removes it. Reorders are
// suppressed while reversing, and soft-deleted stock is left alone.
func (s *purchaseService) Delete(billNo uint) error {
	var box outbox
	err := s.store.Transaction(func(tx repository.Store) error {
		bill, err := tx.Purchases().FindByBillNo(billNo)
		if err != nil {
			return translate(err, ErrBillNotFound)
		}

		for _, item := range bill.Items {
			stock, _, err := s.ledger.Adjust(tx, item.StockID, -item.Quantity, AdjustOptions{
				SkipReplenish: true,
				IgnoreDeleted: true,
			})
			if err != nil {
				return err
			}
			box.add(Event{Type: EventStockUpdate, Action: "purchase_reversed", Data: stock})
		}

		if err := tx.Purchases().Delete(billNo); err != nil {
			return translate(err, ErrBillNotFound)
		}
		box.add(Event{
			Type:    EventBillDeleted,
			Action:  "purchase_deleted",
			Data:    map[string]uint{"bill_no": billNo},
			Message: fmt.Sprintf("purchase bill #%d deleted", billNo),
		})
		return nil
	})
	if err != nil {
		logUnexpected(s.log, "purchaseService", "Delete", billNo, err)
		return err
	}

	box.flush(s.pub)
	return nil
}

func (s *purchaseService) Get(billNo uint) (*model.PurchaseBill, error) {
	bill, err := s.store.Purchases().FindByBillNo(billNo)
	if err != nil {
		return nil, translate(err, ErrBillNotFound)
	}
	return bill, nil
}

func (s *purchaseService) List(page repository.Page) (*Paged[model.PurchaseBill], error) {
	rows, total, err := s.store.Purchases().List(page)
	if err != nil {
		return nil, err
	}
	return paged(rows, total, page), nil
}

// UpdateDetails overwrites every detail field with the submitted values.
func (s *purchaseService) UpdateDetails(billNo uint, details model.BillDetails) (*model.PurchaseBillDetails, error) {
	if err := validate(&details); err != nil {
		return nil, err
	}
	saved, err := s.store.Purchases().UpdateDetails(billNo, details)
	if err != nil {
		return nil, translate(err, ErrBillNotFound)
	}
	return saved, nil
}
