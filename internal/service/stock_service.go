package service

import (
	"fmt"
	"sort"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type StockInput struct {
	Name         string          `json:"name" validate:"required,max=30"`
	SubCategory  string          `json:"sub_category" validate:"max=30"`
	Quantity     *int            `json:"quantity" validate:"omitempty,gte=0"`
	Cost         decimal.Decimal `json:"cost"`
	ReorderPoint int             `json:"reorder_point" validate:"gte=0"`
}

func (in *StockInput) check() error {
	if err := validate(in); err != nil {
		return err
	}
	if in.Cost.IsNegative() {
		return fieldError("cost", "must not be negative")
	}
	return nil
}

// StockChange is a saved stock together with any purchase bills its save raised.
type StockChange struct {
	Stock    *model.Stock         `json:"stock"`
	Reorders []model.PurchaseBill `json:"reorders"`
}

type StockService interface {
	Create(in StockInput) (*model.Stock, error)
	Update(id uint, in StockInput) (*StockChange, error)
	Delete(id uint) error
	Get(id uint) (*model.Stock, error)
	List(name string, page repository.Page) (*Paged[model.Stock], error)
	Variants(id uint) ([]model.Stock, error)
	ReorderList() ([]model.Stock, error)
}

type stockService struct {
	store     repository.Store
	ledger    *StockLedger
	threshold int
	pub       Publisher
	log       *logrus.Logger
}

func NewStockService(store repository.Store, ledger *StockLedger, threshold int, pub Publisher, log *logrus.Logger) StockService {
	return &stockService{
		store:     store,
		ledger:    ledger,
		threshold: threshold,
		pub:       orNop(pub),
		log:       log,
	}
}

// Create stores a new stock. New stock never triggers a reorder.
func (s *stockService) Create(in StockInput) (*model.Stock, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	stock := &model.Stock{
		Name:         in.Name,
		SubCategory:  in.SubCategory,
		Quantity:     1,
		Cost:         in.Cost,
		ReorderPoint: in.ReorderPoint,
	}
	if in.Quantity != nil {
		stock.Quantity = *in.Quantity
	}

	if err := s.store.Stocks().Create(stock); err != nil {
		return nil, translate(err, ErrStockNotFound)
	}

	s.pub.Publish(Event{
		Type:    EventStockUpdate,
		Action:  "stock_created",
		Data:    stock,
		Message: fmt.Sprintf("stock '%s' created", stock.FullName()),
	})
	return stock, nil
}

// Update edits a stock in place and then settles it, so an edit that leaves the
// quantity below threshold raises a reorder.
func (s *stockService) Update(id uint, in StockInput) (*StockChange, error) {
	if err := in.check(); err != nil {
		return nil, err
	}

	var change StockChange
	var box outbox
	err := s.store.Transaction(func(tx repository.Store) error {
		stock, err := tx.Stocks().FindByIDForUpdate(id)
		if err != nil {
			return translate(err, ErrStockNotFound)
		}

		oldQuantity := stock.Quantity
		stock.Name = in.Name
		stock.SubCategory = in.SubCategory
		stock.Cost = in.Cost
		stock.ReorderPoint = in.ReorderPoint
		if in.Quantity != nil {
			stock.Quantity = *in.Quantity
		}
		if err := tx.Stocks().Update(stock); err != nil {
			return translate(err, ErrStockNotFound)
		}

		bills, err := s.ledger.Settle(tx, stock)
		if err != nil {
			return err
		}

		change = StockChange{Stock: stock, Reorders: bills}
		box.add(Event{
			Type:   EventStockUpdate,
			Action: "stock_updated",
			Data: map[string]interface{}{
				"stock":        stock,
				"old_quantity": oldQuantity,
			},
			Message: fmt.Sprintf("stock '%s' updated", stock.FullName()),
		})
		addReorderEvents(&box, bills)
		return nil
	})
	if err != nil {
		logUnexpected(s.log, "stockService", "Update", id, err)
		return nil, err
	}

	box.flush(s.pub)
	if change.Reorders == nil {
		change.Reorders = []model.PurchaseBill{}
	}
	return &change, nil
}

func (s *stockService) Delete(id uint) error {
	if err := s.store.Stocks().SoftDelete(id); err != nil {
		return translate(err, ErrStockNotFound)
	}
	s.pub.Publish(Event{Type: EventStockUpdate, Action: "stock_deleted", Data: map[string]uint{"id": id}})
	return nil
}

func (s *stockService) Get(id uint) (*model.Stock, error) {
	stock, err := s.store.Stocks().FindByID(id)
	if err != nil {
		return nil, translate(err, ErrStockNotFound)
	}
	return stock, nil
}

func (s *stockService) List(name string, page repository.Page) (*Paged[model.Stock], error) {
	rows, total, err := s.store.Stocks().List(repository.StockFilter{Name: name, Page: page})
	if err != nil {
		return nil, err
	}
	return paged(rows, total, page), nil
}

// Variants lists the active stocks sharing the name of stock id.
func (s *stockService) Variants(id uint) ([]model.Stock, error) {
	stock, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.store.Stocks().List(repository.StockFilter{ExactName: stock.Name})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReorderList returns active stocks below their threshold, lowest quantity first.
func (s *stockService) ReorderList() ([]model.Stock, error) {
	rows, _, err := s.store.Stocks().List(repository.StockFilter{})
	if err != nil {
		return nil, err
	}

	low := []model.Stock{}
	for _, st := range rows {
		if st.Quantity < st.Threshold(s.threshold) {
			low = append(low, st)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return low, nil
}

func addReorderEvents(box *outbox, bills []model.PurchaseBill) {
	for i := range bills {
		bill := bills[i]
		box.add(Event{
			Type:    EventReorderCreated,
			Action:  "purchase_auto_generated",
			Data:    bill,
			Message: fmt.Sprintf("purchase bill #%d raised automatically", bill.BillNo),
		})
	}
}
