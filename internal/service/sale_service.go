package service

import (
	"fmt"
	"strings"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/pkg/validator"

	"github.com/sirupsen/logrus"
)

// SaleInput carries the walk-in customer fields plus the sold lines.
type SaleInput struct {
	Name    string      `json:"name" validate:"required,max=150"`
	Phone   string      `json:"phone" validate:"required,phone"`
	Address string      `json:"address" validate:"max=200"`
	Email   string      `json:"email" validate:"omitempty,email,max=254"`
	GSTIN   string      `json:"gstin" validate:"omitempty,gstin"`
	Items   []LineInput `json:"items"`
}

func (in *SaleInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))

	if err := validate(in); err != nil {
		return err
	}
	phone, err := validator.NormalizePhone(in.Phone)
	if err != nil {
		return fieldError("phone", "enter a valid phone number")
	}
	in.Phone = phone
	return checkLines(in.Items)
}

type SaleResult struct {
	Bill     *model.SaleBill      `json:"bill"`
	Reorders []model.PurchaseBill `json:"reorders"`
}

type SaleService interface {
	Create(in SaleInput) (*SaleResult, error)
	Delete(billNo uint) (*SaleResult, error)
	Get(billNo uint) (*model.SaleBill, error)
	List(page repository.Page) (*Paged[model.SaleBill], error)
	UpdateDetails(billNo uint, details model.BillDetails) (*model.SaleBillDetails, error)
}

type saleService struct {
	store  repository.Store
	ledger *StockLedger
	pub    Publisher
	log    *logrus.Logger
}

func NewSaleService(store repository.Store, ledger *StockLedger, pub Publisher, log *logrus.Logger) SaleService {
	return &saleService{store: store, ledger: ledger, pub: orNop(pub), log: log}
}

// Create records a sale and takes every line out of stock. Quantities are not
// floored at zero. Each line's total is added to the stock's sales value and
// the running value is copied onto the item.
func (s *saleService) Create(in SaleInput) (*SaleResult, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	result := &SaleResult{Reorders: []model.PurchaseBill{}}
	var box outbox
	err := s.store.Transaction(func(tx repository.Store) error {
		bill := &model.SaleBill{
			Name:    in.Name,
			Phone:   in.Phone,
			Address: in.Address,
			Email:   in.Email,
			GSTIN:   in.GSTIN,
			Details: &model.SaleBillDetails{},
		}
		if err := tx.Sales().CreateBill(bill); err != nil {
			return err
		}

		for _, line := range in.Items {
			stock, err := resolveStock(tx, line)
			if err != nil {
				return err
			}

			total := model.LineTotal(line.Quantity, line.PerPrice)
			stock, reorders, err := s.ledger.Adjust(tx, stock.ID, -line.Quantity, AdjustOptions{SalesValue: total})
			if err != nil {
				return err
			}
			result.Reorders = append(result.Reorders, reorders...)

			item := &model.SaleItem{
				BillNo:          bill.BillNo,
				StockID:         stock.ID,
				Quantity:        line.Quantity,
				PerPrice:        line.PerPrice,
				TotalPrice:      total,
				TotalSalesValue: stock.TotalSalesValue,
			}
			if err := tx.Sales().AddItem(item); err != nil {
				return err
			}
		}

		saved, err := tx.Sales().FindByBillNo(bill.BillNo)
		if err != nil {
			return translate(err, ErrBillNotFound)
		}
		result.Bill = saved

		box.add(Event{
			Type:    EventSaleCreated,
			Action:  "sale_created",
			Data:    saved,
			Message: fmt.Sprintf("sale bill #%d for '%s'", saved.BillNo, saved.Name),
		})
		addReorderEvents(&box, result.Reorders)
		return nil
	})
	if err != nil {
		logUnexpected(s.log, "saleService", "Create", in.Name, err)
		return nil, err
	}

	box.flush(s.pub)
	return result, nil
}

// Delete puts the sold quantities back and removes the bill. Unlike purchase
// deletion, reorders are not suppressed here, so a restored stock that is still
// below threshold raises one.
func (s *saleService) Delete(billNo uint) (*SaleResult, error) {
	result := &SaleResult{Reorders: []model.PurchaseBill{}}
	var box outbox
	err := s.store.Transaction(func(tx repository.Store) error {
		bill, err := tx.Sales().FindByBillNo(billNo)
		if err != nil {
			return translate(err, ErrBillNotFound)
		}
		result.Bill = bill

		for _, item := range bill.Items {
			stock, reorders, err := s.ledger.Adjust(tx, item.StockID, item.Quantity, AdjustOptions{
				IgnoreDeleted: true,
				SalesValue:    item.TotalPrice.Neg(),
			})
			if err != nil {
				return err
			}
			result.Reorders = append(result.Reorders, reorders...)
			box.add(Event{Type: EventStockUpdate, Action: "sale_reversed", Data: stock})
		}

		if err := tx.Sales().Delete(billNo); err != nil {
			return translate(err, ErrBillNotFound)
		}
		box.add(Event{
			Type:    EventBillDeleted,
			Action:  "sale_deleted",
			Data:    map[string]uint{"bill_no": billNo},
			Message: fmt.Sprintf("sale bill #%d deleted", billNo),
		})
		addReorderEvents(&box, result.Reorders)
		return nil
	})
	if err != nil {
		logUnexpected(s.log, "saleService", "Delete", billNo, err)
		return nil, err
	}

	box.flush(s.pub)
	return result, nil
}

func (s *saleService) Get(billNo uint) (*model.SaleBill, error) {
	bill, err := s.store.Sales().FindByBillNo(billNo)
	if err != nil {
		return nil, translate(err, ErrBillNotFound)
	}
	return bill, nil
}

func (s *saleService) List(page repository.Page) (*Paged[model.SaleBill], error) {
	rows, total, err := s.store.Sales().List(page)
	if err != nil {
		return nil, err
	}
	return paged(rows, total, page), nil
}

func (s *saleService) UpdateDetails(billNo uint, details model.BillDetails) (*model.SaleBillDetails, error) {
	if err := validate(&details); err != nil {
		return nil, err
	}
	saved, err := s.store.Sales().UpdateDetails(billNo, details)
	if err != nil {
		return nil, translate(err, ErrBillNotFound)
	}
	return saved, nil
}
