package service

import (
	"io"
	"sync"
	"testing"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/internal/repository/repotest"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := payload.(Event); ok {
		r.events = append(r.events, e)
	}
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type env struct {
	store     repository.Store
	db        *gorm.DB
	ledger    *StockLedger
	pub       *recorder
	stocks    StockService
	suppliers SupplierService
	purchases PurchaseService
	sales     SaleService
	reports   ReportService
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newEnv(t *testing.T) *env {
	t.Helper()

	log := quietLogger()
	store, db := repotest.Open(t)
	ledger := NewStockLedger(NewReorderer(config.ReorderConfig{Threshold: 5, Excess: 5}, log))
	pub := &recorder{}

	return &env{
		store:     store,
		db:        db,
		ledger:    ledger,
		pub:       pub,
		stocks:    NewStockService(store, ledger, 5, pub, log),
		suppliers: NewSupplierService(store, log),
		purchases: NewPurchaseService(store, ledger, pub, log),
		sales:     NewSaleService(store, ledger, pub, log),
		reports:   NewReportService(store, 5),
	}
}

func (e *env) stock(t *testing.T, name, sub string, qty int, cost string) *model.Stock {
	t.Helper()
	st := &model.Stock{Name: name, SubCategory: sub, Quantity: qty, Cost: decimal.RequireFromString(cost)}
	if err := e.store.Stocks().Create(st); err != nil {
		t.Fatalf("create stock %s: %v", name, err)
	}
	return st
}

func (e *env) supplier(t *testing.T, name, phone, email, gstin string) *model.Supplier {
	t.Helper()
	sup := &model.Supplier{Name: name, Phone: phone, Email: email, GSTIN: gstin}
	if err := e.store.Suppliers().Create(sup); err != nil {
		t.Fatalf("create supplier %s: %v", name, err)
	}
	return sup
}

func (e *env) quantity(t *testing.T, id uint) int {
	t.Helper()
	st, err := e.store.Stocks().FindByID(id)
	if err != nil {
		t.Fatalf("find stock %d: %v", id, err)
	}
	return st.Quantity
}

// autoBills returns every auto-generated purchase bill currently stored.
func (e *env) autoBills(t *testing.T) []model.PurchaseBill {
	t.Helper()
	bills, _, err := e.store.Purchases().List(repositoryAll)
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	var auto []model.PurchaseBill
	for _, b := range bills {
		if b.AutoGenerated {
			auto = append(auto, b)
		}
	}
	return auto
}

var repositoryAll = repository.Page{}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
