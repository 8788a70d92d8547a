package repository

import (
	"errors"
	"strings"
	"time"

	"go-inventory-billing/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Page is a 1-based page request. Limit <= 0 means no paging.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

type StockFilter struct {
	Name           string // case-insensitive substring
	ExactName      string
	IncludeDeleted bool
	Page           Page
}

type StockRepository interface {
	Create(stock *model.Stock) error
	Update(stock *model.Stock) error
	FindByID(id uint) (*model.Stock, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(id uint) (*model.Stock, error)
	FindByIdentity(name, subCategory string) (*model.Stock, error)
	// List orders by quantity descending, then id.
	List(filter StockFilter) ([]model.Stock, int64, error)
	DistinctNames() ([]string, error)
	// SaveCounters persists quantity and total sales value only.
	SaveCounters(stock *model.Stock) error
	SoftDelete(id uint) error
	DeleteAll() error
}

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	Update(supplier *model.Supplier) error
	FindByID(id uint) (*model.Supplier, error)
	FindByName(name string) (*model.Supplier, error)
	List(includeDeleted bool, page Page) ([]model.Supplier, int64, error)
	// FirstActive returns the non-deleted supplier with the lowest id.
	FirstActive() (*model.Supplier, error)
	SoftDelete(id uint) error
	DeleteAll() error
}

type PurchaseRepository interface {
	// CreateBill inserts the header and its Details shell; Items are added separately.
	CreateBill(bill *model.PurchaseBill) error
	AddItem(item *model.PurchaseItem) error
	FindByBillNo(billNo uint) (*model.PurchaseBill, error)
	// List orders by time descending.
	List(page Page) ([]model.PurchaseBill, int64, error)
	ListBySupplier(supplierID uint, page Page) ([]model.PurchaseBill, int64, error)
	UpdateDetails(billNo uint, details model.BillDetails) (*model.PurchaseBillDetails, error)
	Delete(billNo uint) error
	DeleteAll() error
}

// SaleLine is one sold quantity with the time of its bill.
type SaleLine struct {
	Quantity int
	Time     time.Time
}

type SaleRepository interface {
	CreateBill(bill *model.SaleBill) error
	AddItem(item *model.SaleItem) error
	FindByBillNo(billNo uint) (*model.SaleBill, error)
	List(page Page) ([]model.SaleBill, int64, error)
	UpdateDetails(billNo uint, details model.BillDetails) (*model.SaleBillDetails, error)
	// LinesForProduct returns sold quantities of every stock named name since the given time.
	LinesForProduct(name string, since time.Time) ([]SaleLine, error)
	Delete(billNo uint) error
	DeleteAll() error
}

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	UpdateLastSeen(id uuid.UUID) error
}

// Store groups the repositories that share one connection so a service can
// run several of them in one transaction.
type Store interface {
	Stocks() StockRepository
	Suppliers() SupplierRepository
	Purchases() PurchaseRepository
	Sales() SaleRepository
	Users() UserRepository
	// Transaction commits when fn returns nil and rolls back otherwise.
	Transaction(fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Stocks() StockRepository       { return &stockRepo{db: s.db} }
func (s *gormStore) Suppliers() SupplierRepository { return &supplierRepo{db: s.db} }
func (s *gormStore) Purchases() PurchaseRepository { return &purchaseRepo{db: s.db} }
func (s *gormStore) Sales() SaleRepository         { return &saleRepo{db: s.db} }
func (s *gormStore) Users() UserRepository         { return &userRepo{db: s.db} }

func (s *gormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// AutoMigrate creates or updates every table the service needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Stock{},
		&model.Supplier{},
		&model.PurchaseBill{},
		&model.PurchaseItem{},
		&model.PurchaseBillDetails{},
		&model.SaleBill{},
		&model.SaleItem{},
		&model.SaleBillDetails{},
		&model.User{},
	)
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"): // sqlite
		return ErrDuplicate
	default:
		return err
	}
}

func paginate(q *gorm.DB, page Page) *gorm.DB {
	if page.Limit > 0 {
		q = q.Offset(page.Offset()).Limit(page.Limit)
	}
	return q
}
