package service

import (
	"fmt"
	"strings"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/pkg/validator"

	"github.com/sirupsen/logrus"
)

type SupplierInput struct {
	Name    string `json:"name" validate:"required,max=150"`
	Phone   string `json:"phone" validate:"required,phone"`
	Address string `json:"address" validate:"max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	GSTIN   string `json:"gstin" validate:"required,gstin"`
}

// normalize trims the input and rewrites phone and GSTIN to their stored forms.
func (in *SupplierInput) normalize() error {
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
	return nil
}

type SupplierProfile struct {
	Supplier *model.Supplier            `json:"supplier"`
	Bills    *Paged[model.PurchaseBill] `json:"bills"`
}

type SupplierService interface {
	Create(in SupplierInput) (*model.Supplier, error)
	Update(id uint, in SupplierInput) (*model.Supplier, error)
	Delete(id uint) error
	Get(id uint) (*model.Supplier, error)
	List(page repository.Page) (*Paged[model.Supplier], error)
	Profile(name string, page repository.Page) (*SupplierProfile, error)
	// Select checks that id names an active supplier a purchase can be raised against.
	Select(id uint) (*model.Supplier, error)
}

type supplierService struct {
	store repository.Store
	log   *logrus.Logger
}

func NewSupplierService(store repository.Store, log *logrus.Logger) SupplierService {
	return &supplierService{store: store, log: log}
}

func (s *supplierService) Create(in SupplierInput) (*model.Supplier, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
		Email:   in.Email,
		GSTIN:   in.GSTIN,
	}
	if err := s.store.Suppliers().Create(supplier); err != nil {
		err = translate(err, ErrSupplierNotFound)
		logUnexpected(s.log, "supplierService", "Create", in, err)
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Update(id uint, in SupplierInput) (*model.Supplier, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	supplier, err := s.store.Suppliers().FindByID(id)
	if err != nil {
		return nil, translate(err, ErrSupplierNotFound)
	}
	supplier.Name = in.Name
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	supplier.Email = in.Email
	supplier.GSTIN = in.GSTIN

	if err := s.store.Suppliers().Update(supplier); err != nil {
		err = translate(err, ErrSupplierNotFound)
		logUnexpected(s.log, "supplierService", "Update", id, err)
		return nil, err
	}
	return supplier, nil
}

// Delete retires a supplier. Its bills stay, and it is no longer picked for reorders.
func (s *supplierService) Delete(id uint) error {
	return translate(s.store.Suppliers().SoftDelete(id), ErrSupplierNotFound)
}

func (s *supplierService) Get(id uint) (*model.Supplier, error) {
	supplier, err := s.store.Suppliers().FindByID(id)
	if err != nil {
		return nil, translate(err, ErrSupplierNotFound)
	}
	return supplier, nil
}

func (s *supplierService) List(page repository.Page) (*Paged[model.Supplier], error) {
	rows, total, err := s.store.Suppliers().List(false, page)
	if err != nil {
		return nil, err
	}
	return paged(rows, total, page), nil
}

func (s *supplierService) Profile(name string, page repository.Page) (*SupplierProfile, error) {
	supplier, err := s.store.Suppliers().FindByName(name)
	if err != nil {
		return nil, translate(err, ErrSupplierNotFound)
	}
	bills, total, err := s.store.Purchases().ListBySupplier(supplier.ID, page)
	if err != nil {
		return nil, err
	}
	return &SupplierProfile{Supplier: supplier, Bills: paged(bills, total, page)}, nil
}

func (s *supplierService) Select(id uint) (*model.Supplier, error) {
	supplier, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if supplier.IsDeleted {
		return nil, fmt.Errorf("%w: supplier %d is deleted", ErrSupplierNotFound, id)
	}
	return supplier, nil
}
