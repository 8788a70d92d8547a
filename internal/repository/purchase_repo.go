package repository

import (
	"go-inventory-billing/internal/model"

	"gorm.io/gorm"
)

var detailColumns = []string{"e_way", "vehicle", "destination", "po", "cgst", "sgst", "igst", "cess", "tcs", "total"}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) CreateBill(bill *model.PurchaseBill) error {
	return translate(r.db.Omit("Supplier", "Items").Create(bill).Error)
}

func (r *purchaseRepo) AddItem(item *model.PurchaseItem) error {
	return translate(r.db.Omit("Stock").Create(item).Error)
}

func (r *purchaseRepo) preloaded() *gorm.DB {
	return r.db.
		Preload("Supplier").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Stock").
		Preload("Details")
}

func (r *purchaseRepo) FindByBillNo(billNo uint) (*model.PurchaseBill, error) {
	var bill model.PurchaseBill
	if err := r.preloaded().First(&bill, "bill_no = ?", billNo).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (r *purchaseRepo) List(page Page) ([]model.PurchaseBill, int64, error) {
	return r.list(r.db.Model(&model.PurchaseBill{}), page)
}

func (r *purchaseRepo) ListBySupplier(supplierID uint, page Page) ([]model.PurchaseBill, int64, error) {
	return r.list(r.db.Model(&model.PurchaseBill{}).Where("supplier_id = ?", supplierID), page)
}

func (r *purchaseRepo) list(q *gorm.DB, page Page) ([]model.PurchaseBill, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bills []model.PurchaseBill
	err := paginate(q.
		Preload("Supplier").
		Preload("Items.Stock").
		Order("time DESC, bill_no DESC"), page).
		Find(&bills).Error
	return bills, total, err
}

func (r *purchaseRepo) UpdateDetails(billNo uint, details model.BillDetails) (*model.PurchaseBillDetails, error) {
	var existing model.PurchaseBillDetails
	if err := r.db.First(&existing, "bill_no = ?", billNo).Error; err != nil {
		return nil, translate(err)
	}

	existing.BillDetails = details
	err := r.db.Model(&existing).
		Select(detailColumns).
		Updates(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *purchaseRepo) Delete(billNo uint) error {
	if err := r.db.Where("bill_no = ?", billNo).Delete(&model.PurchaseItem{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("bill_no = ?", billNo).Delete(&model.PurchaseBillDetails{}).Error; err != nil {
		return err
	}
	res := r.db.Where("bill_no = ?", billNo).Delete(&model.PurchaseBill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *purchaseRepo) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&model.PurchaseItem{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("1 = 1").Delete(&model.PurchaseBillDetails{}).Error; err != nil {
		return err
	}
	return r.db.Where("1 = 1").Delete(&model.PurchaseBill{}).Error
}
