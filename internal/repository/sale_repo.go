package repository

import (
	"time"

	"go-inventory-billing/internal/model"

	"gorm.io/gorm"
)

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateBill(bill *model.SaleBill) error {
	return translate(r.db.Omit("Items").Create(bill).Error)
}

func (r *saleRepo) AddItem(item *model.SaleItem) error {
	return translate(r.db.Omit("Stock").Create(item).Error)
}

func (r *saleRepo) FindByBillNo(billNo uint) (*model.SaleBill, error) {
	var bill model.SaleBill
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Stock").
		Preload("Details").
		First(&bill, "bill_no = ?", billNo).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (r *saleRepo) List(page Page) ([]model.SaleBill, int64, error) {
	q := r.db.Model(&model.SaleBill{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bills []model.SaleBill
	err := paginate(q.
		Preload("Items.Stock").
		Order("time DESC, bill_no DESC"), page).
		Find(&bills).Error
	return bills, total, err
}

func (r *saleRepo) UpdateDetails(billNo uint, details model.BillDetails) (*model.SaleBillDetails, error) {
	var existing model.SaleBillDetails
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

func (r *saleRepo) LinesForProduct(name string, since time.Time) ([]SaleLine, error) {
	var lines []SaleLine
	err := r.db.Table("sale_items").
		Select("sale_items.quantity AS quantity, sale_bills.time AS time").
		Joins("JOIN sale_bills ON sale_bills.bill_no = sale_items.bill_no").
		Joins("JOIN stocks ON stocks.id = sale_items.stock_id").
		Where("stocks.name = ? AND sale_bills.time >= ?", name, since.UTC()).
		Scan(&lines).Error
	return lines, err
}

func (r *saleRepo) Delete(billNo uint) error {
	if err := r.db.Where("bill_no = ?", billNo).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("bill_no = ?", billNo).Delete(&model.SaleBillDetails{}).Error; err != nil {
		return err
	}
	res := r.db.Where("bill_no = ?", billNo).Delete(&model.SaleBill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepo) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("1 = 1").Delete(&model.SaleBillDetails{}).Error; err != nil {
		return err
	}
	return r.db.Where("1 = 1").Delete(&model.SaleBill{}).Error
}
