package repository

import (
	"go-inventory-billing/internal/model"

	"gorm.io/gorm"
)

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return translate(r.db.Create(supplier).Error)
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	// Callers load the row first; MySQL reports zero affected rows for no-op updates.
	return translate(r.db.Model(supplier).
		Select("name", "phone", "address", "email", "gstin").
		Updates(supplier).Error)
}

func (r *supplierRepo) FindByID(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) FindByName(name string) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Where("name = ?", name).Order("id ASC").First(&supplier).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) List(includeDeleted bool, page Page) ([]model.Supplier, int64, error) {
	q := r.db.Model(&model.Supplier{})
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []model.Supplier
	err := paginate(q.Order("id ASC"), page).Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepo) FirstActive() (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.Where("is_deleted = ?", false).Order("id ASC").First(&supplier).Error; err != nil {
		return nil, translate(err)
	}
	return &supplier, nil
}

func (r *supplierRepo) SoftDelete(id uint) error {
	res := r.db.Model(&model.Supplier{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	// MySQL counts changed rows only, so a repeated delete looks like a miss there
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *supplierRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.Supplier{}).Error
}
