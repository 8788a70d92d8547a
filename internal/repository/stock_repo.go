package repository

import (
	"strings"

	"go-inventory-billing/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(stock *model.Stock) error {
	return translate(r.db.Create(stock).Error)
}

func (r *stockRepo) Update(stock *model.Stock) error {
	// Callers load the row first; MySQL reports zero affected rows for no-op updates.
	return translate(r.db.Model(stock).
		Select("name", "sub_category", "quantity", "cost", "reorder_point").
		Updates(stock).Error)
}

func (r *stockRepo) FindByID(id uint) (*model.Stock, error) {
	var stock model.Stock
	if err := r.db.First(&stock, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

func (r *stockRepo) FindByIDForUpdate(id uint) (*model.Stock, error) {
	var stock model.Stock
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stock, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

func (r *stockRepo) FindByIdentity(name, subCategory string) (*model.Stock, error) {
	var stock model.Stock
	err := r.db.Where("name = ? AND sub_category = ?", name, subCategory).First(&stock).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

func (r *stockRepo) List(filter StockFilter) ([]model.Stock, int64, error) {
	q := r.db.Model(&model.Stock{})
	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.ExactName != "" {
		q = q.Where("name = ?", filter.ExactName)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stocks []model.Stock
	err := paginate(q.Order("quantity DESC, id ASC"), filter.Page).Find(&stocks).Error
	return stocks, total, err
}

func (r *stockRepo) DistinctNames() ([]string, error) {
	var names []string
	err := r.db.Model(&model.Stock{}).
		Where("is_deleted = ?", false).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *stockRepo) SaveCounters(stock *model.Stock) error {
	return r.db.Model(&model.Stock{}).
		Where("id = ?", stock.ID).
		Updates(map[string]interface{}{
			"quantity":          stock.Quantity,
			"total_sales_value": stock.TotalSalesValue,
		}).Error
}

func (r *stockRepo) SoftDelete(id uint) error {
	res := r.db.Model(&model.Stock{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	// MySQL counts changed rows only, so a repeated delete looks like a miss there
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.Stock{}).Error
}
