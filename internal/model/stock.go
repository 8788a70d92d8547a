package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is one product line. (Name, SubCategory) identifies it.
type Stock struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(30);not null;uniqueIndex:idx_stock_identity" json:"name"`
	SubCategory string `gorm:"type:varchar(30);not null;default:'';uniqueIndex:idx_stock_identity" json:"sub_category"`

	// Quantity is not floored; sales may drive it negative.
	Quantity        int             `gorm:"not null" json:"quantity"`
	Cost            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"cost"`
	IsDeleted       bool            `gorm:"not null;default:false;index" json:"is_deleted"`
	TotalSalesValue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_sales_value"`

	// ReorderPoint overrides the configured threshold when positive.
	ReorderPoint int `gorm:"not null;default:0" json:"reorder_point"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display label used by dashboards and bills.
func (s *Stock) FullName() string {
	if s.SubCategory == "" {
		return s.Name
	}
	return s.Name + " (" + s.SubCategory + ")"
}

// Threshold returns the reorder threshold that applies to this stock.
func (s *Stock) Threshold(fallback int) int {
	if s.ReorderPoint > 0 {
		return s.ReorderPoint
	}
	return fallback
}
