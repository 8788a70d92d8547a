package model

import "time"

type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null;index" json:"name"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Address   string    `gorm:"type:varchar(200)" json:"address"`
	Email     string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	GSTIN     string    `gorm:"column:gstin;type:varchar(15);uniqueIndex;not null" json:"gstin"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PurchaseBills []PurchaseBill `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
}
