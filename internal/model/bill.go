package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillDetails holds the optional logistics and tax text attached to a bill.
type BillDetails struct {
	EWay        *string `gorm:"column:e_way;type:varchar(50)" json:"eway" validate:"omitempty,max=50"`
	Vehicle     *string `gorm:"type:varchar(50)" json:"veh" validate:"omitempty,max=50"`
	Destination *string `gorm:"type:varchar(50)" json:"destination" validate:"omitempty,max=50"`
	PO          *string `gorm:"column:po;type:varchar(50)" json:"po" validate:"omitempty,max=50"`
	CGST        *string `gorm:"column:cgst;type:varchar(50)" json:"cgst" validate:"omitempty,max=50"`
	SGST        *string `gorm:"column:sgst;type:varchar(50)" json:"sgst" validate:"omitempty,max=50"`
	IGST        *string `gorm:"column:igst;type:varchar(50)" json:"igst" validate:"omitempty,max=50"`
	Cess        *string `gorm:"type:varchar(50)" json:"cess" validate:"omitempty,max=50"`
	TCS         *string `gorm:"column:tcs;type:varchar(50)" json:"tcs" validate:"omitempty,max=50"`
	Total       *string `gorm:"type:varchar(50)" json:"total" validate:"omitempty,max=50"`
}

// LineTotal is quantity × unit price.
func LineTotal(quantity int, perPrice decimal.Decimal) decimal.Decimal {
	return perPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

type PurchaseBill struct {
	BillNo        uint                 `gorm:"primaryKey;column:bill_no" json:"bill_no"`
	Time          time.Time            `json:"time"`
	SupplierID    uint                 `gorm:"not null;index" json:"supplier_id"`
	Supplier      *Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	AutoGenerated bool                 `gorm:"not null;default:false" json:"auto_generated"`
	Items         []PurchaseItem       `gorm:"foreignKey:BillNo;references:BillNo;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Details       *PurchaseBillDetails `gorm:"foreignKey:BillNo;references:BillNo;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// BeforeCreate stamps the bill time in UTC.
func (b *PurchaseBill) BeforeCreate(tx *gorm.DB) error {
	if b.Time.IsZero() {
		b.Time = time.Now().UTC()
	}
	return nil
}

func (b *PurchaseBill) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

type PurchaseItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BillNo     uint            `gorm:"column:bill_no;not null;index" json:"bill_no"`
	StockID    uint            `gorm:"not null;index" json:"stock_id"`
	Stock      *Stock          `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE" json:"stock,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	PerPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"per_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
}

type PurchaseBillDetails struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BillNo uint `gorm:"column:bill_no;uniqueIndex;not null" json:"bill_no"`
	BillDetails
}

type SaleBill struct {
	BillNo  uint             `gorm:"primaryKey;column:bill_no" json:"bill_no"`
	Time    time.Time        `json:"time"`
	Name    string           `gorm:"type:varchar(150);not null" json:"name"`
	Phone   string           `gorm:"type:varchar(20);not null" json:"phone"`
	Address string           `gorm:"type:varchar(200)" json:"address"`
	Email   string           `gorm:"type:varchar(254)" json:"email"`
	GSTIN   string           `gorm:"column:gstin;type:varchar(15)" json:"gstin"`
	Items   []SaleItem       `gorm:"foreignKey:BillNo;references:BillNo;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Details *SaleBillDetails `gorm:"foreignKey:BillNo;references:BillNo;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

func (b *SaleBill) BeforeCreate(tx *gorm.DB) error {
	if b.Time.IsZero() {
		b.Time = time.Now().UTC()
	}
	return nil
}

func (b *SaleBill) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

type SaleItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BillNo     uint            `gorm:"column:bill_no;not null;index" json:"bill_no"`
	StockID    uint            `gorm:"not null;index" json:"stock_id"`
	Stock      *Stock          `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE" json:"stock,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	PerPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"per_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`

	// TotalSalesValue snapshots the product's cumulative sales value after this line.
	TotalSalesValue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_sales_value"`
}

type SaleBillDetails struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BillNo uint `gorm:"column:bill_no;uniqueIndex;not null" json:"bill_no"`
	BillDetails
}
