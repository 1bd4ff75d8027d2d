package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only record of one completed transaction.
// TotalAmount always equals the sum of its line prices.
type Sale struct {
	ID          uint            `gorm:"primaryKey"                  json:"id"`
	Reference   string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	UserID      uint            `gorm:"not null;index"              json:"user_id"`
	BranchID    uint            `gorm:"not null;index"              json:"branch_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	PaymentType string          `gorm:"size:20;not null"            json:"payment_type"`
	SaleDate    time.Time       `gorm:"not null;index"              json:"sale_date"`

	Items []SaleLineItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleLineItem is one basket line. Price is the line total charged at sale
// time and does not follow later catalogue price changes.
type SaleLineItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"id"`
	SaleID    uint            `gorm:"not null;index"              json:"sale_id"`
	ProductID uint            `gorm:"not null;index"              json:"product_id"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`

	Product *Product `json:"product,omitempty"`
}

func (SaleLineItem) TableName() string { return "sale_items" }
