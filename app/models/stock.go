package models

import "time"

// StockStatus is the operator-visible state of a stock record.
type StockStatus string

const (
	StockAvailable StockStatus = "AVAILABLE"
	StockExpired   StockStatus = "EXPIRED"
)

// StockRecord is the quantity on hand of one product at one branch.
// QuantityOnHand never goes below zero.
type StockRecord struct {
	ID             uint        `gorm:"primaryKey"                                          json:"id"`
	ProductID      uint        `gorm:"not null;uniqueIndex:idx_stock_product_branch"       json:"product_id"`
	BranchID       uint        `gorm:"not null;uniqueIndex:idx_stock_product_branch;index" json:"branch_id"`
	QuantityOnHand int         `gorm:"not null;check:quantity_on_hand >= 0"                json:"quantity_on_hand"`
	ThresholdMin   int         `gorm:"not null"                                            json:"threshold_min"`
	ExpiryDate     *time.Time  `gorm:"index"                                               json:"expiry_date,omitempty"`
	EntryDate      time.Time   `json:"entry_date"`
	BatchNumber    string      `gorm:"size:50"                                             json:"batch_number"`
	Status         StockStatus `gorm:"size:20;not null"                                    json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"last_updated"`

	Product *Product `json:"product,omitempty"`
	Branch  *Branch  `json:"branch,omitempty"`
}

func (StockRecord) TableName() string { return "inventory" }
