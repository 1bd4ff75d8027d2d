package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalogue.
//
// Barcode and LocalCode are optional but unique when present, so they are
// stored as nullable columns.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:100;not null;index"        json:"name"`
	LocalName   string          `gorm:"size:100"                       json:"local_name"`
	Description string          `gorm:"type:text"                      json:"description"`
	SKU         string          `gorm:"size:50;uniqueIndex;not null"   json:"sku"`
	Barcode     *string         `gorm:"size:50;uniqueIndex"            json:"barcode,omitempty"`
	LocalCode   *string         `gorm:"size:50;uniqueIndex"            json:"local_code,omitempty"`
	Category    string          `gorm:"size:50;not null"               json:"category"`
	Brand       string          `gorm:"size:100"                       json:"brand"`
	Supplier    string          `gorm:"size:100"                       json:"supplier"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"    json:"unit_price"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"    json:"cost_price"`
}
