package models

import "time"

// AlertKind classifies an advisory.
type AlertKind string

const (
	AlertLowStock   AlertKind = "LOW_STOCK"
	AlertNearExpiry AlertKind = "NEAR_EXPIRY"
	AlertExpired    AlertKind = "EXPIRED"
)

// Alert is a derived advisory about stock state. The whole table is
// regenerated from inventory on every evaluation run.
type Alert struct {
	ID              uint      `gorm:"primaryKey"                   json:"id"`
	Kind            AlertKind `gorm:"column:type;size:20;not null" json:"type"`
	Message         string    `gorm:"type:text;not null"           json:"message"`
	ProductID       uint      `gorm:"index"                        json:"product_id"`
	BranchID        uint      `gorm:"index"                        json:"branch_id"`
	Quantity        int       `json:"quantity"`
	DaysUntilExpiry *int      `json:"days_until_expiry,omitempty"`
	IsRead          bool      `gorm:"not null;default:false"       json:"is_read"`
	CreatedAt       time.Time `gorm:"index"                        json:"created_at"`
}
