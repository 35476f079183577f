package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry: one stock-keeping unit with its quantity on hand and unit rate.
// ProductCode is a free-text reference; it is not required to match a
// catalogue Product and duplicates across entries are allowed.
type StockEntry struct {
	ID          uint   `gorm:"primaryKey"`
	ProductCode string `gorm:"size:100;not null;index"`
	ProductName string `gorm:"size:150;not null"`
	CategoryID  *uint  `gorm:"index"`
	Category    *Category
	Quantity    int             `gorm:"not null"` // never negative, enforced by the ledger
	Rate        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
