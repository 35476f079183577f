package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill: a committed invoice. Rows are append-only and never updated; the
// total is frozen at commit time together with the item snapshots.
type Bill struct {
	ID              uint   `gorm:"primaryKey"`
	CustomerName    string `gorm:"size:150;not null"`
	CustomerPhone   string `gorm:"size:30;not null"`
	CustomerAddress string `gorm:"size:255"`
	InvoiceDate     time.Time       `gorm:"not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items           []BillItem      `gorm:"foreignKey:BillID"`
	CreatedAt       time.Time
}

// BillItem: product identity, quantity and rate as they were when the line
// was added to the draft, not a live reference into the stock ledger.
type BillItem struct {
	ID          uint   `gorm:"primaryKey"`
	BillID      uint   `gorm:"index;not null"`
	ProductCode string `gorm:"size:100;not null"`
	ProductName string `gorm:"size:150;not null"`
	Quantity    int    `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
