package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:150;not null"`
	CategoryID *uint  `gorm:"index"`
	Category   *Category
	Rate       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImagePath  string          `gorm:"size:255"` // relative path under the upload dir
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
