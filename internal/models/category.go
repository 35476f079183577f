package models

import "time"

type CategoryType string

const (
	CategoryTypeProduct CategoryType = "product"
	CategoryTypeStock   CategoryType = "stock"
)

type Category struct {
	ID        uint         `gorm:"primaryKey"`
	Name      string       `gorm:"size:100;not null"`
	Type      CategoryType `gorm:"size:20;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
