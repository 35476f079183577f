package models

import "time"

type Scheme struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:150;not null"`
	Description string `gorm:"type:text"`
	ImagePath   string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
