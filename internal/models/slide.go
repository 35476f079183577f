package models

import "time"

type Slide struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"size:255;not null"`
	ImagePath string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
