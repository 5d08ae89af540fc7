package models

import "time"

// ProductType categorizes products orthogonally to collections
// (e.g. "dresses", "accessories").
type ProductType struct {
	Slug      string    `json:"slug" gorm:"primaryKey;type:varchar(191)" validate:"required,min=1,max=191"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
