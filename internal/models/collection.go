package models

import "time"

// Collection groups products under a slug (e.g. "summer-2025").
type Collection struct {
	Slug        string    `json:"slug" gorm:"primaryKey;type:varchar(191)" validate:"required,min=1,max=191"`
	Title       string    `json:"title" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,min=1,max=255"`
	HeaderImage string    `json:"header_image,omitempty" validate:"omitempty,url"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
