package models

import (
	"time"

	"gorm.io/datatypes"
)

// Page slugs with a stored JSON document.
const (
	PageHome    = "home"
	PageAbout   = "about"
	PageContact = "contact"
)

// KnownPageSlug reports whether slug names one of the managed pages.
func KnownPageSlug(slug string) bool {
	return slug == PageHome || slug == PageAbout || slug == PageContact
}

// PageInfo holds the full JSON document backing a static page. Updates
// replace the whole document.
type PageInfo struct {
	Slug      string         `json:"slug" gorm:"primaryKey;type:varchar(32)"`
	Data      datatypes.JSON `json:"data" gorm:"not null"`
	UpdatedAt time.Time      `json:"updated_at"`
}
