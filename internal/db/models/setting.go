package models

import "time"

// Setting represents a platform-wide configuration setting stored in the
// database, editable from the admin settings page.
type Setting struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"unique;size:100;not null"`
	Value       []byte `gorm:"type:blob"`
	Description string `gorm:"size:255"`
	// UpdatedBy is the admin who last changed the setting.
	UpdatedBy string `gorm:"size:255"`
	UpdatedAt time.Time
}
