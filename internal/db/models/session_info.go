package models

import "time"

// SessionInfo describes one active browser session tied to an admin. The
// rows back the admin sessions page; they are created at login and marked
// inactive at logout or expiry.
type SessionInfo struct {
	// SessionID is the opaque session identifier.
	SessionID string `gorm:"primaryKey;size:64"`
	// AdminUserID is the owning admin account.
	AdminUserID uint64 `gorm:"index;not null"`
	// Device is a coarse device class (desktop, mobile, tablet).
	Device string `gorm:"size:32"`
	// Browser is the user agent string reported at login.
	Browser string `gorm:"size:255"`
	// IPAddress is the originating address.
	IPAddress string `gorm:"size:45"`
	// Location is an optional geo label.
	Location string `gorm:"size:100"`
	// CreatedAt is when the session was opened.
	CreatedAt time.Time
	// LastActivity is the time of the last qualifying request.
	LastActivity time.Time
	// Active is false once the session was logged out or expired.
	Active bool
}

// TableName specifies the database table name for the SessionInfo model.
func (SessionInfo) TableName() string {
	return "session_infos"
}
