// Package models contains database model definitions.
package models

import (
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AdminUser represents an administrative account of the PropertyChain
// platform. Accounts carry one of the fixed roles; the role decides the
// permission set through the static rbac tables.
type AdminUser struct {
	// ID is the unique identifier for the admin.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the account can log in.
	Active bool
	// Email is the unique login address.
	Email string `gorm:"unique;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// DisplayName is shown in the admin header and audit trail.
	DisplayName string `gorm:"size:100"`
	// Role is the fixed role name (super-admin, property-manager,
	// support-staff or finance-manager).
	Role string `gorm:"size:50;not null"`
	// TwoFactorEnabled gates the account behind code verification at login.
	TwoFactorEnabled bool
	// TwoFactorSecret is the base32 TOTP secret; empty for accounts using
	// the static demo verifier.
	TwoFactorSecret string `gorm:"size:64"`
	// LastLoginAt is the time of the most recent successful login.
	LastLoginAt *time.Time
	// LastLoginIP is the originating address of the most recent login.
	LastLoginIP string `gorm:"size:45"`
	// AllowedIPs is an optional comma separated allow-list; empty allows any.
	AllowedIPs string `gorm:"size:1024"`
	// Department the admin belongs to.
	Department string `gorm:"size:100"`
	// Phone is the contact number.
	Phone string `gorm:"size:32"`
	// CreatedAt is the timestamp when the account was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the account was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the AdminUser model.
func (AdminUser) TableName() string {
	return "admin_users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the stored hash.
// It uses constant-time comparison to prevent timing attacks.
func (u *AdminUser) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// IPAllowed reports whether the given address passes the account's optional
// allow-list. An empty list allows any address.
func (u *AdminUser) IPAllowed(ip string) bool {
	if u.AllowedIPs == "" {
		return true
	}

	for _, allowed := range strings.Split(u.AllowedIPs, ",") {
		if strings.TrimSpace(allowed) == ip {
			return true
		}
	}

	return false
}
