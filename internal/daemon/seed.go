package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/propertychain/propertychain-admin/internal/config"
	"github.com/propertychain/propertychain-admin/internal/db/models"
	"github.com/propertychain/propertychain-admin/internal/rbac"
)

// seed creates one demo account per role on an empty database. The
// super-admin account is two-factor enabled so the verification flow can be
// exercised out of the box.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.AdminUser{}).Count(&count)
	if count > 0 {
		return
	}

	accounts := []models.AdminUser{
		{
			Active:           true,
			Email:            "admin@propertychain.example",
			Password:         models.HashPassword("changeme-changeme"),
			DisplayName:      "Platform Admin",
			Role:             string(rbac.RoleSuperAdmin),
			TwoFactorEnabled: true,
			Department:       "Platform",
		},
		{
			Active:      true,
			Email:       "properties@propertychain.example",
			Password:    models.HashPassword("changeme-changeme"),
			DisplayName: "Property Manager",
			Role:        string(rbac.RolePropertyManager),
			Department:  "Operations",
		},
		{
			Active:      true,
			Email:       "support@propertychain.example",
			Password:    models.HashPassword("changeme-changeme"),
			DisplayName: "Support Staff",
			Role:        string(rbac.RoleSupportStaff),
			Department:  "Support",
		},
		{
			Active:      true,
			Email:       "finance@propertychain.example",
			Password:    models.HashPassword("changeme-changeme"),
			DisplayName: "Finance Manager",
			Role:        string(rbac.RoleFinanceManager),
			Department:  "Finance",
		},
	}

	for i := range accounts {
		if result := db.Create(&accounts[i]); result.Error != nil {
			log.Error().
				Err(result.Error).
				Str("email", accounts[i].Email).
				Msg("failed to seed admin account")
		}
	}

	log.Info().Int("accounts", len(accounts)).Msg("seeded demo admin accounts")
}
