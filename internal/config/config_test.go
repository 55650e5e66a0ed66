package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	// Test security settings
	if cfg.Security.WarnAfterMinutes != 25 {
		t.Errorf("Security.WarnAfterMinutes = %d, want 25", cfg.Security.WarnAfterMinutes)
	}

	if cfg.Security.ExpireAfterMinutes != 30 {
		t.Errorf("Security.ExpireAfterMinutes = %d, want 30", cfg.Security.ExpireAfterMinutes)
	}

	if cfg.Security.RouteAccessDefault != RouteAccessAllow {
		t.Errorf("Security.RouteAccessDefault = %q, want %q", cfg.Security.RouteAccessDefault, RouteAccessAllow)
	}

	if cfg.Security.ActivityLogCap != 100 {
		t.Errorf("Security.ActivityLogCap = %d, want 100", cfg.Security.ActivityLogCap)
	}
}

func TestValidateSecurityDefaults(t *testing.T) {
	s := Security{}

	if err := validateSecurity(&s); err != nil {
		t.Fatalf("validateSecurity() error = %v", err)
	}

	if s.WarnAfterMinutes != 25 {
		t.Errorf("WarnAfterMinutes default = %d, want 25", s.WarnAfterMinutes)
	}

	if s.ExpireAfterMinutes != 30 {
		t.Errorf("ExpireAfterMinutes default = %d, want 30", s.ExpireAfterMinutes)
	}

	if s.ActivityLogCap != 100 {
		t.Errorf("ActivityLogCap default = %d, want 100", s.ActivityLogCap)
	}

	if s.RouteAccessDefault != RouteAccessAllow {
		t.Errorf("RouteAccessDefault default = %q, want %q", s.RouteAccessDefault, RouteAccessAllow)
	}

	if s.TwoFactorMode != TwoFactorModeStatic {
		t.Errorf("TwoFactorMode default = %q, want %q", s.TwoFactorMode, TwoFactorModeStatic)
	}

	if s.TwoFactorDemoCode != "123456" {
		t.Errorf("TwoFactorDemoCode default = %q, want %q", s.TwoFactorDemoCode, "123456")
	}

	if s.DenyUnmappedRoutes() {
		t.Error("DenyUnmappedRoutes() should be false with the allow default")
	}
}

func TestValidateSecurityRejectsBadSettings(t *testing.T) {
	s := Security{WarnAfterMinutes: 30, ExpireAfterMinutes: 30}
	if err := validateSecurity(&s); !errors.Is(err, ErrWarnNotBeforeExpire) {
		t.Errorf("validateSecurity() error = %v, want ErrWarnNotBeforeExpire", err)
	}

	s = Security{WarnAfterMinutes: 5, ExpireAfterMinutes: 10, RouteAccessDefault: "maybe"}
	if err := validateSecurity(&s); !errors.Is(err, ErrInvalidRouteAccessDefault) {
		t.Errorf("validateSecurity() error = %v, want ErrInvalidRouteAccessDefault", err)
	}

	s = Security{WarnAfterMinutes: 5, ExpireAfterMinutes: 10, TwoFactorMode: "sms"}
	if err := validateSecurity(&s); !errors.Is(err, ErrInvalidTwoFactorMode) {
		t.Errorf("validateSecurity() error = %v, want ErrInvalidTwoFactorMode", err)
	}
}
