// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const (
	// RouteAccessAllow grants unmapped admin routes to any authenticated admin.
	RouteAccessAllow = "allow"
	// RouteAccessDeny requires an explicit access rule for every admin route.
	RouteAccessDeny = "deny"

	// TwoFactorModeStatic compares submitted codes against the configured demo code.
	TwoFactorModeStatic = "static"
	// TwoFactorModeTOTP validates submitted codes as time-based one-time passwords.
	TwoFactorModeTOTP = "totp"

	defaultWarnAfterMinutes   = 25
	defaultExpireAfterMinutes = 30
	defaultActivityLogCap     = 100
	defaultTwoFactorDemoCode  = "123456"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("PROPERTYCHAIN_ADMIN_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for the admin guard and apply the
// documented security defaults.
func validate(c *Config) error {
	// validate webserver listening port
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate access-control-allow-origin
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	// session storage rows must outlive the inactivity window by a wide
	// margin; the guard, not the storage TTL, ends idle sessions
	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = 12 * time.Hour
	}

	return validateSecurity(&c.Security)
}

// validateSecurity applies the security defaults and rejects inconsistent
// timeout and route access settings.
func validateSecurity(s *Security) error {
	invalidErrMessage := "invalid config"

	if s.WarnAfterMinutes == 0 {
		s.WarnAfterMinutes = defaultWarnAfterMinutes
	}

	if s.ExpireAfterMinutes == 0 {
		s.ExpireAfterMinutes = defaultExpireAfterMinutes
	}

	if s.WarnAfterMinutes >= s.ExpireAfterMinutes {
		return errors.Wrap(ErrWarnNotBeforeExpire, invalidErrMessage)
	}

	if s.ActivityLogCap == 0 {
		s.ActivityLogCap = defaultActivityLogCap
	}

	// The historical front end allowed any authenticated admin onto routes
	// without an access rule. That stays the default here, but it is an
	// explicit choice: set "deny" to require a rule for every route.
	if s.RouteAccessDefault == "" {
		s.RouteAccessDefault = RouteAccessAllow
	}

	if s.RouteAccessDefault != RouteAccessAllow && s.RouteAccessDefault != RouteAccessDeny {
		return errors.Wrap(ErrInvalidRouteAccessDefault, invalidErrMessage)
	}

	if s.TwoFactorMode == "" {
		s.TwoFactorMode = TwoFactorModeStatic
	}

	if s.TwoFactorMode != TwoFactorModeStatic && s.TwoFactorMode != TwoFactorModeTOTP {
		return errors.Wrap(ErrInvalidTwoFactorMode, invalidErrMessage)
	}

	if s.TwoFactorDemoCode == "" {
		s.TwoFactorDemoCode = defaultTwoFactorDemoCode
	}

	return nil
}
