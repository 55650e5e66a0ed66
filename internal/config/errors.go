package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrWarnNotBeforeExpire error if the warning deadline is not before the expiry deadline.
	ErrWarnNotBeforeExpire = errors.New("toml config security.warnAfterMinutes must be smaller than security.expireAfterMinutes")

	// ErrInvalidRouteAccessDefault error if security.routeAccessDefault is neither "allow" nor "deny".
	ErrInvalidRouteAccessDefault = errors.New(`toml config security.routeAccessDefault must be "allow" or "deny"`)

	// ErrInvalidTwoFactorMode error if security.twoFactorMode is neither "static" nor "totp".
	ErrInvalidTwoFactorMode = errors.New(`toml config security.twoFactorMode must be "static" or "totp"`)
)
