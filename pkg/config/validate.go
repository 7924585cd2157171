package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	MinAccessExpiry  = 15 * time.Minute
	MaxAccessExpiry  = time.Hour
	MinRefreshExpiry = 7 * 24 * time.Hour
	MaxRefreshExpiry = 15 * 24 * time.Hour
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the settings envconfig cannot express with tags.
func (a *App) Validate() error {
	var errs []error
	if a.Auth == nil || a.Auth.Jwt == nil {
		errs = append(errs, errors.New("auth: jwt settings are missing"))
	} else {
		jwt := a.Auth.Jwt
		if jwt.AccessSecret == "" {
			errs = append(errs, errors.New("AUTH_JWT_ACCESS_SECRET is required"))
		}
		if jwt.RefreshSecret == "" {
			errs = append(errs, errors.New("AUTH_JWT_REFRESH_SECRET is required"))
		}
		if jwt.AccessExpiry < MinAccessExpiry || jwt.AccessExpiry > MaxAccessExpiry {
			errs = append(errs, fmt.Errorf(
				"AUTH_JWT_ACCESS_EXPIRY must be between %s and %s, got %s",
				MinAccessExpiry, MaxAccessExpiry, jwt.AccessExpiry))
		}
		if jwt.RefreshExpiry < MinRefreshExpiry || jwt.RefreshExpiry > MaxRefreshExpiry {
			errs = append(errs, fmt.Errorf(
				"AUTH_JWT_REFRESH_EXPIRY must be between %s and %s, got %s",
				MinRefreshExpiry, MaxRefreshExpiry, jwt.RefreshExpiry))
		}
	}
	if !currencyCode.MatchString(a.DefaultCurrency) {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY %q is not an ISO 4217 code", a.DefaultCurrency))
	}
	if a.RateLimit != nil && a.RateLimit.MaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS must be positive"))
	}
	return errors.Join(errs...)
}

// SharedJwtSecret reports whether both token kinds use the same secret.
func (a *App) SharedJwtSecret() bool {
	return a.Auth != nil && a.Auth.Jwt != nil &&
		a.Auth.Jwt.AccessSecret == a.Auth.Jwt.RefreshSecret
}
