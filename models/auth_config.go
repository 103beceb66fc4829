// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuthConfig is the tunable authentication policy. It is passed by value into
// every session, device and login operation and is never mutated by them.
type AuthConfig struct {
	// SessionExpiration is the lifetime of one issued session token.
	SessionExpiration time.Duration `json:"session_expiration"`

	// IdleTimeout terminates the session when no activity is recorded for
	// this long.
	IdleTimeout time.Duration `json:"idle_timeout"`

	// DeviceTokenExpiration is the sliding lifetime of a "remember this
	// device" token.
	DeviceTokenExpiration time.Duration `json:"device_token_expiration"`

	// RenewalThreshold is how long before expiry the session renews itself.
	RenewalThreshold time.Duration `json:"renewal_threshold"`

	// MaxFailedAttempts is the number of consecutive failures that locks an
	// identifier.
	MaxFailedAttempts int `json:"max_failed_attempts"`

	// RateLimitDuration is how long a locked identifier stays locked.
	RateLimitDuration time.Duration `json:"rate_limit_duration"`

	// EnableDeviceFingerprinting binds device tokens to the computed device
	// fingerprint.
	EnableDeviceFingerprinting bool `json:"enable_device_fingerprinting"`
}

// Default policy values.
const (
	DefaultSessionExpiration     = 30 * time.Minute
	DefaultIdleTimeout           = 15 * time.Minute
	DefaultDeviceTokenExpiration = 30 * 24 * time.Hour
	DefaultRenewalThreshold      = 5 * time.Minute
	DefaultMaxFailedAttempts     = 5
	DefaultRateLimitDuration     = 15 * time.Minute
)

// DefaultAuthConfig returns the documented default policy.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		SessionExpiration:          DefaultSessionExpiration,
		IdleTimeout:                DefaultIdleTimeout,
		DeviceTokenExpiration:      DefaultDeviceTokenExpiration,
		RenewalThreshold:           DefaultRenewalThreshold,
		MaxFailedAttempts:          DefaultMaxFailedAttempts,
		RateLimitDuration:          DefaultRateLimitDuration,
		EnableDeviceFingerprinting: true,
	}
}

// WithDefaults returns a copy of c where every zero duration or counter is
// replaced by its default. EnableDeviceFingerprinting is left as is.
func (c AuthConfig) WithDefaults() AuthConfig {
	d := DefaultAuthConfig()
	if c.SessionExpiration <= 0 {
		c.SessionExpiration = d.SessionExpiration
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.DeviceTokenExpiration <= 0 {
		c.DeviceTokenExpiration = d.DeviceTokenExpiration
	}
	if c.RenewalThreshold <= 0 {
		c.RenewalThreshold = d.RenewalThreshold
	}
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = d.MaxFailedAttempts
	}
	if c.RateLimitDuration <= 0 {
		c.RateLimitDuration = d.RateLimitDuration
	}
	return c
}
