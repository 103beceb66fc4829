package config

import "github.com/MKhiriev/passgate/models"

// AuthConfig returns the authentication policy as consumed by the session,
// device and login components. Fingerprinting defaults to on when no source
// set it.
func (cfg *StructuredConfig) AuthConfig() models.AuthConfig {
	fingerprinting := true
	if cfg.Auth.EnableDeviceFingerprinting != nil {
		fingerprinting = *cfg.Auth.EnableDeviceFingerprinting
	}

	return models.AuthConfig{
		SessionExpiration:          cfg.Auth.SessionExpiration,
		IdleTimeout:                cfg.Auth.IdleTimeout,
		DeviceTokenExpiration:      cfg.Auth.DeviceTokenExpiration,
		RenewalThreshold:           cfg.Auth.RenewalThreshold,
		MaxFailedAttempts:          cfg.Auth.MaxFailedAttempts,
		RateLimitDuration:          cfg.Auth.RateLimitDuration,
		EnableDeviceFingerprinting: fingerprinting,
	}.WithDefaults()
}

// KDFParams returns the Argon2id cost used for newly created passphrase
// test data.
func (cfg *StructuredConfig) KDFParams() models.KDFParams {
	p := models.DefaultKDFParams()
	if cfg.Auth.KDFMemoryCost > 0 {
		p.MemoryCost = cfg.Auth.KDFMemoryCost
	}
	if cfg.Auth.KDFTimeCost > 0 {
		p.TimeCost = cfg.Auth.KDFTimeCost
	}
	if cfg.Auth.KDFParallelism > 0 {
		p.Parallelism = cfg.Auth.KDFParallelism
	}
	return p
}
