package config

import (
	"time"

	"github.com/MKhiriev/passgate/models"
)

// Defaults that are not part of the authentication policy.
const (
	DefaultStoragePath     = "passgate.json"
	DefaultQuotaBytes      = 5 * 1024 * 1024
	DefaultRedisNamespace  = "passgate:"
	DefaultLogLevel        = "info"
	DefaultCleanupInterval = time.Hour
	DefaultMaxEntryAge     = 30 * 24 * time.Hour
)

// Default returns the configuration used when no other source sets a
// field.
func Default() *StructuredConfig {
	auth := models.DefaultAuthConfig()
	kdf := models.DefaultKDFParams()
	fingerprinting := auth.EnableDeviceFingerprinting

	return &StructuredConfig{
		Auth: Auth{
			SessionExpiration:          auth.SessionExpiration,
			IdleTimeout:                auth.IdleTimeout,
			DeviceTokenExpiration:      auth.DeviceTokenExpiration,
			RenewalThreshold:           auth.RenewalThreshold,
			MaxFailedAttempts:          auth.MaxFailedAttempts,
			RateLimitDuration:          auth.RateLimitDuration,
			EnableDeviceFingerprinting: &fingerprinting,
			KDFMemoryCost:              kdf.MemoryCost,
			KDFTimeCost:                kdf.TimeCost,
			KDFParallelism:             kdf.Parallelism,
		},
		Storage: Storage{
			Backend:        BackendFile,
			Path:           DefaultStoragePath,
			RedisNamespace: DefaultRedisNamespace,
			QuotaBytes:     DefaultQuotaBytes,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
		Workers: Workers{
			CleanupInterval: DefaultCleanupInterval,
			MaxEntryAge:     DefaultMaxEntryAge,
		},
	}
}
