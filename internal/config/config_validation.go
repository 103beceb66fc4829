// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] is usable before
// any component is constructed from it.
func (cfg *StructuredConfig) validate() error {
	a := cfg.Auth
	if a.SessionExpiration <= 0 || a.IdleTimeout <= 0 || a.DeviceTokenExpiration <= 0 ||
		a.RateLimitDuration <= 0 || a.MaxFailedAttempts <= 0 {
		return fmt.Errorf("%w: durations and max failed attempts must be positive", ErrInvalidAuthConfigs)
	}
	if a.RenewalThreshold < 0 || a.RenewalThreshold >= a.SessionExpiration {
		return fmt.Errorf("%w: renewal threshold must be below session expiration", ErrInvalidAuthConfigs)
	}
	if a.KDFTimeCost == 0 || a.KDFParallelism == 0 || a.KDFMemoryCost < 8*uint32(a.KDFParallelism) {
		return fmt.Errorf("%w: kdf cost out of range", ErrInvalidAuthConfigs)
	}

	s := cfg.Storage
	switch s.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if s.Path == "" {
			return fmt.Errorf("%w: %s backend needs a path", ErrInvalidStorageConfigs, s.Backend)
		}
	case BackendRedis:
		if s.RedisAddress == "" {
			return fmt.Errorf("%w: redis backend needs an address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, s.Backend)
	}
	if s.QuotaBytes < 0 {
		return fmt.Errorf("%w: negative quota", ErrInvalidStorageConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
	}

	if cfg.Workers.CleanupInterval <= 0 || cfg.Workers.MaxEntryAge <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
