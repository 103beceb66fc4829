// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage backend names accepted by [Storage.Backend].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// StructuredConfig is the top-level configuration container for passgate.
// It is populated by merging built-in defaults, an optional JSON or YAML
// file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds the authentication policy: session lifetimes, rate
	// limiting, device trust and the passphrase KDF cost.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage selects and configures the durable key/value backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log controls the zerolog level and output file.
	Log Log `envPrefix:"LOG_"`

	// Workers holds configuration for the background maintenance job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON or YAML configuration
	// file (the extension decides the decoder).
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds the authentication policy.
type Auth struct {
	// SessionExpiration is the lifetime of one session token.
	// Env: AUTH_SESSION_EXPIRATION
	SessionExpiration time.Duration `env:"SESSION_EXPIRATION"`

	// IdleTimeout ends the session after this long without activity.
	// Env: AUTH_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// DeviceTokenExpiration is the sliding lifetime of a remembered device.
	// Env: AUTH_DEVICE_TOKEN_EXPIRATION
	DeviceTokenExpiration time.Duration `env:"DEVICE_TOKEN_EXPIRATION"`

	// RenewalThreshold is how long before expiry a session renews itself.
	// Env: AUTH_RENEWAL_THRESHOLD
	RenewalThreshold time.Duration `env:"RENEWAL_THRESHOLD"`

	// MaxFailedAttempts locks an identifier after this many failures.
	// Env: AUTH_MAX_FAILED_ATTEMPTS
	MaxFailedAttempts int `env:"MAX_FAILED_ATTEMPTS"`

	// RateLimitDuration is how long a locked identifier stays locked.
	// Env: AUTH_RATE_LIMIT_DURATION
	RateLimitDuration time.Duration `env:"RATE_LIMIT_DURATION"`

	// EnableDeviceFingerprinting binds device tokens to this host. Nil
	// means "not set by this source".
	// Env: AUTH_ENABLE_DEVICE_FINGERPRINTING
	EnableDeviceFingerprinting *bool `env:"ENABLE_DEVICE_FINGERPRINTING"`

	// KDFMemoryCost is the Argon2id memory cost in KiB for new test data.
	// Env: AUTH_KDF_MEMORY_COST
	KDFMemoryCost uint32 `env:"KDF_MEMORY_COST"`

	// KDFTimeCost is the Argon2id iteration count for new test data.
	// Env: AUTH_KDF_TIME_COST
	KDFTimeCost uint32 `env:"KDF_TIME_COST"`

	// KDFParallelism is the Argon2id lane count for new test data.
	// Env: AUTH_KDF_PARALLELISM
	KDFParallelism uint8 `env:"KDF_PARALLELISM"`
}

// Storage configures the durable key/value backend.
type Storage struct {
	// Backend is one of memory, file, sqlite, redis.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// Path is the JSON file (file backend) or database file (sqlite).
	// Env: STORAGE_PATH
	Path string `env:"PATH"`

	// RedisAddress is the host:port of the Redis server.
	// Env: STORAGE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// RedisPassword authenticates against Redis.
	// Env: STORAGE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis logical database.
	// Env: STORAGE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// RedisNamespace is prepended to every Redis key.
	// Env: STORAGE_REDIS_NAMESPACE
	RedisNamespace string `env:"REDIS_NAMESPACE"`

	// QuotaBytes is the capacity used for storage statistics and, for the
	// memory and file backends, enforced on writes.
	// Env: STORAGE_QUOTA_BYTES
	QuotaBytes int64 `env:"QUOTA_BYTES"`
}

// Log controls logging.
type Log struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the append-only log file. Empty means "logs" next to the
	// executable.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Workers holds configuration for the storage maintenance job.
type Workers struct {
	// CleanupInterval is how often stale secure entries are purged.
	// Env: WORKERS_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`

	// MaxEntryAge is the age past which a secure entry is purged.
	// Env: WORKERS_MAX_ENTRY_AGE
	MaxEntryAge time.Duration `env:"MAX_ENTRY_AGE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Built-in defaults
//  2. Config file (path resolved from sources 3 and 4)
//  3. Environment variables
//  4. Command-line flag overrides (may be nil)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(overrides *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides).
		withFile().
		build()
}
