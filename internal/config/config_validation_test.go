package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *StructuredConfig)
		wantErr error
	}{
		{"defaults", func(c *StructuredConfig) {}, nil},
		{"memory backend needs nothing", func(c *StructuredConfig) { c.Storage.Backend = BackendMemory; c.Storage.Path = "" }, nil},
		{"zero idle", func(c *StructuredConfig) { c.Auth.IdleTimeout = 0 }, ErrInvalidAuthConfigs},
		{"threshold too long", func(c *StructuredConfig) { c.Auth.RenewalThreshold = time.Hour }, ErrInvalidAuthConfigs},
		{"bad kdf", func(c *StructuredConfig) { c.Auth.KDFParallelism = 0 }, ErrInvalidAuthConfigs},
		{"unknown backend", func(c *StructuredConfig) { c.Storage.Backend = "s3" }, ErrInvalidStorageConfigs},
		{"sqlite without path", func(c *StructuredConfig) { c.Storage.Backend = BackendSQLite; c.Storage.Path = "" }, ErrInvalidStorageConfigs},
		{"redis without address", func(c *StructuredConfig) { c.Storage.Backend = BackendRedis }, ErrInvalidStorageConfigs},
		{"negative quota", func(c *StructuredConfig) { c.Storage.QuotaBytes = -1 }, ErrInvalidStorageConfigs},
		{"bad log level", func(c *StructuredConfig) { c.Log.Level = "loud" }, ErrInvalidLogConfigs},
		{"zero cleanup interval", func(c *StructuredConfig) { c.Workers.CleanupInterval = 0 }, ErrInvalidWorkerConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKDFParams_FallsBackToDefaults(t *testing.T) {
	cfg := &StructuredConfig{Auth: Auth{KDFTimeCost: 1}}
	p := cfg.KDFParams()

	assert.Equal(t, uint32(1), p.TimeCost)
	assert.Equal(t, uint32(64*1024), p.MemoryCost)
	assert.Equal(t, uint8(4), p.Parallelism)
	assert.Equal(t, uint32(32), p.KeyLength)
}
