package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk shape of a config file. The same
// struct decodes JSON and YAML.
type StructuredFileConfig struct {
	Auth struct {
		SessionExpiration          Duration `json:"session_expiration" yaml:"session_expiration"`
		IdleTimeout                Duration `json:"idle_timeout" yaml:"idle_timeout"`
		DeviceTokenExpiration      Duration `json:"device_token_expiration" yaml:"device_token_expiration"`
		RenewalThreshold           Duration `json:"renewal_threshold" yaml:"renewal_threshold"`
		MaxFailedAttempts          int      `json:"max_failed_attempts" yaml:"max_failed_attempts"`
		RateLimitDuration          Duration `json:"rate_limit_duration" yaml:"rate_limit_duration"`
		EnableDeviceFingerprinting *bool    `json:"enable_device_fingerprinting" yaml:"enable_device_fingerprinting"`
		KDF                        struct {
			MemoryCost  uint32 `json:"memory_cost" yaml:"memory_cost"`
			TimeCost    uint32 `json:"time_cost" yaml:"time_cost"`
			Parallelism uint8  `json:"parallelism" yaml:"parallelism"`
		} `json:"kdf" yaml:"kdf"`
	} `json:"auth,omitempty" yaml:"auth,omitempty"`

	Storage struct {
		Backend        string `json:"backend" yaml:"backend"`
		Path           string `json:"path" yaml:"path"`
		RedisAddress   string `json:"redis_address" yaml:"redis_address"`
		RedisPassword  string `json:"redis_password" yaml:"redis_password"`
		RedisDB        int    `json:"redis_db" yaml:"redis_db"`
		RedisNamespace string `json:"redis_namespace" yaml:"redis_namespace"`
		QuotaBytes     int64  `json:"quota_bytes" yaml:"quota_bytes"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Log struct {
		Level string `json:"level" yaml:"level"`
		File  string `json:"file" yaml:"file"`
	} `json:"log,omitempty" yaml:"log,omitempty"`

	Workers struct {
		CleanupInterval Duration `json:"cleanup_interval" yaml:"cleanup_interval"`
		MaxEntryAge     Duration `json:"max_entry_age" yaml:"max_entry_age"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// parseFile decodes the config file at path. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			SessionExpiration:          time.Duration(f.Auth.SessionExpiration),
			IdleTimeout:                time.Duration(f.Auth.IdleTimeout),
			DeviceTokenExpiration:      time.Duration(f.Auth.DeviceTokenExpiration),
			RenewalThreshold:           time.Duration(f.Auth.RenewalThreshold),
			MaxFailedAttempts:          f.Auth.MaxFailedAttempts,
			RateLimitDuration:          time.Duration(f.Auth.RateLimitDuration),
			EnableDeviceFingerprinting: f.Auth.EnableDeviceFingerprinting,
			KDFMemoryCost:              f.Auth.KDF.MemoryCost,
			KDFTimeCost:                f.Auth.KDF.TimeCost,
			KDFParallelism:             f.Auth.KDF.Parallelism,
		},
		Storage: Storage{
			Backend:        f.Storage.Backend,
			Path:           f.Storage.Path,
			RedisAddress:   f.Storage.RedisAddress,
			RedisPassword:  f.Storage.RedisPassword,
			RedisDB:        f.Storage.RedisDB,
			RedisNamespace: f.Storage.RedisNamespace,
			QuotaBytes:     f.Storage.QuotaBytes,
		},
		Log: Log{
			Level: f.Log.Level,
			File:  f.Log.File,
		},
		Workers: Workers{
			CleanupInterval: time.Duration(f.Workers.CleanupInterval),
			MaxEntryAge:     time.Duration(f.Workers.MaxEntryAge),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and YAML. Bare numbers are nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}

	tmp, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
