// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package securestore is the encrypted key/value layer every other passgate
// component persists through. Values are sealed with AES-256-GCM under a key
// derived from the device fingerprint and a persisted random salt; the key
// itself is never written anywhere.
package securestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/store"
	"github.com/MKhiriev/passgate/models"
)

// Key layout in the durable store.
const (
	EntryPrefix   = "secure:"
	MetaPrefix    = "secure_meta:"
	DeviceSaltKey = "secure_device_salt"
)

const (
	// FormatVersion is written into every serialized entry.
	FormatVersion = 1

	// DefaultMaxEntryAge is the age past which cleanup removes an entry.
	DefaultMaxEntryAge = 30 * 24 * time.Hour

	// DefaultQuotaBytes is the reference capacity used for statistics.
	DefaultQuotaBytes = 5 * 1024 * 1024

	// nearlyFullPercent is the usage above which IsNearlyFull reports true.
	nearlyFullPercent = 80.0
)

// Engine is the Secure Storage Engine. The zero value is not usable; create
// one with [NewEngine] and call [Engine.Initialize] before writing.
type Engine struct {
	durable  store.KeyValueStore
	keychain crypto.KeyChainService
	probe    fingerprint.Probe
	clock    clock.Clock
	logger   *logger.Logger
	limit    int64

	mu       sync.RWMutex
	key      []byte
	retained []string

	init singleflight.Group
}

// NewEngine creates an engine over durable. quotaBytes is the capacity
// reported by [Engine.StorageStats]; zero selects [DefaultQuotaBytes].
func NewEngine(
	durable store.KeyValueStore,
	keychain crypto.KeyChainService,
	probe fingerprint.Probe,
	clk clock.Clock,
	quotaBytes int64,
	log *logger.Logger,
) *Engine {
	if quotaBytes <= 0 {
		quotaBytes = DefaultQuotaBytes
	}
	return &Engine{
		durable:  durable,
		keychain: keychain,
		probe:    probe,
		clock:    clk,
		logger:   log,
		limit:    quotaBytes,
	}
}

// Retain exempts every entry whose key starts with one of prefixes from
// age-based cleanup. Records that are written once and must outlive any
// cleanup window (passphrase test data) are registered here.
func (e *Engine) Retain(prefixes ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.retained = append(e.retained, prefixes...)
}

func (e *Engine) isRetained(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, p := range e.retained {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Initialize derives the device storage key. Concurrent callers share one
// in-flight derivation; once the key is cached later calls return at once.
func (e *Engine) Initialize(ctx context.Context) error {
	if e.Initialized() {
		return nil
	}

	_, err, shared := e.init.Do("initialize", func() (any, error) {
		if e.Initialized() {
			return nil, nil
		}

		salt, err := e.loadOrCreateSalt(ctx)
		if err != nil {
			return nil, err
		}

		key := e.keychain.DeriveDeviceKey(fingerprint.StableFromProbe(e.probe), salt, crypto.MinDeviceKeyIterations)

		e.mu.Lock()
		e.key = key
		e.mu.Unlock()

		e.logger.Debug().Str("func", "Engine.Initialize").Msg("secure storage initialized")
		return nil, nil
	})
	if err != nil {
		e.logger.Err(err).Str("func", "Engine.Initialize").Bool("shared", shared).Msg("error initializing secure storage")
		return newStorageError(models.ErrorCodeStorageFailure, "initialize secure storage", err)
	}
	return nil
}

// Initialized reports whether the storage key is available.
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.key != nil
}

func (e *Engine) loadOrCreateSalt(ctx context.Context) ([]byte, error) {
	encoded, err := e.durable.Get(ctx, DeviceSaltKey)
	switch {
	case err == nil:
		salt, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr == nil && len(salt) >= crypto.SaltSize {
			return salt, nil
		}
		e.logger.Warn().Str("func", "Engine.loadOrCreateSalt").Msg("stored device salt unreadable, generating a new one")
	case !errors.Is(err, store.ErrKeyNotFound):
		return nil, err
	}

	salt, err := e.keychain.RandomBytes(crypto.SaltSize)
	if err != nil {
		return nil, err
	}
	if err = e.durable.Set(ctx, DeviceSaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, err
	}
	return salt, nil
}

func (e *Engine) currentKey() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.key
}

// SetItem encrypts value and stores it under key together with its write
// timestamp. On a quota error it runs [Engine.CleanupOldEntries] and retries
// once.
func (e *Engine) SetItem(ctx context.Context, key, value string) error {
	k := e.currentKey()
	if k == nil {
		return newStorageError(models.ErrorCodeNotInitialized, "secure storage is not initialized", nil)
	}

	iv, ct, err := e.keychain.Seal(k, []byte(value))
	if err != nil {
		e.logger.Err(err).Str("func", "Engine.SetItem").Msg("error encrypting entry")
		return newStorageError(models.ErrorCodeStorageFailure, "encrypt entry", err)
	}
	payload, err := json.Marshal(models.SerializedEncryptedValue{
		CT:      base64.StdEncoding.EncodeToString(ct),
		IV:      base64.StdEncoding.EncodeToString(iv),
		Version: FormatVersion,
	})
	if err != nil {
		return newStorageError(models.ErrorCodeStorageFailure, "encode entry", err)
	}

	err = e.write(ctx, key, string(payload))
	if store.IsQuotaExceeded(err) {
		e.logger.Warn().Str("func", "Engine.SetItem").Msg("storage quota exceeded, cleaning up and retrying")
		if _, cleanupErr := e.CleanupOldEntries(ctx, DefaultMaxEntryAge); cleanupErr != nil {
			e.logger.Err(cleanupErr).Str("func", "Engine.SetItem").Msg("cleanup before retry failed")
		}
		err = e.write(ctx, key, string(payload))
		if store.IsQuotaExceeded(err) {
			return newStorageError(models.ErrorCodeQuotaExceeded, "storage is full", err)
		}
	}
	if err != nil {
		e.logger.Err(err).Str("func", "Engine.SetItem").Msg("error writing entry")
		return newStorageError(models.ErrorCodeStorageFailure, "write entry", err)
	}
	return nil
}

func (e *Engine) write(ctx context.Context, key, payload string) error {
	if err := e.durable.Set(ctx, EntryPrefix+key, payload); err != nil {
		return err
	}

	meta, err := json.Marshal(models.EntryMeta{WrittenAt: e.clock.Now().UnixMilli()})
	if err != nil {
		return err
	}
	return e.durable.Set(ctx, MetaPrefix+key, string(meta))
}

// GetItem returns the decrypted value stored under key. Absent, corrupt,
// undecryptable and not-yet-initialized all read as ("", false).
func (e *Engine) GetItem(ctx context.Context, key string) (string, bool) {
	k := e.currentKey()
	if k == nil {
		return "", false
	}

	raw, err := e.durable.Get(ctx, EntryPrefix+key)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			e.logger.Err(err).Str("func", "Engine.GetItem").Msg("error reading entry")
		}
		return "", false
	}

	var v models.SerializedEncryptedValue
	if err = json.Unmarshal([]byte(raw), &v); err != nil || v.Version != FormatVersion {
		e.logger.Debug().Str("func", "Engine.GetItem").Msg("entry not in a known format")
		return "", false
	}
	iv, err := base64.StdEncoding.DecodeString(v.IV)
	if err != nil {
		return "", false
	}
	ct, err := base64.StdEncoding.DecodeString(v.CT)
	if err != nil {
		return "", false
	}

	plaintext, err := e.keychain.Open(k, iv, ct)
	if err != nil {
		e.logger.Debug().Str("func", "Engine.GetItem").Msg("entry failed authentication")
		return "", false
	}
	return string(plaintext), true
}

// HasItem reports whether an encrypted entry exists under key, without
// decrypting it.
func (e *Engine) HasItem(ctx context.Context, key string) bool {
	_, err := e.durable.Get(ctx, EntryPrefix+key)
	return err == nil
}

// RemoveItem deletes the entry under key and its metadata.
func (e *Engine) RemoveItem(ctx context.Context, key string) error {
	if err := e.durable.Delete(ctx, EntryPrefix+key); err != nil {
		return newStorageError(models.ErrorCodeStorageFailure, "remove entry", err)
	}
	if err := e.durable.Delete(ctx, MetaPrefix+key); err != nil {
		return newStorageError(models.ErrorCodeStorageFailure, "remove entry metadata", err)
	}
	return nil
}

// Clear removes every secure entry and its metadata. Unrelated keys and the
// device salt are left untouched.
func (e *Engine) Clear(ctx context.Context) error {
	for _, prefix := range []string{EntryPrefix, MetaPrefix} {
		keys, err := e.durable.Keys(ctx, prefix)
		if err != nil {
			return newStorageError(models.ErrorCodeStorageFailure, "list entries", err)
		}
		for _, k := range keys {
			if err = e.durable.Delete(ctx, k); err != nil {
				return newStorageError(models.ErrorCodeStorageFailure, "clear entries", err)
			}
		}
	}
	e.logger.Info().Str("func", "Engine.Clear").Msg("secure storage cleared")
	return nil
}

// Keys lists the logical keys of secure entries starting with prefix.
func (e *Engine) Keys(ctx context.Context, prefix string) ([]string, error) {
	raw, err := e.durable.Keys(ctx, EntryPrefix+prefix)
	if err != nil {
		return nil, newStorageError(models.ErrorCodeStorageFailure, "list entries", err)
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, EntryPrefix))
	}
	return keys, nil
}

// MigrateFromUnencrypted moves the legacy cleartext value at oldKey into
// the encrypted entry newKey. If newKey already exists the legacy value is
// simply dropped. Safe to call on every read path; reports whether a value
// was migrated.
func (e *Engine) MigrateFromUnencrypted(ctx context.Context, oldKey, newKey string) (bool, error) {
	legacy, err := e.durable.Get(ctx, oldKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, newStorageError(models.ErrorCodeStorageFailure, "read legacy entry", err)
	}

	migrated := false
	if !e.HasItem(ctx, newKey) {
		if err = e.SetItem(ctx, newKey, legacy); err != nil {
			return false, err
		}
		migrated = true
	}

	if err = e.durable.Delete(ctx, oldKey); err != nil {
		return migrated, newStorageError(models.ErrorCodeStorageFailure, "delete legacy entry", err)
	}

	e.logger.Info().Str("func", "Engine.MigrateFromUnencrypted").Str("key", newKey).Bool("migrated", migrated).Msg("legacy entry migrated")
	return migrated, nil
}

// CleanupOldEntries removes entries written more than maxAge ago and
// metadata records whose entry no longer exists. Entries without metadata
// and entries under a prefix registered with [Engine.Retain] are kept. It
// returns the number of entries removed.
func (e *Engine) CleanupOldEntries(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxEntryAge
	}
	cutoff := e.clock.Now().Add(-maxAge).UnixMilli()

	metaKeys, err := e.durable.Keys(ctx, MetaPrefix)
	if err != nil {
		return 0, newStorageError(models.ErrorCodeStorageFailure, "list metadata", err)
	}

	removed, orphans := 0, 0
	for _, metaKey := range metaKeys {
		name := strings.TrimPrefix(metaKey, MetaPrefix)

		if _, err = e.durable.Get(ctx, EntryPrefix+name); errors.Is(err, store.ErrKeyNotFound) {
			if err = e.durable.Delete(ctx, metaKey); err == nil {
				orphans++
			}
			continue
		}

		raw, err := e.durable.Get(ctx, metaKey)
		if err != nil {
			continue
		}
		var meta models.EntryMeta
		if err = json.Unmarshal([]byte(raw), &meta); err != nil {
			// unreadable metadata: drop it, keep the entry
			_ = e.durable.Delete(ctx, metaKey)
			continue
		}

		if meta.WrittenAt < cutoff && !e.isRetained(name) {
			if err = e.RemoveItem(ctx, name); err != nil {
				e.logger.Err(err).Str("func", "Engine.CleanupOldEntries").Msg("error removing stale entry")
				continue
			}
			removed++
		}
	}

	e.logger.Info().
		Str("func", "Engine.CleanupOldEntries").
		Int("removed", removed).
		Int("orphans", orphans).
		Msg("secure storage cleanup finished")
	return removed, nil
}

// StorageStats approximates usage as the byte length of every key and value
// in the durable store against the configured capacity.
func (e *Engine) StorageStats(ctx context.Context) (models.StorageStats, error) {
	keys, err := e.durable.Keys(ctx, "")
	if err != nil {
		return models.StorageStats{}, newStorageError(models.ErrorCodeStorageFailure, "list entries", err)
	}

	stats := models.StorageStats{LimitBytes: e.limit}
	for _, k := range keys {
		v, err := e.durable.Get(ctx, k)
		if err != nil {
			continue
		}
		stats.UsedBytes += int64(len(k) + len(v))
		if strings.HasPrefix(k, EntryPrefix) {
			stats.EntryCount++
		}
	}
	stats.PercentUsed = float64(stats.UsedBytes) / float64(stats.LimitBytes) * 100
	return stats, nil
}

// IsNearlyFull reports whether usage is above 80% of capacity. Errors read
// as false.
func (e *Engine) IsNearlyFull(ctx context.Context) bool {
	stats, err := e.StorageStats(ctx)
	if err != nil {
		return false
	}
	return stats.PercentUsed > nearlyFullPercent
}
