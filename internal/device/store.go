// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package device remembers trusted devices per company. A device token only
// pre-fills the login flow; it never grants access without the passphrase.
package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

const (
	// KeyPrefix prefixes the secure key of every device token.
	KeyPrefix = "device_token:"
	// LegacyKeyPrefix is the cleartext key older releases used.
	LegacyKeyPrefix = "device_token_"
)

var ErrMissingCompany = errors.New("company id is required")

// Storage is the subset of the secure storage engine the device store
// needs.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	MigrateFromUnencrypted(ctx context.Context, oldKey, newKey string) (bool, error)
}

// Store keeps at most one device token per company.
type Store struct {
	storage Storage
	probe   fingerprint.Probe
	clock   clock.Clock
	logger  *logger.Logger

	mu sync.Mutex
}

// NewStore creates a device Store. probe is consulted on every create and
// read so fingerprint drift is detected as soon as it happens.
func NewStore(storage Storage, probe fingerprint.Probe, clk clock.Clock, log *logger.Logger) *Store {
	return &Store{storage: storage, probe: probe, clock: clk, logger: log}
}

func tokenKey(companyID string) string {
	return KeyPrefix + companyID
}

// CreateDeviceToken remembers this device for userID within companyID,
// replacing any previous token of the company.
func (s *Store) CreateDeviceToken(ctx context.Context, userID, companyID string, cfg models.AuthConfig) (*models.DeviceToken, error) {
	if companyID == "" {
		return nil, ErrMissingCompany
	}
	cfg = cfg.WithDefaults()
	now := s.clock.Now()

	token := models.DeviceToken{
		TokenID:     uuid.NewString(),
		UserID:      userID,
		CompanyID:   companyID,
		Fingerprint: s.currentFingerprint(cfg),
		CreatedAt:   now,
		ExpiresAt:   now.Add(cfg.DeviceTokenExpiration),
		LastUsedAt:  now,
		IsActive:    true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("func", "Store.CreateDeviceToken").
		Str("company_id", companyID).
		Str("token_id", token.TokenID).
		Msg("device remembered")
	return &token, nil
}

// GetDeviceToken returns the valid token of companyID, or nil. A token that
// is expired, inactive or bound to another fingerprint is revoked before
// nil is returned.
func (s *Store) GetDeviceToken(ctx context.Context, companyID string, cfg models.AuthConfig) (*models.DeviceToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadValid(ctx, companyID, cfg.WithDefaults())
}

// UpdateDeviceTokenActivity slides the expiry of the company's token
// forward. It does nothing when no valid token exists.
func (s *Store) UpdateDeviceTokenActivity(ctx context.Context, companyID string, cfg models.AuthConfig) error {
	cfg = cfg.WithDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.loadValid(ctx, companyID, cfg)
	if err != nil || token == nil {
		return err
	}

	now := s.clock.Now()
	token.LastUsedAt = now
	token.ExpiresAt = now.Add(cfg.DeviceTokenExpiration)
	return s.save(ctx, *token)
}

// IsDeviceRemembered reports whether a valid token exists for companyID.
func (s *Store) IsDeviceRemembered(ctx context.Context, companyID string, cfg models.AuthConfig) bool {
	token, err := s.GetDeviceToken(ctx, companyID, cfg)
	return err == nil && token != nil
}

// RevokeDeviceToken forgets this device for companyID.
func (s *Store) RevokeDeviceToken(ctx context.Context, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revoke(ctx, companyID, "revoked")
}

// RevokeAllDeviceTokens forgets this device for every company and returns
// how many tokens were removed.
func (s *Store) RevokeAllDeviceTokens(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.storage.Keys(ctx, KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list device tokens: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if err = s.storage.RemoveItem(ctx, key); err != nil {
			return removed, fmt.Errorf("remove device token: %w", err)
		}
		removed++
	}

	s.logger.Info().Str("func", "Store.RevokeAllDeviceTokens").Int("removed", removed).Msg("all device tokens revoked")
	return removed, nil
}

// loadValid must be called with s.mu held.
func (s *Store) loadValid(ctx context.Context, companyID string, cfg models.AuthConfig) (*models.DeviceToken, error) {
	if companyID == "" {
		return nil, ErrMissingCompany
	}

	if _, err := s.storage.MigrateFromUnencrypted(ctx, LegacyKeyPrefix+companyID, tokenKey(companyID)); err != nil {
		s.logger.Err(err).Str("func", "Store.loadValid").Msg("error migrating legacy device token")
	}

	raw, ok := s.storage.GetItem(ctx, tokenKey(companyID))
	if !ok {
		return nil, nil
	}

	var token models.DeviceToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, s.revoke(ctx, companyID, "unreadable")
	}

	switch {
	case !token.IsActive:
		return nil, s.revoke(ctx, companyID, "inactive")
	case !token.ExpiresAt.After(s.clock.Now()):
		return nil, s.revoke(ctx, companyID, "expired")
	case cfg.EnableDeviceFingerprinting && token.Fingerprint != s.currentFingerprint(cfg):
		return nil, s.revoke(ctx, companyID, "fingerprint_mismatch")
	}
	return &token, nil
}

func (s *Store) currentFingerprint(cfg models.AuthConfig) string {
	if !cfg.EnableDeviceFingerprinting {
		return ""
	}
	return fingerprint.FromProbe(s.probe)
}

func (s *Store) save(ctx context.Context, token models.DeviceToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode device token: %w", err)
	}
	if err = s.storage.SetItem(ctx, tokenKey(token.CompanyID), string(payload)); err != nil {
		return fmt.Errorf("save device token: %w", err)
	}
	return nil
}

func (s *Store) revoke(ctx context.Context, companyID, reason string) error {
	if err := s.storage.RemoveItem(ctx, tokenKey(companyID)); err != nil {
		return fmt.Errorf("remove device token: %w", err)
	}
	s.logger.Info().
		Str("func", "Store.revoke").
		Str("company_id", companyID).
		Str("reason", reason).
		Msg("device token revoked")
	return nil
}
