// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DeviceToken is a long-lived "remember this device" record. It is a
// convenience signal bound to the device fingerprint and never an
// authentication factor on its own.
type DeviceToken struct {
	TokenID       string    `json:"token_id"`
	UserID        string    `json:"user_id"`
	CompanyID     string    `json:"company_id"`
	Fingerprint   string    `json:"fingerprint"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	LastUsedAt    time.Time `json:"last_used_at"`
	IsActive      bool      `json:"is_active"`
	EncryptedHint string    `json:"encrypted_hint,omitempty"`
}

// IsValidAt reports whether the token is active and unexpired at now.
// Fingerprint matching is checked separately by the device store.
func (t DeviceToken) IsValidAt(now time.Time) bool {
	return t.IsActive && t.ExpiresAt.After(now)
}
