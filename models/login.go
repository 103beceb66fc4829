// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ErrorCode is a stable, non-revealing failure classification shown to
// callers of login and storage operations.
type ErrorCode string

const (
	ErrorCodeInvalidPassphrase ErrorCode = "INVALID_PASSPHRASE"
	ErrorCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrorCodeAccountLocked     ErrorCode = "ACCOUNT_LOCKED"
	ErrorCodeUnknown           ErrorCode = "UNKNOWN_ERROR"

	ErrorCodeNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrorCodeQuotaExceeded  ErrorCode = "QUOTA_EXCEEDED"
	ErrorCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
)

// LoginRequest carries everything a login attempt needs. Passphrase is
// consumed by key derivation and never stored or logged.
type LoginRequest struct {
	Passphrase     string
	CompanyID      string
	UserIdentifier string
	// UserID defaults to UserIdentifier when empty.
	UserID         string
	Role           string
	RememberDevice bool
}

// LoginResult describes a successful login.
type LoginResult struct {
	Token         string    `json:"token"`
	ExpiresAt     time.Time `json:"expires_at"`
	SessionID     string    `json:"session_id"`
	DeviceTokenID string    `json:"device_token_id,omitempty"`
}
