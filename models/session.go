// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionTokenPayload holds the claims embedded in an issued session token.
// Timestamps are unix milliseconds so the JSON form is stable across
// platforms.
type SessionTokenPayload struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	CompanyID string `json:"cid"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	DeviceID  string `json:"did,omitempty"`
}

// ExpiresAtTime returns ExpiresAt as a time.Time.
func (p SessionTokenPayload) ExpiresAtTime() time.Time {
	return time.UnixMilli(p.ExpiresAt)
}

// SessionClaims identifies who a new session is created for.
type SessionClaims struct {
	UserID        string
	CompanyID     string
	Role          string
	DeviceTokenID string
}

// SessionInfo is a read-only snapshot of the active session. It never
// carries key material.
type SessionInfo struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	CompanyID      string    `json:"company_id"`
	Role           string    `json:"role"`
	Token          string    `json:"-"`
	StartedAt      time.Time `json:"started_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	DeviceTokenID  string    `json:"device_token_id,omitempty"`
}

// SessionEventType names a session lifecycle notification.
type SessionEventType string

const (
	SessionEventLogin            SessionEventType = "login"
	SessionEventLogout           SessionEventType = "logout"
	SessionEventTimeout          SessionEventType = "timeout"
	SessionEventRenewal          SessionEventType = "renewal"
	SessionEventValidationFailed SessionEventType = "validation_failed"
)

// SessionEvent is delivered to session event listeners.
type SessionEvent struct {
	Type      SessionEventType `json:"type"`
	SessionID string           `json:"session_id,omitempty"`
	UserID    string           `json:"user_id,omitempty"`
	CompanyID string           `json:"company_id,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	At        time.Time        `json:"at"`
}

// SessionHint is the encrypted, non-secret reminder of the last signed-in
// user. It lets a client pre-fill the login form.
type SessionHint struct {
	UserID         string    `json:"user_id"`
	UserIdentifier string    `json:"user_identifier"`
	CompanyID      string    `json:"company_id"`
	Role           string    `json:"role"`
	LastLoginAt    time.Time `json:"last_login_at"`
}
