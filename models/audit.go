// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditRecord is a structured security event. It is written locally and
// never transmitted by this module.
type AuditRecord struct {
	ID        string            `json:"id"`
	Action    string            `json:"action"`
	UserID    string            `json:"user_id,omitempty"`
	CompanyID string            `json:"company_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Outcome   string            `json:"outcome"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
