// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FailedLoginAttempt is the persisted brute-force counter of one identifier.
type FailedLoginAttempt struct {
	Identifier     string     `json:"identifier"`
	Count          int        `json:"count"`
	FirstAttemptAt time.Time  `json:"first_attempt_at"`
	LastAttemptAt  time.Time  `json:"last_attempt_at"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
}

// RateLimitStatus is the answer of a rate-limit check.
type RateLimitStatus struct {
	Allowed bool
	// Wait is the remaining lock time when Allowed is false.
	Wait time.Duration
	// Remaining is how many failures are left before the identifier locks.
	Remaining int
}
