// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// KDFParams describes the passphrase key-derivation cost. The shape matches a
// memory-hard KDF (Argon2id): MemoryCost is in KiB.
type KDFParams struct {
	MemoryCost  uint32 `json:"memory_cost"`
	TimeCost    uint32 `json:"time_cost"`
	Parallelism uint8  `json:"parallelism"`
	KeyLength   uint32 `json:"key_length"`
}

// DefaultKDFParams are the Argon2id parameters recommended by OWASP for
// interactive logins, with a 256-bit output.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		MemoryCost:  64 * 1024, // 64 MiB
		TimeCost:    3,
		Parallelism: 4,
		KeyLength:   32,
	}
}

// PassphraseTestData is the encrypted proof material for one company. It is
// created once at account setup and only ever replaced, never mutated.
//
// All byte fields are base64 (standard encoding).
type PassphraseTestData struct {
	CompanyID  string    `json:"company_id"`
	Ciphertext string    `json:"ciphertext"`
	IV         string    `json:"iv"`
	AuthTag    string    `json:"auth_tag"`
	Salt       string    `json:"salt"`
	KDF        KDFParams `json:"kdf"`
	CreatedAt  time.Time `json:"created_at"`
}

// PassphraseStrength is the outcome of a passphrase strength check.
// Suggestions never make a passphrase invalid; only Errors do.
type PassphraseStrength struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
