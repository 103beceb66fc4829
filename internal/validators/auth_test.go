// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/passgate/models"
)

func b64(n int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func validTestData() models.PassphraseTestData {
	return models.PassphraseTestData{
		CompanyID:  "acme",
		Ciphertext: b64(35),
		IV:         b64(12),
		AuthTag:    b64(16),
		Salt:       b64(16),
		KDF:        models.KDFParams{MemoryCost: 64, TimeCost: 1, Parallelism: 1, KeyLength: 32},
	}
}

func TestAuthValidator_UnsupportedType(t *testing.T) {
	v := NewAuthValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestAuthValidator_LoginRequest(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.LoginRequest
		fields  []string
		wantErr error
	}{
		{"valid", models.LoginRequest{Passphrase: "p", CompanyID: "acme"}, nil, nil},
		{"empty passphrase", models.LoginRequest{CompanyID: "acme"}, nil, ErrEmptyPassphrase},
		{"empty company", models.LoginRequest{Passphrase: "p", CompanyID: "  "}, nil, ErrEmptyCompanyID},
		{"company with separator", models.LoginRequest{Passphrase: "p", CompanyID: "a:b"}, nil, ErrInvalidCompanyID},
		{"company too long", models.LoginRequest{Passphrase: "p", CompanyID: strings.Repeat("x", 257)}, nil, ErrInvalidCompanyID},
		{"scoped to company", models.LoginRequest{CompanyID: "acme"}, []string{FieldCompanyID}, nil},
		{"unknown field", models.LoginRequest{Passphrase: "p", CompanyID: "acme"}, []string{"nope"}, ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	req := models.LoginRequest{Passphrase: "p", CompanyID: "acme"}
	require.NoError(t, v.Validate(ctx, &req))
}

func TestAuthValidator_TestData(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.PassphraseTestData)
		wantErr error
	}{
		{"valid", func(*models.PassphraseTestData) {}, nil},
		{"short salt", func(d *models.PassphraseTestData) { d.Salt = b64(4) }, ErrInvalidSalt},
		{"salt not base64", func(d *models.PassphraseTestData) { d.Salt = "***" }, ErrInvalidSalt},
		{"iv length", func(d *models.PassphraseTestData) { d.IV = b64(16) }, ErrInvalidIV},
		{"tag length", func(d *models.PassphraseTestData) { d.AuthTag = b64(12) }, ErrInvalidAuthTag},
		{"empty ciphertext", func(d *models.PassphraseTestData) { d.Ciphertext = "" }, ErrEmptyCiphertext},
		{"zero time cost", func(d *models.PassphraseTestData) { d.KDF.TimeCost = 0 }, ErrInvalidKDFParams},
		{"zero parallelism", func(d *models.PassphraseTestData) { d.KDF.Parallelism = 0 }, ErrInvalidKDFParams},
		{"memory below lanes", func(d *models.PassphraseTestData) { d.KDF.Parallelism = 16 }, ErrInvalidKDFParams},
		{"missing company", func(d *models.PassphraseTestData) { d.CompanyID = "" }, ErrEmptyCompanyID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validTestData()
			tt.mutate(&data)
			err := v.Validate(ctx, &data)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthValidator_SessionClaims(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.SessionClaims{UserID: "u", CompanyID: "acme"}))
	assert.ErrorIs(t, v.Validate(ctx, models.SessionClaims{CompanyID: "acme"}), ErrEmptyUserID)
	assert.ErrorIs(t, v.Validate(ctx, &models.SessionClaims{UserID: "u"}), ErrEmptyCompanyID)
	assert.NoError(t, v.Validate(ctx, models.SessionClaims{UserID: "u"}, FieldUserID))
}
