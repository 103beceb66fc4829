package validators

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MKhiriev/passgate/models"
)

// Field name constants used to scope validation to a subset of fields.
const (
	// FieldPassphrase targets the passphrase of a login request.
	FieldPassphrase = "passphrase"

	// FieldCompanyID targets the company selector of a request or record.
	FieldCompanyID = "company_id"

	// FieldUserID targets the user id of session claims.
	FieldUserID = "user_id"

	// FieldSalt, FieldIV, FieldAuthTag and FieldCiphertext target the
	// base64 parts of passphrase test data.
	FieldSalt       = "salt"
	FieldIV         = "iv"
	FieldAuthTag    = "auth_tag"
	FieldCiphertext = "ciphertext"

	// FieldKDF targets the key-derivation parameters of test data.
	FieldKDF = "kdf"
)

const (
	minSaltSize = 8
	ivSize      = 12
	tagSize     = 16

	maxCompanyIDLength = 256
)

// AuthValidator validates login requests, passphrase test data and session
// claims.
type AuthValidator struct {
}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.PassphraseTestData:
		return v.validateTestData(ctx, value, fields...)
	case *models.PassphraseTestData:
		return v.validateTestData(ctx, *value, fields...)

	case models.SessionClaims:
		return v.validateSessionClaims(ctx, value, fields...)
	case *models.SessionClaims:
		return v.validateSessionClaims(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassphrase, FieldCompanyID}
	}

	for _, f := range fields {
		switch f {
		case FieldPassphrase:
			if req.Passphrase == "" {
				return ErrEmptyPassphrase
			}
		case FieldCompanyID:
			if err := validateCompanyID(req.CompanyID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateTestData(_ context.Context, data models.PassphraseTestData, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCompanyID, FieldSalt, FieldIV, FieldAuthTag, FieldCiphertext, FieldKDF}
	}

	for _, f := range fields {
		switch f {
		case FieldCompanyID:
			if err := validateCompanyID(data.CompanyID); err != nil {
				return err
			}
		case FieldSalt:
			if n, err := decodedLen(data.Salt); err != nil || n < minSaltSize {
				return ErrInvalidSalt
			}
		case FieldIV:
			if n, err := decodedLen(data.IV); err != nil || n != ivSize {
				return ErrInvalidIV
			}
		case FieldAuthTag:
			if n, err := decodedLen(data.AuthTag); err != nil || n != tagSize {
				return ErrInvalidAuthTag
			}
		case FieldCiphertext:
			if n, err := decodedLen(data.Ciphertext); err != nil || n == 0 {
				return ErrEmptyCiphertext
			}
		case FieldKDF:
			if err := validateKDF(data.KDF); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateSessionClaims(_ context.Context, claims models.SessionClaims, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldCompanyID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(claims.UserID) == "" {
				return ErrEmptyUserID
			}
		case FieldCompanyID:
			if err := validateCompanyID(claims.CompanyID); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCompanyID rejects ids that are empty or that could collide with
// another storage key.
func validateCompanyID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyCompanyID
	}
	if len(id) > maxCompanyIDLength || strings.ContainsAny(id, ":\x00\n\r") {
		return ErrInvalidCompanyID
	}
	return nil
}

func validateKDF(p models.KDFParams) error {
	switch {
	case p.TimeCost == 0:
		return fmt.Errorf("%w: time cost must be positive", ErrInvalidKDFParams)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", ErrInvalidKDFParams)
	case p.MemoryCost < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory cost below 8 KiB per lane", ErrInvalidKDFParams)
	}
	return nil
}

func decodedLen(s string) (int, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	return len(b), err
}
