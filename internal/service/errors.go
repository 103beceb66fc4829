package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/passgate/models"
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrRateLimited       = errors.New("rate limited")
	ErrAccountLocked     = errors.New("account locked")
	ErrUnknown           = errors.New("unknown login error")

	ErrWeakPassphrase    = errors.New("passphrase does not meet the strength rule")
	ErrMissingCompany    = errors.New("company id is required")
	ErrCorruptedTestData = errors.New("passphrase test data is corrupted")
)

// LoginError is the failure of a login attempt. Code is safe to show; Err
// carries the internal cause for logs only.
type LoginError struct {
	Code models.ErrorCode
	// Wait is set for RATE_LIMITED and ACCOUNT_LOCKED.
	Wait time.Duration
	Err  error
}

func (e *LoginError) Error() string {
	if e.Wait > 0 {
		return fmt.Sprintf("login failed: %s (retry in %s)", e.Code, e.Wait)
	}
	return fmt.Sprintf("login failed: %s", e.Code)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e.Code so callers can use errors.Is.
func (e *LoginError) Is(target error) bool {
	switch e.Code {
	case models.ErrorCodeInvalidPassphrase:
		return target == ErrInvalidPassphrase
	case models.ErrorCodeRateLimited:
		return target == ErrRateLimited
	case models.ErrorCodeAccountLocked:
		return target == ErrAccountLocked
	case models.ErrorCodeUnknown:
		return target == ErrUnknown
	}
	return false
}

func invalidPassphrase() *LoginError {
	return &LoginError{Code: models.ErrorCodeInvalidPassphrase}
}

func unknownLoginError(err error) *LoginError {
	return &LoginError{Code: models.ErrorCodeUnknown, Err: err}
}
