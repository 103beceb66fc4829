package securestore

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/passgate/models"
)

// Sentinel errors matched by [StorageError.Is].
var (
	// ErrNotInitialized is returned by writes made before [Engine.Initialize]
	// has completed.
	ErrNotInitialized = errors.New("secure storage not initialized")

	// ErrQuotaExceeded is returned when a write still does not fit after an
	// opportunistic cleanup pass.
	ErrQuotaExceeded = errors.New("secure storage quota exceeded")

	// ErrStorageFailure covers every other write-path failure.
	ErrStorageFailure = errors.New("secure storage failure")
)

// StorageError is the structured write-path failure of the [Engine]. Read
// failures are never reported as errors; they read as absence.
type StorageError struct {
	Code    models.ErrorCode
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by code.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrNotInitialized:
		return e.Code == models.ErrorCodeNotInitialized
	case ErrQuotaExceeded:
		return e.Code == models.ErrorCodeQuotaExceeded
	case ErrStorageFailure:
		return e.Code == models.ErrorCodeStorageFailure
	}
	return false
}

func newStorageError(code models.ErrorCode, msg string, err error) *StorageError {
	return &StorageError{Code: code, Message: msg, Err: err}
}
