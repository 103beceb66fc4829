package service

import (
	"context"

	"github.com/MKhiriev/passgate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies passphrases without ever storing them and turns a
// successful proof into a session.
type AuthService interface {
	// Login proves the passphrase against the company's test data and
	// starts a session. Failures are *LoginError.
	Login(ctx context.Context, req models.LoginRequest, cfg models.AuthConfig) (*models.LoginResult, error)

	// CreatePassphraseTestData builds fresh test data for companyID. It does
	// not persist it.
	CreatePassphraseTestData(companyID, passphrase string, params models.KDFParams) (*models.PassphraseTestData, error)

	StorePassphraseTestData(ctx context.Context, data *models.PassphraseTestData) error
	// LoadPassphraseTestData returns nil without error when the company has
	// no readable test data.
	LoadPassphraseTestData(ctx context.Context, companyID string) (*models.PassphraseTestData, error)
	HasPassphraseTestData(ctx context.Context, companyID string) bool

	// ChangePassphrase replaces the company's test data after proving the
	// old passphrase and forgets every remembered device.
	ChangePassphrase(ctx context.Context, companyID, oldPassphrase, newPassphrase string, params models.KDFParams, cfg models.AuthConfig) error

	// LastSessionHint returns who signed in last, if known.
	LastSessionHint(ctx context.Context) (*models.SessionHint, bool)
}

// SecureStorage is the encrypted key/value store the service persists to.
type SecureStorage interface {
	GetItem(ctx context.Context, key string) (string, bool)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	HasItem(ctx context.Context, key string) bool
	MigrateFromUnencrypted(ctx context.Context, oldKey, newKey string) (bool, error)
}

// RateLimiter tracks failed attempts per identifier.
type RateLimiter interface {
	Check(ctx context.Context, identifier string, cfg models.AuthConfig) (models.RateLimitStatus, error)
	RecordFailure(ctx context.Context, identifier string, cfg models.AuthConfig) (models.RateLimitStatus, error)
	Reset(ctx context.Context, identifier string) error
}

// SessionStarter opens the session after a successful login.
type SessionStarter interface {
	CreateSession(ctx context.Context, claims models.SessionClaims, masterKey []byte, cfg models.AuthConfig) (*models.SessionInfo, error)
}

// DeviceTrust remembers devices across logins.
type DeviceTrust interface {
	CreateDeviceToken(ctx context.Context, userID, companyID string, cfg models.AuthConfig) (*models.DeviceToken, error)
	GetDeviceToken(ctx context.Context, companyID string, cfg models.AuthConfig) (*models.DeviceToken, error)
	UpdateDeviceTokenActivity(ctx context.Context, companyID string, cfg models.AuthConfig) error
	RevokeAllDeviceTokens(ctx context.Context) (int, error)
}
