// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/validators"
	"github.com/MKhiriev/passgate/models"
)

const (
	// TestDataKeyPrefix prefixes the secure key of a company's test data.
	TestDataKeyPrefix = "passphrase_test:"
	// LegacyTestDataKeyPrefix is the cleartext key older releases used.
	LegacyTestDataKeyPrefix = "passphrase_test_data_"
	// SessionHintKey holds the encrypted hint of the last signed-in user.
	SessionHintKey = "session_hint"

	minFailureDelay = 100 * time.Millisecond
	maxFailureDelay = 300 * time.Millisecond
)

// knownPlaintext is what every test ciphertext decrypts to under the right
// passphrase.
var knownPlaintext = []byte("passgate-passphrase-verification-v1")

type authService struct {
	storage  SecureStorage
	limiter  RateLimiter
	sessions SessionStarter
	devices  DeviceTrust
	crypto   crypto.KeyChainService
	clock    clock.Clock
	logger   *logger.Logger

	validator validators.Validator

	// failureDelay picks the pause applied to every failed attempt.
	failureDelay func() time.Duration
}

// NewAuthService wires the passphrase verifier.
func NewAuthService(
	storage SecureStorage,
	limiter RateLimiter,
	sessions SessionStarter,
	devices DeviceTrust,
	keychain crypto.KeyChainService,
	clk clock.Clock,
	log *logger.Logger,
) AuthService {
	return &authService{
		storage:      storage,
		limiter:      limiter,
		sessions:     sessions,
		devices:      devices,
		crypto:       keychain,
		clock:        clk,
		logger:       log,
		validator:    validators.NewAuthValidator(),
		failureDelay: randomFailureDelay,
	}
}

func randomFailureDelay() time.Duration {
	return minFailureDelay + rand.N(maxFailureDelay-minFailureDelay+1)
}

func testDataKey(companyID string) string {
	return TestDataKeyPrefix + companyID
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest, cfg models.AuthConfig) (*models.LoginResult, error) {
	cfg = cfg.WithDefaults()
	identifier := req.UserIdentifier
	if identifier == "" {
		identifier = req.CompanyID
	}

	status, err := a.limiter.Check(ctx, identifier, cfg)
	if err != nil {
		a.logger.Err(err).Str("func", "authService.Login").Msg("rate limit check failed")
		return nil, unknownLoginError(err)
	}
	if !status.Allowed {
		a.logger.Warn().Str("func", "authService.Login").Dur("wait", status.Wait).Msg("login attempt while locked")
		return nil, &LoginError{Code: models.ErrorCodeRateLimited, Wait: status.Wait}
	}

	if err = a.validator.Validate(ctx, req); err != nil {
		return nil, a.fail(ctx, identifier, cfg, err)
	}

	data, err := a.LoadPassphraseTestData(ctx, req.CompanyID)
	if err != nil {
		return nil, a.fail(ctx, identifier, cfg, err)
	}
	if data == nil {
		return nil, a.fail(ctx, identifier, cfg, nil)
	}

	masterKey, err := a.verify(req.Passphrase, data)
	if err != nil {
		if errors.Is(err, ErrInvalidPassphrase) || errors.Is(err, ErrCorruptedTestData) {
			return nil, a.fail(ctx, identifier, cfg, err)
		}
		a.logger.Err(err).Str("func", "authService.Login").Msg("passphrase key derivation failed")
		return nil, unknownLoginError(err)
	}
	defer crypto.Zero(masterKey)

	if err = a.limiter.Reset(ctx, identifier); err != nil {
		a.logger.Err(err).Str("func", "authService.Login").Msg("error resetting failed attempts")
	}

	userID := req.UserID
	if userID == "" {
		userID = identifier
	}
	deviceTokenID := a.trustDevice(ctx, userID, req, cfg)

	info, err := a.sessions.CreateSession(ctx, models.SessionClaims{
		UserID:        userID,
		CompanyID:     req.CompanyID,
		Role:          req.Role,
		DeviceTokenID: deviceTokenID,
	}, masterKey, cfg)
	if err != nil {
		a.logger.Err(err).Str("func", "authService.Login").Msg("error creating session")
		return nil, unknownLoginError(err)
	}

	a.saveHint(ctx, models.SessionHint{
		UserID:         userID,
		UserIdentifier: req.UserIdentifier,
		CompanyID:      req.CompanyID,
		Role:           req.Role,
		LastLoginAt:    info.StartedAt,
	})

	a.logger.Info().
		Str("func", "authService.Login").
		Str("company_id", req.CompanyID).
		Str("session_id", info.SessionID).
		Bool("device_remembered", deviceTokenID != "").
		Msg("login succeeded")

	return &models.LoginResult{
		Token:         info.Token,
		ExpiresAt:     info.ExpiresAt,
		SessionID:     info.SessionID,
		DeviceTokenID: deviceTokenID,
	}, nil
}

// fail records the failed attempt, waits the randomized delay and returns
// the error shown to the caller. cause is logged only.
func (a *authService) fail(ctx context.Context, identifier string, cfg models.AuthConfig, cause error) error {
	status, err := a.limiter.RecordFailure(ctx, identifier, cfg)
	if err != nil {
		a.logger.Err(err).Str("func", "authService.fail").Msg("error recording failed attempt")
	}

	if err = a.clock.Sleep(ctx, a.failureDelay()); err != nil {
		return unknownLoginError(err)
	}

	ev := a.logger.Info().Str("func", "authService.fail")
	if cause != nil {
		ev = ev.AnErr("cause", cause)
	}
	ev.Msg("login attempt rejected")

	if !status.Allowed && status.Wait > 0 {
		return &LoginError{Code: models.ErrorCodeAccountLocked, Wait: status.Wait}
	}
	return invalidPassphrase()
}

// verify derives the candidate key and checks it opens the test ciphertext
// to the known plaintext. The key is returned only on success.
func (a *authService) verify(passphrase string, data *models.PassphraseTestData) ([]byte, error) {
	salt, iv, sealed, err := decodeTestData(data)
	if err != nil {
		return nil, err
	}

	key, err := a.crypto.DerivePassphraseKey(passphrase, salt, data.KDF)
	if err != nil {
		return nil, fmt.Errorf("derive passphrase key: %w", err)
	}

	plaintext, err := a.crypto.Open(key, iv, sealed)
	if err != nil {
		crypto.Zero(key)
		return nil, ErrInvalidPassphrase
	}
	defer crypto.Zero(plaintext)

	if subtle.ConstantTimeCompare(plaintext, knownPlaintext) != 1 {
		crypto.Zero(key)
		return nil, ErrInvalidPassphrase
	}
	return key, nil
}

func decodeTestData(data *models.PassphraseTestData) (salt, iv, sealed []byte, err error) {
	enc := base64.StdEncoding
	if salt, err = enc.DecodeString(data.Salt); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt", ErrCorruptedTestData)
	}
	if iv, err = enc.DecodeString(data.IV); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: iv", ErrCorruptedTestData)
	}
	ct, err := enc.DecodeString(data.Ciphertext)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ciphertext", ErrCorruptedTestData)
	}
	tag, err := enc.DecodeString(data.AuthTag)
	if err != nil || len(tag) != crypto.TagSize {
		return nil, nil, nil, fmt.Errorf("%w: auth tag", ErrCorruptedTestData)
	}
	return salt, iv, append(ct, tag...), nil
}

// trustDevice returns the device token id to bind the session to. It
// creates one when the user asked to be remembered and otherwise refreshes
// an existing one. Failures never fail the login.
func (a *authService) trustDevice(ctx context.Context, userID string, req models.LoginRequest, cfg models.AuthConfig) string {
	if req.RememberDevice {
		token, err := a.devices.CreateDeviceToken(ctx, userID, req.CompanyID, cfg)
		if err != nil {
			a.logger.Err(err).Str("func", "authService.trustDevice").Msg("error remembering device")
			return ""
		}
		return token.TokenID
	}

	token, err := a.devices.GetDeviceToken(ctx, req.CompanyID, cfg)
	if err != nil || token == nil {
		return ""
	}
	if err = a.devices.UpdateDeviceTokenActivity(ctx, req.CompanyID, cfg); err != nil {
		a.logger.Err(err).Str("func", "authService.trustDevice").Msg("error refreshing device token")
	}
	return token.TokenID
}

func (a *authService) saveHint(ctx context.Context, hint models.SessionHint) {
	payload, err := json.Marshal(hint)
	if err != nil {
		return
	}
	if err = a.storage.SetItem(ctx, SessionHintKey, string(payload)); err != nil {
		a.logger.Err(err).Str("func", "authService.saveHint").Msg("error saving session hint")
	}
}

func (a *authService) LastSessionHint(ctx context.Context) (*models.SessionHint, bool) {
	raw, ok := a.storage.GetItem(ctx, SessionHintKey)
	if !ok {
		return nil, false
	}
	var hint models.SessionHint
	if err := json.Unmarshal([]byte(raw), &hint); err != nil {
		return nil, false
	}
	return &hint, true
}

func (a *authService) CreatePassphraseTestData(companyID, passphrase string, params models.KDFParams) (*models.PassphraseTestData, error) {
	if companyID == "" {
		return nil, ErrMissingCompany
	}
	if strength := CheckPassphraseStrength(passphrase); !strength.Valid {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassphrase, strength.Errors)
	}
	if params == (models.KDFParams{}) {
		params = models.DefaultKDFParams()
	}
	if params.KeyLength == 0 {
		params.KeyLength = crypto.KeySize
	}

	salt, err := a.crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key, err := a.crypto.DerivePassphraseKey(passphrase, salt, params)
	if err != nil {
		return nil, fmt.Errorf("derive passphrase key: %w", err)
	}
	defer crypto.Zero(key)

	iv, sealed, err := a.crypto.Seal(key, knownPlaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt test data: %w", err)
	}
	if len(sealed) < crypto.TagSize {
		return nil, fmt.Errorf("encrypt test data: %w", crypto.ErrCiphertextTooShort)
	}
	split := len(sealed) - crypto.TagSize

	enc := base64.StdEncoding
	return &models.PassphraseTestData{
		CompanyID:  companyID,
		Ciphertext: enc.EncodeToString(sealed[:split]),
		AuthTag:    enc.EncodeToString(sealed[split:]),
		IV:         enc.EncodeToString(iv),
		Salt:       enc.EncodeToString(salt),
		KDF:        params,
		CreatedAt:  a.clock.Now(),
	}, nil
}

func (a *authService) StorePassphraseTestData(ctx context.Context, data *models.PassphraseTestData) error {
	if data == nil {
		return ErrMissingCompany
	}
	if err := a.validator.Validate(ctx, data); err != nil {
		return fmt.Errorf("invalid test data: %w", err)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode test data: %w", err)
	}
	if err = a.storage.SetItem(ctx, testDataKey(data.CompanyID), string(payload)); err != nil {
		a.logger.Err(err).Str("func", "authService.StorePassphraseTestData").Msg("error storing test data")
		return fmt.Errorf("store test data: %w", err)
	}
	return nil
}

func (a *authService) LoadPassphraseTestData(ctx context.Context, companyID string) (*models.PassphraseTestData, error) {
	if companyID == "" {
		return nil, nil
	}

	if _, err := a.storage.MigrateFromUnencrypted(ctx, LegacyTestDataKeyPrefix+companyID, testDataKey(companyID)); err != nil {
		a.logger.Err(err).Str("func", "authService.LoadPassphraseTestData").Msg("error migrating legacy test data")
	}

	raw, ok := a.storage.GetItem(ctx, testDataKey(companyID))
	if !ok {
		return nil, nil
	}

	var data models.PassphraseTestData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		a.logger.Warn().Str("func", "authService.LoadPassphraseTestData").Msg("unreadable test data treated as absent")
		return nil, nil
	}
	if data.CompanyID != companyID {
		return nil, nil
	}
	return &data, nil
}

func (a *authService) HasPassphraseTestData(ctx context.Context, companyID string) bool {
	data, err := a.LoadPassphraseTestData(ctx, companyID)
	return err == nil && data != nil
}

func (a *authService) ChangePassphrase(ctx context.Context, companyID, oldPassphrase, newPassphrase string, params models.KDFParams, cfg models.AuthConfig) error {
	cfg = cfg.WithDefaults()

	status, err := a.limiter.Check(ctx, companyID, cfg)
	if err != nil {
		return unknownLoginError(err)
	}
	if !status.Allowed {
		return &LoginError{Code: models.ErrorCodeRateLimited, Wait: status.Wait}
	}

	current, err := a.LoadPassphraseTestData(ctx, companyID)
	if err != nil {
		return unknownLoginError(err)
	}
	if current == nil {
		return a.fail(ctx, companyID, cfg, nil)
	}

	key, err := a.verify(oldPassphrase, current)
	if err != nil {
		if errors.Is(err, ErrInvalidPassphrase) || errors.Is(err, ErrCorruptedTestData) {
			return a.fail(ctx, companyID, cfg, err)
		}
		return unknownLoginError(err)
	}
	crypto.Zero(key)

	if params == (models.KDFParams{}) {
		params = current.KDF
	}
	next, err := a.CreatePassphraseTestData(companyID, newPassphrase, params)
	if err != nil {
		return err
	}
	if err = a.StorePassphraseTestData(ctx, next); err != nil {
		return err
	}
	if err = a.limiter.Reset(ctx, companyID); err != nil {
		a.logger.Err(err).Str("func", "authService.ChangePassphrase").Msg("error resetting failed attempts")
	}

	revoked, err := a.devices.RevokeAllDeviceTokens(ctx)
	if err != nil {
		return fmt.Errorf("revoke device tokens: %w", err)
	}

	a.logger.Info().
		Str("func", "authService.ChangePassphrase").
		Str("company_id", companyID).
		Int("devices_revoked", revoked).
		Msg("passphrase changed")
	return nil
}
