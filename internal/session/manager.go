// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the single authenticated session of the process:
// its signed token, master key, renewal and idle timers, and the listeners
// notified about its lifecycle.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

// SigningKeyInfo is the HKDF info string of the token signing subkey.
const SigningKeyInfo = "passgate session token v1"

// Reasons passed to ClearSession and reported on logout events.
const (
	ReasonUserLogout  = "user_logout"
	ReasonIdleTimeout = "idle_timeout"
	ReasonReplaced    = "replaced"
	ReasonEmergency   = "emergency"
	ReasonScheduled   = "scheduled"
)

// ListenerID identifies a registered session event listener.
type ListenerID uint64

// Listener receives session events. It runs outside the manager lock and
// may call back into the Manager.
type Listener func(models.SessionEvent)

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// state is the active session. masterKey and signingKey are zeroed when the
// state is dropped.
type state struct {
	info       models.SessionInfo
	tokenID    string
	masterKey  []byte
	signingKey []byte

	renewal    clock.Handle
	renewalSeq uint64
	idle       clock.Handle
	idleSeq    uint64
}

// Manager is the session lifecycle owner. The zero value is not usable; call
// NewManager.
type Manager struct {
	keychain crypto.KeyChainService
	clock    clock.Clock
	logger   *logger.Logger

	mu      sync.Mutex
	current *state
	seq     uint64

	listenersMu  sync.Mutex
	listeners    []listenerEntry
	nextListener ListenerID
}

// NewManager creates a Manager with no active session.
func NewManager(keychain crypto.KeyChainService, clk clock.Clock, log *logger.Logger) *Manager {
	return &Manager{keychain: keychain, clock: clk, logger: log}
}

// CreateSession starts a new session for claims, replacing any active one.
// masterKey is copied; the caller keeps ownership of its slice.
func (m *Manager) CreateSession(ctx context.Context, claims models.SessionClaims, masterKey []byte, cfg models.AuthConfig) (*models.SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return nil, ErrInvalidClaims
	}
	cfg = cfg.WithDefaults()

	signingKey, err := m.keychain.DeriveSubkey(masterKey, SigningKeyInfo, crypto.KeySize)
	if err != nil {
		m.logger.Err(err).Str("func", "Manager.CreateSession").Msg("failed to derive token signing key")
		return nil, fmt.Errorf("derive signing key: %w", err)
	}

	now := m.clock.Now()
	st := &state{
		masterKey:  append([]byte(nil), masterKey...),
		signingKey: signingKey,
		info: models.SessionInfo{
			SessionID:      uuid.NewString(),
			UserID:         claims.UserID,
			CompanyID:      claims.CompanyID,
			Role:           claims.Role,
			StartedAt:      now,
			LastActivityAt: now,
			DeviceTokenID:  claims.DeviceTokenID,
		},
	}
	if err = m.issueToken(st, now, cfg); err != nil {
		st.wipe()
		return nil, err
	}

	m.mu.Lock()
	old := m.current
	if old != nil {
		m.stopTimers(old)
	}
	m.current = st
	m.scheduleRenewal(st, cfg)
	m.scheduleIdle(st, cfg)
	info := st.info
	m.mu.Unlock()

	if old != nil {
		m.logger.Info().Str("func", "Manager.CreateSession").Str("session_id", old.info.SessionID).Msg("active session replaced")
		old.wipe()
		m.emit(models.SessionEventLogout, old.info, ReasonReplaced, now)
	}

	m.logger.Info().
		Str("func", "Manager.CreateSession").
		Str("session_id", info.SessionID).
		Str("company_id", info.CompanyID).
		Time("expires_at", info.ExpiresAt).
		Msg("session created")
	m.emit(models.SessionEventLogin, info, "", now)

	return &info, nil
}

// ValidateSessionToken checks token against the active session. Checks run
// in order: shape, signature, expiry, then whether the token is still the
// current one.
func (m *Manager) ValidateSessionToken(token string) (*models.SessionTokenPayload, error) {
	parsed, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	var (
		signingKey []byte
		currentID  string
		info       models.SessionInfo
	)
	if m.current != nil {
		signingKey = append([]byte(nil), m.current.signingKey...)
		currentID = m.current.tokenID
		info = m.current.info
	}
	m.mu.Unlock()
	defer crypto.Zero(signingKey)

	now := m.clock.Now()
	if len(signingKey) == 0 {
		m.emit(models.SessionEventValidationFailed, info, "no active session", now)
		return nil, ErrTokenInvalidSignature
	}
	if err = m.keychain.Verify(signingKey, parsed.signedPart(), parsed.signature); err != nil {
		m.logger.Warn().Str("func", "Manager.ValidateSessionToken").Msg("session token signature mismatch")
		m.emit(models.SessionEventValidationFailed, info, "invalid signature", now)
		return nil, ErrTokenInvalidSignature
	}
	if now.After(parsed.payload.ExpiresAtTime()) {
		return nil, ErrTokenExpired
	}
	if parsed.id != currentID {
		return nil, ErrTokenRevoked
	}

	payload := parsed.payload
	return &payload, nil
}

// RenewSession issues a new token with a fresh expiry for the active
// session. It is called by the renewal timer and may be called by the
// application at any time.
func (m *Manager) RenewSession(ctx context.Context, cfg models.AuthConfig) (*models.SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := m.renew(cfg.WithDefaults(), 0)
	if err != nil {
		return nil, err
	}
	m.emit(models.SessionEventRenewal, *info, "", m.clock.Now())
	return info, nil
}

// renew replaces the token of the active session. A non-zero seq makes the
// call a timer callback that is ignored unless seq is still current.
func (m *Manager) renew(cfg models.AuthConfig, seq uint64) (*models.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.current
	if st == nil {
		return nil, ErrNoActiveSession
	}
	if seq != 0 && st.renewalSeq != seq {
		return nil, errStaleTimer
	}

	if err := m.issueToken(st, m.clock.Now(), cfg); err != nil {
		m.logger.Err(err).Str("func", "Manager.renew").Msg("failed to issue renewed token")
		return nil, err
	}
	m.clock.Cancel(st.renewal)
	m.scheduleRenewal(st, cfg)

	info := st.info
	return &info, nil
}

// UpdateSessionActivity records user activity and restarts the idle timer.
// It does nothing without an active session.
func (m *Manager) UpdateSessionActivity(cfg models.AuthConfig) {
	cfg = cfg.WithDefaults()

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.current
	if st == nil {
		return
	}
	st.info.LastActivityAt = m.clock.Now()
	m.clock.Cancel(st.idle)
	m.scheduleIdle(st, cfg)
}

// ClearSession terminates the active session. The key material is zeroed
// before listeners are told; ReasonIdleTimeout is reported as a timeout
// event and every other reason as a logout event. It reports whether a
// session was active.
func (m *Manager) ClearSession(reason string) bool {
	return m.clear(reason, 0)
}

func (m *Manager) clear(reason string, idleSeq uint64) bool {
	m.mu.Lock()
	st := m.current
	if st == nil || (idleSeq != 0 && st.idleSeq != idleSeq) {
		m.mu.Unlock()
		return false
	}
	m.stopTimers(st)
	m.current = nil
	m.mu.Unlock()

	info := st.info
	st.wipe()

	eventType := models.SessionEventLogout
	if reason == ReasonIdleTimeout {
		eventType = models.SessionEventTimeout
	}
	m.logger.Info().
		Str("func", "Manager.ClearSession").
		Str("session_id", info.SessionID).
		Str("reason", reason).
		Msg("session cleared")
	m.emit(eventType, info, reason, m.clock.Now())
	return true
}

// GetActiveSession returns a snapshot of the active session, or nil.
func (m *Manager) GetActiveSession() *models.SessionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	info := m.current.info
	return &info
}

// HasActiveSession reports whether a session exists and its token has not
// expired.
func (m *Manager) HasActiveSession() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current != nil && !m.clock.Now().After(m.current.info.ExpiresAt)
}

// TimeUntilExpiration returns how long the current token stays valid; zero
// without a session.
func (m *Manager) TimeUntilExpiration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0
	}
	return max(m.current.info.ExpiresAt.Sub(m.clock.Now()), 0)
}

// TimeSinceLastActivity returns the time since the last recorded activity;
// zero without a session.
func (m *Manager) TimeSinceLastActivity() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0
	}
	return m.clock.Now().Sub(m.current.info.LastActivityAt)
}

// MasterKey returns a copy of the session master key. The caller should
// zero the copy when done.
func (m *Manager) MasterKey() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, false
	}
	return append([]byte(nil), m.current.masterKey...), true
}

// AddSessionEventListener registers fn and returns its id.
func (m *Manager) AddSessionEventListener(fn Listener) ListenerID {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	m.nextListener++
	m.listeners = append(m.listeners, listenerEntry{id: m.nextListener, fn: fn})
	return m.nextListener
}

// RemoveSessionEventListener unregisters a listener. It reports whether the
// id was registered.
func (m *Manager) RemoveSessionEventListener(id ListenerID) bool {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	for i, l := range m.listeners {
		if l.id == id {
			m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// issueToken must be called with m.mu held or before st is published.
func (m *Manager) issueToken(st *state, now time.Time, cfg models.AuthConfig) error {
	rawID, err := m.keychain.RandomBytes(tokenIDSize)
	if err != nil {
		return fmt.Errorf("generate token id: %w", err)
	}

	expiresAt := now.Add(cfg.SessionExpiration).Truncate(time.Millisecond)
	payload := models.SessionTokenPayload{
		SessionID: st.info.SessionID,
		UserID:    st.info.UserID,
		CompanyID: st.info.CompanyID,
		Role:      st.info.Role,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
		DeviceID:  st.info.DeviceTokenID,
	}
	id, signed, err := encodeToken(rawID, payload)
	if err != nil {
		return err
	}
	sig, err := m.keychain.Sign(st.signingKey, signed)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	st.tokenID = id
	st.info.Token = signed + "." + b64.EncodeToString(sig)
	st.info.ExpiresAt = expiresAt
	return nil
}

// scheduleRenewal must be called with m.mu held.
func (m *Manager) scheduleRenewal(st *state, cfg models.AuthConfig) {
	m.seq++
	seq := m.seq
	delay := max(st.info.ExpiresAt.Sub(m.clock.Now())-cfg.RenewalThreshold, 0)

	st.renewalSeq = seq
	st.renewal = m.clock.Schedule(delay, func() {
		info, err := m.renew(cfg, seq)
		if err != nil {
			return
		}
		m.logger.Debug().Str("func", "Manager.renewalTimer").Str("session_id", info.SessionID).Msg("session renewed")
		m.emit(models.SessionEventRenewal, *info, "", m.clock.Now())
	})
}

// scheduleIdle must be called with m.mu held.
func (m *Manager) scheduleIdle(st *state, cfg models.AuthConfig) {
	m.seq++
	seq := m.seq

	st.idleSeq = seq
	st.idle = m.clock.Schedule(cfg.IdleTimeout, func() {
		m.clear(ReasonIdleTimeout, seq)
	})
}

// stopTimers must be called with m.mu held.
func (m *Manager) stopTimers(st *state) {
	m.clock.Cancel(st.renewal)
	m.clock.Cancel(st.idle)
	st.renewalSeq = 0
	st.idleSeq = 0
}

func (m *Manager) emit(t models.SessionEventType, info models.SessionInfo, reason string, at time.Time) {
	event := models.SessionEvent{
		Type:      t,
		SessionID: info.SessionID,
		UserID:    info.UserID,
		CompanyID: info.CompanyID,
		Reason:    reason,
		At:        at,
	}

	m.listenersMu.Lock()
	listeners := append([]listenerEntry(nil), m.listeners...)
	m.listenersMu.Unlock()

	for _, l := range listeners {
		m.dispatch(l, event)
	}
}

func (m *Manager) dispatch(l listenerEntry, event models.SessionEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().
				Str("func", "Manager.dispatch").
				Uint64("listener_id", uint64(l.id)).
				Str("event", string(event.Type)).
				Interface("panic", r).
				Msg("session event listener panicked")
		}
	}()
	l.fn(event)
}

func (s *state) wipe() {
	crypto.Zero(s.masterKey)
	crypto.Zero(s.signingKey)
	s.masterKey = nil
	s.signingKey = nil
}
