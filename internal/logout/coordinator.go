// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logout tears sessions down. Every variant clears the session and
// the volatile store; the full logout also removes ephemeral secure entries,
// optionally forgets devices, runs registered callbacks and writes an audit
// record.
package logout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/passgate/internal/audit"
	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/session"
	"github.com/MKhiriev/passgate/models"
)

// ConfirmPrompt is the question LogoutWithConfirmation asks.
const ConfirmPrompt = "Sign out of passgate?"

// Options selects what a logout removes besides the session.
type Options struct {
	// Reason is reported on the session event and the audit record.
	// Defaults to session.ReasonUserLogout.
	Reason string
	// ForgetDevice revokes this device's token for the session's company.
	ForgetDevice bool
	// RevokeAllSessions revokes every remembered device token.
	RevokeAllSessions bool
}

// Result describes a finished logout.
type Result struct {
	SessionID      string
	UserID         string
	CompanyID      string
	Reason         string
	HadSession     bool
	DevicesRevoked int
	// CallbackErrors holds one entry per failed or panicking callback.
	CallbackErrors []error
	// Redirect tells the caller to return to the sign-in entry point.
	Redirect bool
	At       time.Time
}

// CallbackID identifies a registered logout callback.
type CallbackID uint64

// Callback runs after every full logout, in registration order.
type Callback func(ctx context.Context, r Result) error

type callbackEntry struct {
	id CallbackID
	fn Callback
}

// Coordinator runs the logout variants. It is safe for concurrent use.
type Coordinator struct {
	sessions      Sessions
	devices       Devices
	secure        EphemeralStore
	volatile      VolatileStore
	audit         AuditRecorder
	confirmer     Confirmer
	clock         clock.Clock
	logger        *logger.Logger
	ephemeralKeys []string

	mu           sync.Mutex
	callbacks    []callbackEntry
	nextCallback CallbackID
	scheduled    clock.Handle
	scheduledSeq uint64
	seq          uint64
}

// NewCoordinator creates a Coordinator. ephemeralKeys are secure-storage
// keys removed on every full logout. confirmer may be nil, in which case
// LogoutWithConfirmation proceeds without asking.
func NewCoordinator(
	sessions Sessions,
	devices Devices,
	secure EphemeralStore,
	volatile VolatileStore,
	recorder AuditRecorder,
	confirmer Confirmer,
	clk clock.Clock,
	log *logger.Logger,
	ephemeralKeys ...string,
) *Coordinator {
	return &Coordinator{
		sessions:      sessions,
		devices:       devices,
		secure:        secure,
		volatile:      volatile,
		audit:         recorder,
		confirmer:     confirmer,
		clock:         clk,
		logger:        log,
		ephemeralKeys: ephemeralKeys,
	}
}

// Logout performs a full logout. Every step runs even when an earlier one
// failed; step failures are joined into the returned error and callback
// failures are reported in Result.CallbackErrors only.
func (c *Coordinator) Logout(ctx context.Context, opts Options) (Result, error) {
	if opts.Reason == "" {
		opts.Reason = session.ReasonUserLogout
	}

	res := c.teardown(ctx, opts.Reason)
	var errs []error

	for _, key := range c.ephemeralKeys {
		if err := c.secure.RemoveItem(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}

	switch {
	case opts.RevokeAllSessions:
		n, err := c.devices.RevokeAllDeviceTokens(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("revoke all devices: %w", err))
		}
		res.DevicesRevoked = n
	case opts.ForgetDevice && res.CompanyID != "":
		if err := c.devices.RevokeDeviceToken(ctx, res.CompanyID); err != nil {
			errs = append(errs, fmt.Errorf("forget device: %w", err))
		} else {
			res.DevicesRevoked = 1
		}
	}

	if res.volatileErr != nil {
		errs = append(errs, res.volatileErr)
	}

	res.CallbackErrors = c.runCallbacks(ctx, res.Result)

	outcome := audit.OutcomeSuccess
	if len(errs) > 0 || len(res.CallbackErrors) > 0 {
		outcome = audit.OutcomePartial
	}
	c.record(ctx, "logout", outcome, res.Result, map[string]string{
		"reason":          opts.Reason,
		"forget_device":   strconv.FormatBool(opts.ForgetDevice),
		"revoke_all":      strconv.FormatBool(opts.RevokeAllSessions),
		"devices_revoked": strconv.Itoa(res.DevicesRevoked),
		"callback_errors": strconv.Itoa(len(res.CallbackErrors)),
	})

	err := errors.Join(errs...)
	ev := c.logger.Info()
	if err != nil {
		ev = c.logger.Err(err)
	}
	ev.Str("func", "Coordinator.Logout").
		Str("reason", opts.Reason).
		Bool("had_session", res.HadSession).
		Int("devices_revoked", res.DevicesRevoked).
		Msg("logout finished")

	return res.Result, err
}

// EmergencyLogout clears only the session and the volatile store. Device
// trust and secure entries are kept and no callbacks run.
func (c *Coordinator) EmergencyLogout(ctx context.Context) Result {
	res := c.teardown(ctx, session.ReasonEmergency)
	res.Redirect = true

	outcome := audit.OutcomeSuccess
	if res.volatileErr != nil {
		outcome = audit.OutcomePartial
		c.logger.Err(res.volatileErr).Str("func", "Coordinator.EmergencyLogout").Msg("error clearing volatile store")
	}
	c.record(ctx, "logout.emergency", outcome, res.Result, nil)

	c.logger.Warn().Str("func", "Coordinator.EmergencyLogout").Bool("had_session", res.HadSession).Msg("emergency logout")
	return res.Result
}

// LogoutWithConfirmation asks the confirmer first. It reports whether the
// logout ran.
func (c *Coordinator) LogoutWithConfirmation(ctx context.Context, opts Options) (bool, error) {
	if c.confirmer != nil {
		ok, err := c.confirmer.Confirm(ctx, ConfirmPrompt)
		if err != nil {
			return false, fmt.Errorf("confirm logout: %w", err)
		}
		if !ok {
			c.logger.Debug().Str("func", "Coordinator.LogoutWithConfirmation").Msg("logout declined")
			return false, nil
		}
	}

	_, err := c.Logout(ctx, opts)
	return true, err
}

// OnLogout registers cb and returns its id.
func (c *Coordinator) OnLogout(cb Callback) CallbackID {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextCallback++
	c.callbacks = append(c.callbacks, callbackEntry{id: c.nextCallback, fn: cb})
	return c.nextCallback
}

// OffLogout unregisters a callback. It reports whether id was registered.
func (c *Coordinator) OffLogout(id CallbackID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cb := range c.callbacks {
		if cb.id == id {
			c.callbacks = append(c.callbacks[:i:i], c.callbacks[i+1:]...)
			return true
		}
	}
	return false
}

// ScheduleLogout arranges a full logout after delay, replacing any logout
// scheduled earlier.
func (c *Coordinator) ScheduleLogout(delay time.Duration, reason string) clock.Handle {
	if reason == "" {
		reason = session.ReasonScheduled
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduled != 0 {
		c.clock.Cancel(c.scheduled)
	}
	c.seq++
	seq := c.seq
	c.scheduledSeq = seq
	c.scheduled = c.clock.Schedule(delay, func() {
		c.mu.Lock()
		if c.scheduledSeq != seq {
			c.mu.Unlock()
			return
		}
		c.scheduled, c.scheduledSeq = 0, 0
		c.mu.Unlock()

		if _, err := c.Logout(context.Background(), Options{Reason: reason}); err != nil {
			c.logger.Err(err).Str("func", "Coordinator.ScheduleLogout").Msg("scheduled logout finished with errors")
		}
	})

	c.logger.Debug().Str("func", "Coordinator.ScheduleLogout").Dur("delay", delay).Str("reason", reason).Msg("logout scheduled")
	return c.scheduled
}

// CancelScheduledLogout cancels the scheduled logout identified by h. It
// reports false when h is not the pending one.
func (c *Coordinator) CancelScheduledLogout(h clock.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h == 0 || h != c.scheduled {
		return false
	}
	c.clock.Cancel(h)
	c.scheduled, c.scheduledSeq = 0, 0
	return true
}

// ValidateLogout reports whether nothing of a signed-in state remains: no
// active session, no volatile entries and no ephemeral secure entries.
func (c *Coordinator) ValidateLogout(ctx context.Context) bool {
	if c.sessions.HasActiveSession() {
		return false
	}
	keys, err := c.volatile.Keys(ctx, "")
	if err != nil || len(keys) > 0 {
		return false
	}
	for _, key := range c.ephemeralKeys {
		if c.secure.HasItem(ctx, key) {
			return false
		}
	}
	return true
}

type teardownResult struct {
	Result
	volatileErr error
}

// teardown clears the session and the volatile store and cancels a pending
// scheduled logout.
func (c *Coordinator) teardown(ctx context.Context, reason string) teardownResult {
	res := teardownResult{Result: Result{Reason: reason, At: c.clock.Now()}}

	if snapshot := c.sessions.GetActiveSession(); snapshot != nil {
		res.SessionID = snapshot.SessionID
		res.UserID = snapshot.UserID
		res.CompanyID = snapshot.CompanyID
	}
	res.HadSession = c.sessions.ClearSession(reason)

	if err := c.volatile.Clear(ctx); err != nil {
		res.volatileErr = fmt.Errorf("clear volatile store: %w", err)
	}

	c.mu.Lock()
	if c.scheduled != 0 {
		c.clock.Cancel(c.scheduled)
		c.scheduled, c.scheduledSeq = 0, 0
	}
	c.mu.Unlock()

	return res
}

func (c *Coordinator) runCallbacks(ctx context.Context, res Result) []error {
	c.mu.Lock()
	callbacks := append([]callbackEntry(nil), c.callbacks...)
	c.mu.Unlock()

	var errs []error
	for _, cb := range callbacks {
		if err := c.invoke(ctx, cb, res); err != nil {
			c.logger.Err(err).Str("func", "Coordinator.runCallbacks").Uint64("callback_id", uint64(cb.id)).Msg("logout callback failed")
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *Coordinator) invoke(ctx context.Context, cb callbackEntry, res Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logout callback %d panicked: %v", cb.id, r)
		}
	}()
	return cb.fn(ctx, res)
}

func (c *Coordinator) record(ctx context.Context, action, outcome string, res Result, details map[string]string) {
	if c.audit == nil {
		return
	}
	c.audit.Record(ctx, models.AuditRecord{
		Action:    action,
		UserID:    res.UserID,
		CompanyID: res.CompanyID,
		SessionID: res.SessionID,
		Outcome:   outcome,
		Details:   details,
		CreatedAt: res.At,
	})
}
