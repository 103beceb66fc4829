package logout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/passgate/internal/audit"
	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/device"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/mock"
	"github.com/MKhiriev/passgate/internal/securestore"
	"github.com/MKhiriev/passgate/internal/session"
	"github.com/MKhiriev/passgate/internal/store"
	"github.com/MKhiriev/passgate/models"
)

const hintKey = "session_hint"

var (
	start = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	host  = fingerprint.Characteristics{UserAgent: "go/test (linux; amd64)", Language: "en_US", ColorDepth: 24, Graphics: "ci/4"}
)

type fixture struct {
	coord    *Coordinator
	sessions *session.Manager
	devices  *device.Store
	engine   *securestore.Engine
	volatile store.KeyValueStore
	audit    *mock.MockAuditRecorder
	confirm  *mock.MockConfirmer
	clock    *clock.Fake
	cfg      models.AuthConfig
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	clk := clock.NewFake(start)
	keychain := crypto.NewKeyChainService()

	probe := mock.NewMockProbe(ctrl)
	probe.EXPECT().Characteristics().Return(host).AnyTimes()

	engine := securestore.NewEngine(store.NewMemoryStore(0), keychain, probe, clk, 0, logger.Nop())
	require.NoError(t, engine.Initialize(ctx))

	f := fixture{
		sessions: session.NewManager(keychain, clk, logger.Nop()),
		devices:  device.NewStore(engine, probe, clk, logger.Nop()),
		engine:   engine,
		volatile: store.NewMemoryStore(0),
		audit:    mock.NewMockAuditRecorder(ctrl),
		confirm:  mock.NewMockConfirmer(ctrl),
		clock:    clk,
		cfg:      models.DefaultAuthConfig(),
	}
	f.coord = NewCoordinator(f.sessions, f.devices, f.engine, f.volatile, f.audit, f.confirm, clk, logger.Nop(), hintKey)
	return f
}

// signIn creates a session for company with a remembered device and some
// per-session state.
func (f fixture) signIn(t *testing.T, company string) *models.SessionInfo {
	t.Helper()
	ctx := context.Background()

	key := make([]byte, crypto.KeySize)
	info, err := f.sessions.CreateSession(ctx, models.SessionClaims{UserID: "u-" + company, CompanyID: company}, key, f.cfg)
	require.NoError(t, err)

	_, err = f.devices.CreateDeviceToken(ctx, info.UserID, company, f.cfg)
	require.NoError(t, err)
	require.NoError(t, f.engine.SetItem(ctx, hintKey, `{"company_id":"`+company+`"}`))
	require.NoError(t, f.volatile.Set(ctx, "draft", "unsaved"))
	return info
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	info := f.signIn(t, "acme")

	var got models.AuditRecord
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.AuditRecord) models.AuditRecord {
			got = rec
			return rec
		})

	var order []string
	f.coord.OnLogout(func(_ context.Context, r Result) error {
		order = append(order, "first:"+r.SessionID)
		return nil
	})
	f.coord.OnLogout(func(_ context.Context, r Result) error {
		order = append(order, "second:"+r.Reason)
		return nil
	})

	res, err := f.coord.Logout(ctx, Options{})
	require.NoError(t, err)

	assert.True(t, res.HadSession)
	assert.Equal(t, info.SessionID, res.SessionID)
	assert.Equal(t, "u-acme", res.UserID)
	assert.Equal(t, "acme", res.CompanyID)
	assert.Equal(t, session.ReasonUserLogout, res.Reason)
	assert.Equal(t, start, res.At)
	assert.Zero(t, res.DevicesRevoked)
	assert.Empty(t, res.CallbackErrors)
	assert.Equal(t, []string{"first:" + info.SessionID, "second:" + session.ReasonUserLogout}, order)

	assert.False(t, f.sessions.HasActiveSession())
	assert.False(t, f.engine.HasItem(ctx, hintKey))
	keys, err := f.volatile.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, f.devices.IsDeviceRemembered(ctx, "acme", f.cfg), "device trust survives a plain logout")
	assert.True(t, f.coord.ValidateLogout(ctx))

	assert.Equal(t, "logout", got.Action)
	assert.Equal(t, audit.OutcomeSuccess, got.Outcome)
	assert.Equal(t, info.SessionID, got.SessionID)
	assert.Equal(t, "false", got.Details["forget_device"])
}

func TestLogoutWithoutSession(t *testing.T) {
	f := newFixture(t)
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{})

	res, err := f.coord.Logout(context.Background(), Options{Reason: "switch_company"})
	require.NoError(t, err)
	assert.False(t, res.HadSession)
	assert.Empty(t, res.SessionID)
	assert.Equal(t, "switch_company", res.Reason)
}

func TestLogoutForgetDevice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{}).AnyTimes()

	_, err := f.devices.CreateDeviceToken(ctx, "u-2", "globex", f.cfg)
	require.NoError(t, err)
	f.signIn(t, "acme")

	res, err := f.coord.Logout(ctx, Options{ForgetDevice: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DevicesRevoked)
	assert.False(t, f.devices.IsDeviceRemembered(ctx, "acme", f.cfg))
	assert.True(t, f.devices.IsDeviceRemembered(ctx, "globex", f.cfg))
}

func TestLogoutRevokeAllSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{}).AnyTimes()

	_, err := f.devices.CreateDeviceToken(ctx, "u-2", "globex", f.cfg)
	require.NoError(t, err)
	f.signIn(t, "acme")

	res, err := f.coord.Logout(ctx, Options{ForgetDevice: true, RevokeAllSessions: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DevicesRevoked)
	assert.False(t, f.devices.IsDeviceRemembered(ctx, "acme", f.cfg))
	assert.False(t, f.devices.IsDeviceRemembered(ctx, "globex", f.cfg))
}

func TestLogoutCallbackFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signIn(t, "acme")

	var outcome string
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.AuditRecord) models.AuditRecord {
			outcome = rec.Outcome
			return rec
		})

	ran := false
	f.coord.OnLogout(func(context.Context, Result) error { return errors.New("flush failed") })
	f.coord.OnLogout(func(context.Context, Result) error { panic("boom") })
	f.coord.OnLogout(func(context.Context, Result) error { ran = true; return nil })

	res, err := f.coord.Logout(ctx, Options{})
	require.NoError(t, err, "callback failures are not step failures")
	assert.True(t, ran)
	require.Len(t, res.CallbackErrors, 2)
	assert.EqualError(t, res.CallbackErrors[0], "flush failed")
	assert.Contains(t, res.CallbackErrors[1].Error(), "panicked: boom")
	assert.Equal(t, audit.OutcomePartial, outcome)
	assert.False(t, f.sessions.HasActiveSession())
}

func TestOffLogout(t *testing.T) {
	f := newFixture(t)
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{})

	calls := 0
	id := f.coord.OnLogout(func(context.Context, Result) error { calls++; return nil })
	assert.True(t, f.coord.OffLogout(id))
	assert.False(t, f.coord.OffLogout(id))

	_, err := f.coord.Logout(context.Background(), Options{})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestLogoutJoinsStepErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	clk := clock.NewFake(start)

	sessions := mock.NewMockSessions(ctrl)
	devices := mock.NewMockDevices(ctrl)
	secure := mock.NewMockEphemeralStore(ctrl)
	volatile := mock.NewMockVolatileStore(ctrl)
	recorder := mock.NewMockAuditRecorder(ctrl)

	sessions.EXPECT().GetActiveSession().Return(&models.SessionInfo{SessionID: "s-1", UserID: "u-1", CompanyID: "acme"})
	sessions.EXPECT().ClearSession(session.ReasonUserLogout).Return(true)
	volatile.EXPECT().Clear(gomock.Any()).Return(errors.New("volatile down"))
	secure.EXPECT().RemoveItem(gomock.Any(), hintKey).Return(errors.New("disk full"))
	devices.EXPECT().RevokeDeviceToken(gomock.Any(), "acme").Return(errors.New("locked"))

	var rec models.AuditRecord
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.AuditRecord) models.AuditRecord {
			rec = r
			return r
		})

	c := NewCoordinator(sessions, devices, secure, volatile, recorder, nil, clk, logger.Nop(), hintKey)
	res, err := c.Logout(ctx, Options{ForgetDevice: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "locked")
	assert.Contains(t, err.Error(), "volatile down")
	assert.True(t, res.HadSession)
	assert.Zero(t, res.DevicesRevoked)
	assert.Equal(t, audit.OutcomePartial, rec.Outcome)
	assert.Equal(t, "s-1", rec.SessionID)
}

func TestEmergencyLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signIn(t, "acme")

	var action string
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.AuditRecord) models.AuditRecord {
			action = rec.Action
			return rec
		})
	called := false
	f.coord.OnLogout(func(context.Context, Result) error { called = true; return nil })

	res := f.coord.EmergencyLogout(ctx)
	assert.True(t, res.Redirect)
	assert.True(t, res.HadSession)
	assert.Equal(t, session.ReasonEmergency, res.Reason)
	assert.Equal(t, "logout.emergency", action)
	assert.False(t, called)

	assert.False(t, f.sessions.HasActiveSession())
	keys, err := f.volatile.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, f.engine.HasItem(ctx, hintKey))
	assert.True(t, f.devices.IsDeviceRemembered(ctx, "acme", f.cfg))
	assert.False(t, f.coord.ValidateLogout(ctx), "ephemeral entries are still present")
}

func TestLogoutWithConfirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("declined", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "acme")
		f.confirm.EXPECT().Confirm(gomock.Any(), ConfirmPrompt).Return(false, nil)

		ran, err := f.coord.LogoutWithConfirmation(ctx, Options{})
		require.NoError(t, err)
		assert.False(t, ran)
		assert.True(t, f.sessions.HasActiveSession())
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "acme")
		f.confirm.EXPECT().Confirm(gomock.Any(), ConfirmPrompt).Return(true, nil)
		f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{})

		ran, err := f.coord.LogoutWithConfirmation(ctx, Options{})
		require.NoError(t, err)
		assert.True(t, ran)
		assert.False(t, f.sessions.HasActiveSession())
	})

	t.Run("prompt error", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t, "acme")
		f.confirm.EXPECT().Confirm(gomock.Any(), ConfirmPrompt).Return(false, context.Canceled)

		ran, err := f.coord.LogoutWithConfirmation(ctx, Options{})
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
		assert.True(t, f.sessions.HasActiveSession())
	})
}

func TestScheduleLogout(t *testing.T) {
	f := newFixture(t)
	info := f.signIn(t, "acme")

	var reason string
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.AuditRecord) models.AuditRecord {
			reason = rec.Details["reason"]
			return rec
		})

	first := f.coord.ScheduleLogout(2*time.Minute, "")
	second := f.coord.ScheduleLogout(5*time.Minute, "")
	assert.NotEqual(t, first, second)
	assert.False(t, f.coord.CancelScheduledLogout(first), "replaced schedule is no longer pending")

	f.clock.Advance(2 * time.Minute)
	assert.True(t, f.sessions.HasActiveSession())
	assert.Equal(t, info.SessionID, f.sessions.GetActiveSession().SessionID)

	f.clock.Advance(3 * time.Minute)
	assert.False(t, f.sessions.HasActiveSession())
	assert.Equal(t, session.ReasonScheduled, reason)
	assert.False(t, f.coord.CancelScheduledLogout(second))
}

func TestCancelScheduledLogout(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "acme")

	h := f.coord.ScheduleLogout(time.Minute, "")
	assert.True(t, f.coord.CancelScheduledLogout(h))
	assert.False(t, f.coord.CancelScheduledLogout(h))

	f.clock.Advance(time.Minute)
	assert.True(t, f.sessions.HasActiveSession())
}

func TestLogoutCancelsScheduledLogout(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "acme")
	f.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(models.AuditRecord{}).Times(1)

	f.coord.ScheduleLogout(time.Minute, "")
	_, err := f.coord.Logout(context.Background(), Options{})
	require.NoError(t, err)

	f.signIn(t, "acme")
	f.clock.Advance(time.Minute)
	assert.True(t, f.sessions.HasActiveSession(), "the earlier schedule must not end the new session")
}
