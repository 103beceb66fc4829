package device

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/mock"
	"github.com/MKhiriev/passgate/internal/securestore"
	"github.com/MKhiriev/passgate/internal/store"
	"github.com/MKhiriev/passgate/models"
)

var (
	start = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

	desk   = fingerprint.Characteristics{UserAgent: "go/test (linux; amd64)", Language: "en_US", ColorDepth: 24, Graphics: "desk/16"}
	laptop = fingerprint.Characteristics{UserAgent: "go/test (darwin; arm64)", Language: "de_DE", ColorDepth: 24, Graphics: "laptop/8"}
)

type fixture struct {
	store   *Store
	durable store.KeyValueStore
	engine  *securestore.Engine
	clock   *clock.Fake
	probe   *mock.MockProbe
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	clk := clock.NewFake(start)
	durable := store.NewMemoryStore(0)

	engineProbe := mock.NewMockProbe(ctrl)
	engineProbe.EXPECT().Characteristics().Return(desk).AnyTimes()
	engine := securestore.NewEngine(durable, crypto.NewKeyChainService(), engineProbe, clk, 0, logger.Nop())
	require.NoError(t, engine.Initialize(context.Background()))

	probe := mock.NewMockProbe(ctrl)
	return fixture{
		store:   NewStore(engine, probe, clk, logger.Nop()),
		durable: durable,
		engine:  engine,
		clock:   clk,
		probe:   probe,
	}
}

func TestCreateAndGetDeviceToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()

	created, err := f.store.CreateDeviceToken(ctx, "u-1", "acme", cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, created.TokenID)
	assert.Equal(t, fingerprint.Compute(desk), created.Fingerprint)
	assert.Equal(t, start.Add(30*24*time.Hour), created.ExpiresAt)
	assert.True(t, created.IsActive)

	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.TokenID, got.TokenID)
	assert.True(t, f.store.IsDeviceRemembered(ctx, "acme", cfg))

	none, err := f.store.GetDeviceToken(ctx, "globex", cfg)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = f.store.CreateDeviceToken(ctx, "u-1", "", cfg)
	assert.ErrorIs(t, err, ErrMissingCompany)
}

func TestGetDeviceToken_FingerprintDriftRevokes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cfg := models.DefaultAuthConfig()

	gomock.InOrder(
		f.probe.EXPECT().Characteristics().Return(desk),
		f.probe.EXPECT().Characteristics().Return(laptop),
	)

	_, err := f.store.CreateDeviceToken(ctx, "u-1", "acme", cfg)
	require.NoError(t, err)

	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.False(t, f.engine.HasItem(ctx, KeyPrefix+"acme"), "drifted token is revoked")
}

func TestGetDeviceToken_FingerprintingDisabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cfg := models.DefaultAuthConfig()
	cfg.EnableDeviceFingerprinting = false

	// No probe expectations: a disabled fingerprint is never computed.
	created, err := f.store.CreateDeviceToken(ctx, "u-1", "acme", cfg)
	require.NoError(t, err)
	assert.Empty(t, created.Fingerprint)

	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestGetDeviceToken_ExpiredRevokes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()
	cfg.DeviceTokenExpiration = time.Hour

	_, err := f.store.CreateDeviceToken(ctx, "u-1", "acme", cfg)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, f.engine.HasItem(ctx, KeyPrefix+"acme"))
}

func TestGetDeviceToken_InactiveRevokes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()

	inactive := models.DeviceToken{
		TokenID:     "t-1",
		CompanyID:   "acme",
		Fingerprint: fingerprint.Compute(desk),
		ExpiresAt:   start.Add(time.Hour),
	}
	raw, err := json.Marshal(inactive)
	require.NoError(t, err)
	require.NoError(t, f.engine.SetItem(ctx, KeyPrefix+"acme", string(raw)))

	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, f.engine.HasItem(ctx, KeyPrefix+"acme"))
}

func TestUpdateDeviceTokenActivity_SlidesExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()
	cfg.DeviceTokenExpiration = 48 * time.Hour

	_, err := f.store.CreateDeviceToken(ctx, "u-1", "acme", cfg)
	require.NoError(t, err)

	f.clock.Advance(40 * time.Hour)
	require.NoError(t, f.store.UpdateDeviceTokenActivity(ctx, "acme", cfg))

	f.clock.Advance(40 * time.Hour)
	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, start.Add(40*time.Hour), got.LastUsedAt)
	assert.Equal(t, start.Add(88*time.Hour), got.ExpiresAt)

	assert.NoError(t, f.store.UpdateDeviceTokenActivity(ctx, "globex", cfg), "no token is a no-op")
}

func TestRevokeDeviceTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()

	for _, company := range []string{"acme", "globex", "initech"} {
		_, err := f.store.CreateDeviceToken(ctx, "u-1", company, cfg)
		require.NoError(t, err)
	}
	require.NoError(t, f.engine.SetItem(ctx, "session_hint", "{}"))

	require.NoError(t, f.store.RevokeDeviceToken(ctx, "acme"))
	assert.False(t, f.store.IsDeviceRemembered(ctx, "acme", cfg))
	assert.True(t, f.store.IsDeviceRemembered(ctx, "globex", cfg))

	removed, err := f.store.RevokeAllDeviceTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.False(t, f.store.IsDeviceRemembered(ctx, "initech", cfg))
	assert.True(t, f.engine.HasItem(ctx, "session_hint"), "unrelated entries survive")
}

func TestGetDeviceToken_MigratesLegacyEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.probe.EXPECT().Characteristics().Return(desk).AnyTimes()
	cfg := models.DefaultAuthConfig()

	legacy := models.DeviceToken{
		TokenID:     "legacy-1",
		UserID:      "u-1",
		CompanyID:   "acme",
		Fingerprint: fingerprint.Compute(desk),
		CreatedAt:   start.Add(-time.Hour),
		ExpiresAt:   start.Add(24 * time.Hour),
		LastUsedAt:  start.Add(-time.Hour),
		IsActive:    true,
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, f.durable.Set(ctx, LegacyKeyPrefix+"acme", string(raw)))

	got, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "legacy-1", got.TokenID)

	_, err = f.durable.Get(ctx, LegacyKeyPrefix+"acme")
	assert.ErrorIs(t, err, store.ErrKeyNotFound, "cleartext copy is gone")

	again, err := f.store.GetDeviceToken(ctx, "acme", cfg)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, "legacy-1", again.TokenID)
}
