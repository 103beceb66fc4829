package securestore

import (
	"context"
	"strconv"
	"strings"
	"sync"
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
	"github.com/MKhiriev/passgate/internal/store"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type staticProbe fingerprint.Characteristics

func (p staticProbe) Characteristics() fingerprint.Characteristics {
	return fingerprint.Characteristics(p)
}

var laptop = staticProbe{UserAgent: "go/test (linux; amd64)", Language: "en_US", Graphics: "laptop/8"}

func newTestEngine(t *testing.T, durable store.KeyValueStore, probe fingerprint.Probe, quota int64) (*Engine, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(testStart)
	return NewEngine(durable, crypto.NewKeyChainService(), probe, clk, quota, logger.Nop()), clk
}

func newReadyEngine(t *testing.T) (*Engine, store.KeyValueStore, *clock.Fake) {
	t.Helper()
	durable := store.NewMemoryStore(0)
	e, clk := newTestEngine(t, durable, laptop, 0)
	require.NoError(t, e.Initialize(context.Background()))
	return e, durable, clk
}

func TestEngine_RoundTrip(t *testing.T) {
	ctx := context.Background()
	e, durable, _ := newReadyEngine(t)

	require.NoError(t, e.SetItem(ctx, "hint", "alice@acme"))

	v, ok := e.GetItem(ctx, "hint")
	require.True(t, ok)
	assert.Equal(t, "alice@acme", v)

	raw, err := durable.Get(ctx, EntryPrefix+"hint")
	require.NoError(t, err)
	assert.NotContains(t, raw, "alice", "value must not be stored in cleartext")
	assert.Contains(t, raw, `"v":1`)

	meta, err := durable.Get(ctx, MetaPrefix+"hint")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ts":`+itoa(testStart.UnixMilli())+`}`, meta)

	require.NoError(t, e.SetItem(ctx, "hint", "bob@acme"))
	v, ok = e.GetItem(ctx, "hint")
	require.True(t, ok)
	assert.Equal(t, "bob@acme", v)
}

func TestEngine_NotInitialized(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, store.NewMemoryStore(0), laptop, 0)

	err := e.SetItem(ctx, "k", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "NOT_INITIALIZED", string(se.Code))

	_, ok := e.GetItem(ctx, "k")
	assert.False(t, ok)
}

func TestEngine_GetItem_FailsClosed(t *testing.T) {
	ctx := context.Background()
	e, durable, _ := newReadyEngine(t)

	_, ok := e.GetItem(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, e.SetItem(ctx, "k", "secret"))
	raw, err := durable.Get(ctx, EntryPrefix+"k")
	require.NoError(t, err)

	cases := map[string]string{
		"not json":      "{{{",
		"wrong version": strings.Replace(raw, `"v":1`, `"v":2`, 1),
		"bad base64":    `{"ct":"***","iv":"AAAAAAAAAAAAAAAA","v":1}`,
		"tampered ct":   strings.Replace(raw, `"ct":"`, `"ct":"AAAA`, 1),
	}
	for name, corrupted := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, durable.Set(ctx, EntryPrefix+"k", corrupted))
			v, ok := e.GetItem(ctx, "k")
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestEngine_KeyBoundToDevice(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore(0)

	first, _ := newTestEngine(t, durable, laptop, 0)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.SetItem(ctx, "k", "v"))

	// same device, new process: the persisted salt yields the same key
	again, _ := newTestEngine(t, durable, laptop, 0)
	require.NoError(t, again.Initialize(ctx))
	v, ok := again.GetItem(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	// different device characteristics cannot read it
	other := laptop
	other.Graphics = "desktop/16"
	foreign, _ := newTestEngine(t, durable, other, 0)
	require.NoError(t, foreign.Initialize(ctx))
	_, ok = foreign.GetItem(ctx, "k")
	assert.False(t, ok)
}

func TestEngine_ReadableAfterTerminalChange(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore(0)
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")

	t.Setenv("TERM", "xterm-256color")
	t.Setenv("LANG", "en_US.UTF-8")
	first, _ := newTestEngine(t, durable, fingerprint.NewHostProbe(), 0)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.SetItem(ctx, "k", "v"))

	t.Setenv("TERM", "screen")
	t.Setenv("LANG", "de_DE.UTF-8")
	second, _ := newTestEngine(t, durable, fingerprint.NewHostProbe(), 0)
	require.NoError(t, second.Initialize(ctx))
	v, ok := second.GetItem(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestEngine_ConcurrentInitializeDerivesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	probe := mock.NewMockProbe(ctrl)
	probe.EXPECT().Characteristics().Return(fingerprint.Characteristics(laptop)).Times(1)

	e, _ := newTestEngine(t, store.NewMemoryStore(0), probe, 0)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.Initialize(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, e.Initialized())
	require.NoError(t, e.Initialize(context.Background()))
}

func TestEngine_InitializeStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	durable := mock.NewMockKeyValueStore(ctrl)
	durable.EXPECT().Get(gomock.Any(), DeviceSaltKey).Return("", assert.AnError)

	e, _ := newTestEngine(t, durable, laptop, 0)
	err := e.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.False(t, e.Initialized())
}

func TestEngine_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	e, durable, _ := newReadyEngine(t)

	require.NoError(t, durable.Set(ctx, "unrelated", "keep"))
	require.NoError(t, e.SetItem(ctx, "a", "1"))
	require.NoError(t, e.SetItem(ctx, "b", "2"))

	require.NoError(t, e.RemoveItem(ctx, "a"))
	_, ok := e.GetItem(ctx, "a")
	assert.False(t, ok)
	_, err := durable.Get(ctx, MetaPrefix+"a")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	require.NoError(t, e.Clear(ctx))
	keys, err := e.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	v, err := durable.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
	_, err = durable.Get(ctx, DeviceSaltKey)
	assert.NoError(t, err, "device salt survives Clear")
}

func TestEngine_Keys(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newReadyEngine(t)

	require.NoError(t, e.SetItem(ctx, "device_token:acme", "x"))
	require.NoError(t, e.SetItem(ctx, "device_token:globex", "y"))
	require.NoError(t, e.SetItem(ctx, "session_hint", "z"))

	keys, err := e.Keys(ctx, "device_token:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"device_token:acme", "device_token:globex"}, keys)
}

func TestEngine_MigrateFromUnencrypted(t *testing.T) {
	ctx := context.Background()
	e, durable, _ := newReadyEngine(t)

	migrated, err := e.MigrateFromUnencrypted(ctx, "legacy", "modern")
	require.NoError(t, err)
	assert.False(t, migrated, "nothing to migrate")

	require.NoError(t, durable.Set(ctx, "legacy", "cleartext"))
	migrated, err = e.MigrateFromUnencrypted(ctx, "legacy", "modern")
	require.NoError(t, err)
	assert.True(t, migrated)

	v, ok := e.GetItem(ctx, "modern")
	require.True(t, ok)
	assert.Equal(t, "cleartext", v)
	_, err = durable.Get(ctx, "legacy")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	// idempotent: second call is a no-op
	migrated, err = e.MigrateFromUnencrypted(ctx, "legacy", "modern")
	require.NoError(t, err)
	assert.False(t, migrated)

	// a stale legacy copy never overwrites the encrypted one
	require.NoError(t, durable.Set(ctx, "legacy", "older"))
	migrated, err = e.MigrateFromUnencrypted(ctx, "legacy", "modern")
	require.NoError(t, err)
	assert.False(t, migrated)
	v, _ = e.GetItem(ctx, "modern")
	assert.Equal(t, "cleartext", v)
	_, err = durable.Get(ctx, "legacy")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestEngine_CleanupOldEntries(t *testing.T) {
	ctx := context.Background()
	e, durable, clk := newReadyEngine(t)

	require.NoError(t, e.SetItem(ctx, "stale", "1"))
	clk.Advance(20 * 24 * time.Hour)
	require.NoError(t, e.SetItem(ctx, "fresh", "2"))
	require.NoError(t, durable.Set(ctx, MetaPrefix+"orphan", `{"ts":1}`))
	require.NoError(t, durable.Set(ctx, EntryPrefix+"nometa", `{"ct":"","iv":"","v":1}`))
	clk.Advance(11 * 24 * time.Hour)

	removed, err := e.CleanupOldEntries(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok := e.GetItem(ctx, "stale")
	assert.False(t, ok)
	v, ok := e.GetItem(ctx, "fresh")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	_, err = durable.Get(ctx, MetaPrefix+"orphan")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
	_, err = durable.Get(ctx, EntryPrefix+"nometa")
	assert.NoError(t, err, "entries without metadata are kept")
}

func TestEngine_CleanupOldEntries_Retained(t *testing.T) {
	ctx := context.Background()
	e, _, clk := newReadyEngine(t)
	e.Retain("passphrase_test:")

	require.NoError(t, e.SetItem(ctx, "passphrase_test:acme", "proof"))
	require.NoError(t, e.SetItem(ctx, "session_hint", "hint"))
	clk.Advance(90 * 24 * time.Hour)

	removed, err := e.CleanupOldEntries(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	v, ok := e.GetItem(ctx, "passphrase_test:acme")
	require.True(t, ok, "retained entries outlive the cleanup window")
	assert.Equal(t, "proof", v)
	_, ok = e.GetItem(ctx, "session_hint")
	assert.False(t, ok)
}

func TestEngine_QuotaCleanupAndRetry(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore(600)
	e, clk := newTestEngine(t, durable, laptop, 600)
	require.NoError(t, e.Initialize(ctx))

	big := strings.Repeat("x", 200)
	require.NoError(t, e.SetItem(ctx, "old", big))

	clk.Advance(31 * 24 * time.Hour)
	require.NoError(t, e.SetItem(ctx, "new", big), "cleanup frees room for the retry")

	_, ok := e.GetItem(ctx, "old")
	assert.False(t, ok)
	v, ok := e.GetItem(ctx, "new")
	require.True(t, ok)
	assert.Equal(t, big, v)
}

func TestEngine_QuotaExceededAfterRetry(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore(600)
	e, _ := newTestEngine(t, durable, laptop, 600)
	require.NoError(t, e.Initialize(ctx))

	big := strings.Repeat("x", 200)
	require.NoError(t, e.SetItem(ctx, "a", big))

	err := e.SetItem(ctx, "b", big)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, ok := e.GetItem(ctx, "a")
	assert.True(t, ok, "fresh entries survive the cleanup pass")
}

func TestEngine_SetItem_QuotaFromBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	durable := mock.NewMockKeyValueStore(ctrl)
	durable.EXPECT().Get(gomock.Any(), DeviceSaltKey).Return("AAAAAAAAAAAAAAAAAAAAAA==", nil)
	e, _ := newTestEngine(t, durable, laptop, 0)
	require.NoError(t, e.Initialize(ctx))

	quotaErr := &browserQuotaError{}
	gomock.InOrder(
		durable.EXPECT().Set(gomock.Any(), EntryPrefix+"k", gomock.Any()).Return(quotaErr),
		durable.EXPECT().Keys(gomock.Any(), MetaPrefix).Return(nil, nil),
		durable.EXPECT().Set(gomock.Any(), EntryPrefix+"k", gomock.Any()).Return(nil),
		durable.EXPECT().Set(gomock.Any(), MetaPrefix+"k", gomock.Any()).Return(nil),
	)

	require.NoError(t, e.SetItem(ctx, "k", "v"))
}

type browserQuotaError struct{}

func (*browserQuotaError) Error() string { return "QuotaExceededError: storage full" }

func TestEngine_StorageStats(t *testing.T) {
	ctx := context.Background()
	durable := store.NewMemoryStore(0)
	e, _ := newTestEngine(t, durable, laptop, 1000)
	require.NoError(t, e.Initialize(ctx))
	require.NoError(t, e.SetItem(ctx, "k", "v"))

	stats, err := e.StorageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stats.LimitBytes)
	assert.Equal(t, 1, stats.EntryCount)

	var want int64
	keys, _ := durable.Keys(ctx, "")
	for _, k := range keys {
		v, _ := durable.Get(ctx, k)
		want += int64(len(k) + len(v))
	}
	assert.Equal(t, want, stats.UsedBytes)
	assert.InDelta(t, float64(want)/10, stats.PercentUsed, 0.001)

	assert.Equal(t, stats.PercentUsed > 80, e.IsNearlyFull(ctx))

	small, _ := newTestEngine(t, durable, laptop, 100)
	assert.True(t, small.IsNearlyFull(ctx))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
