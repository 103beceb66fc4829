package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() (*pflag.FlagSet, *Flags) {
	fs := pflag.NewFlagSet("passgate", pflag.ContinueOnError)
	return fs, RegisterFlags(fs)
}

func TestFlags_Overrides(t *testing.T) {
	fs, f := newTestFlagSet()
	require.NoError(t, fs.Parse([]string{
		"-c", "cfg.yaml",
		"--backend", "sqlite",
		"--storage-path", "vault.db",
		"--idle-timeout", "3m",
		"--max-failed-attempts", "4",
		"--log-level", "debug",
	}))

	o := f.Overrides()
	assert.Equal(t, "cfg.yaml", o.JSONFilePath)
	assert.Equal(t, BackendSQLite, o.Storage.Backend)
	assert.Equal(t, "vault.db", o.Storage.Path)
	assert.Equal(t, 3*time.Minute, o.Auth.IdleTimeout)
	assert.Equal(t, 4, o.Auth.MaxFailedAttempts)
	assert.Equal(t, "debug", o.Log.Level)
}

func TestFlags_FingerprintingOnlyWhenChanged(t *testing.T) {
	fs, f := newTestFlagSet()
	require.NoError(t, fs.Parse(nil))
	assert.Nil(t, f.Overrides().Auth.EnableDeviceFingerprinting)

	fs, f = newTestFlagSet()
	require.NoError(t, fs.Parse([]string{"--fingerprinting=false"}))
	got := f.Overrides().Auth.EnableDeviceFingerprinting
	require.NotNil(t, got)
	assert.False(t, *got)
}

func TestFlags_UnsetAreZero(t *testing.T) {
	fs, f := newTestFlagSet()
	require.NoError(t, fs.Parse(nil))

	o := f.Overrides()
	assert.Empty(t, o.Storage.Backend)
	assert.Zero(t, o.Auth.SessionExpiration)
	assert.Empty(t, o.JSONFilePath)
}
