package client

import (
	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/logout"
)

// Option customises an [App] at construction.
type Option func(*App)

// WithLogger replaces the file logger derived from the log config.
func WithLogger(log *logger.Logger) Option {
	return func(a *App) { a.logger = log }
}

// WithClock replaces the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(a *App) { a.clock = clk }
}

// WithProbe replaces the host fingerprint probe.
func WithProbe(p fingerprint.Probe) Option {
	return func(a *App) { a.probe = p }
}

// WithKeyChain replaces the crypto primitives.
func WithKeyChain(k crypto.KeyChainService) Option {
	return func(a *App) { a.keychain = k }
}

// WithConfirmer sets the prompt used by [App.LogoutWithConfirmation].
func WithConfirmer(c logout.Confirmer) Option {
	return func(a *App) { a.confirmer = c }
}
