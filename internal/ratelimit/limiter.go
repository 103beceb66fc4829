// Package ratelimit keeps per-identifier failed-login counters in secure
// storage so a restart cannot reset them.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

// KeyPrefix prefixes the secure-storage key of every counter.
const KeyPrefix = "login_attempts:"

// Storage is the subset of the secure storage engine the limiter needs.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Limiter locks an identifier for cfg.RateLimitDuration once it reaches
// cfg.MaxFailedAttempts consecutive failures. Each read-modify-write runs
// under one mutex; processes sharing the same store are last-write-wins.
type Limiter struct {
	storage Storage
	clock   clock.Clock
	logger  *logger.Logger

	mu sync.Mutex
}

// NewLimiter creates a limiter persisting through storage.
func NewLimiter(storage Storage, clk clock.Clock, log *logger.Logger) *Limiter {
	return &Limiter{storage: storage, clock: clk, logger: log}
}

// Normalize is the canonical form identifiers are counted under.
func Normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func storageKey(identifier string) string {
	return KeyPrefix + Normalize(identifier)
}

// Check reports whether identifier may attempt a login now. A lock whose
// window has elapsed is cleared here, so the counter starts over.
func (l *Limiter) Check(ctx context.Context, identifier string, cfg models.AuthConfig) (models.RateLimitStatus, error) {
	cfg = cfg.WithDefaults()

	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, ok := l.load(ctx, identifier)
	if !ok {
		return models.RateLimitStatus{Allowed: true, Remaining: cfg.MaxFailedAttempts}, nil
	}

	now := l.clock.Now()
	if attempt.LockedUntil != nil {
		if now.Before(*attempt.LockedUntil) {
			return models.RateLimitStatus{Allowed: false, Wait: attempt.LockedUntil.Sub(now)}, nil
		}
		if err := l.storage.RemoveItem(ctx, storageKey(identifier)); err != nil {
			return models.RateLimitStatus{}, fmt.Errorf("reset expired lock: %w", err)
		}
		l.logger.Info().Str("func", "Limiter.Check").Msg("lock window elapsed, counter reset")
		return models.RateLimitStatus{Allowed: true, Remaining: cfg.MaxFailedAttempts}, nil
	}

	return models.RateLimitStatus{Allowed: true, Remaining: max(cfg.MaxFailedAttempts-attempt.Count, 0)}, nil
}

// RecordFailure counts one failed attempt and locks the identifier when the
// threshold is reached. The returned status describes the state after the
// failure.
func (l *Limiter) RecordFailure(ctx context.Context, identifier string, cfg models.AuthConfig) (models.RateLimitStatus, error) {
	cfg = cfg.WithDefaults()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	attempt, ok := l.load(ctx, identifier)
	if !ok || (attempt.LockedUntil != nil && !now.Before(*attempt.LockedUntil)) {
		attempt = models.FailedLoginAttempt{Identifier: Normalize(identifier), FirstAttemptAt: now}
	}

	attempt.Count++
	attempt.LastAttemptAt = now
	if attempt.LockedUntil == nil && attempt.Count >= cfg.MaxFailedAttempts {
		until := now.Add(cfg.RateLimitDuration)
		attempt.LockedUntil = &until
		l.logger.Warn().
			Str("func", "Limiter.RecordFailure").
			Int("count", attempt.Count).
			Time("locked_until", until).
			Msg("identifier locked after repeated failures")
	}

	if err := l.save(ctx, attempt); err != nil {
		return models.RateLimitStatus{}, err
	}

	if attempt.LockedUntil != nil {
		return models.RateLimitStatus{Allowed: false, Wait: attempt.LockedUntil.Sub(now)}, nil
	}
	return models.RateLimitStatus{Allowed: true, Remaining: cfg.MaxFailedAttempts - attempt.Count}, nil
}

// Reset forgets every failure recorded for identifier.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.storage.RemoveItem(ctx, storageKey(identifier)); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

// Attempts returns the stored counter for identifier, if any.
func (l *Limiter) Attempts(ctx context.Context, identifier string) (models.FailedLoginAttempt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx, identifier)
}

func (l *Limiter) load(ctx context.Context, identifier string) (models.FailedLoginAttempt, bool) {
	raw, ok := l.storage.GetItem(ctx, storageKey(identifier))
	if !ok {
		return models.FailedLoginAttempt{}, false
	}

	var attempt models.FailedLoginAttempt
	if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
		l.logger.Err(err).Str("func", "Limiter.load").Msg("unreadable attempt record ignored")
		return models.FailedLoginAttempt{}, false
	}
	return attempt, true
}

func (l *Limiter) save(ctx context.Context, attempt models.FailedLoginAttempt) error {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt record: %w", err)
	}
	if err = l.storage.SetItem(ctx, storageKey(attempt.Identifier), string(payload)); err != nil {
		return fmt.Errorf("save attempt record: %w", err)
	}
	return nil
}
