// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clock provides the time source and deferred-callback scheduler
// used by the session, logout and login components.
//
// Components never call time.Now or time.AfterFunc directly; they receive a
// Clock so tests can drive renewal, idle and lock windows deterministically
// with [Fake].
package clock

import (
	"context"
	"sync"
	"time"
)

// Handle identifies one scheduled callback. The zero Handle is never issued.
type Handle uint64

// Clock is a time source plus a scheduler of cancellable deferred callbacks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Schedule runs fn once after delay and returns a handle to cancel it.
	// fn runs on its own goroutine and must do its own locking.
	Schedule(delay time.Duration, fn func()) Handle

	// Cancel prevents the callback from running. It reports whether the
	// callback was still pending.
	Cancel(h Handle) bool

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is the wall-clock implementation backed by time.AfterFunc.
type Real struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewReal returns a ready to use wall clock.
func NewReal() *Real {
	return &Real{timers: make(map[Handle]*time.Timer)}
}

func (r *Real) Now() time.Time {
	return time.Now()
}

func (r *Real) Schedule(delay time.Duration, fn func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.timers[h] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		_, pending := r.timers[h]
		delete(r.timers, h)
		r.mu.Unlock()

		if pending {
			fn()
		}
	})
	return h
}

func (r *Real) Cancel(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[h]
	if !ok {
		return false
	}
	delete(r.timers, h)
	t.Stop()
	return true
}

func (r *Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pending returns the number of callbacks that have not fired or been
// cancelled yet.
func (r *Real) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}
