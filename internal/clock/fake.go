// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clock

import (
	"context"
	"sort"
	"sync"
	"time"
)

type fakeTimer struct {
	handle Handle
	at     time.Time
	fn     func()
}

// Fake is a manually advanced Clock. Scheduled callbacks run synchronously on
// the goroutine calling Advance, in due-time order (ties in scheduling
// order). Sleep returns immediately and only accumulates the requested
// duration, so randomized delays never move the fake time.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	next    Handle
	pending map[Handle]*fakeTimer
	slept   time.Duration
	sleeps  int
}

// NewFake returns a Fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start, pending: make(map[Handle]*fakeTimer)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Schedule(delay time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	f.next++
	h := f.next
	f.pending[h] = &fakeTimer{handle: h, at: f.now.Add(delay), fn: fn}
	return h
}

func (f *Fake) Cancel(h Handle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.pending[h]; !ok {
		return false
	}
	delete(f.pending, h)
	return true
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.slept += d
	f.sleeps++
	f.mu.Unlock()
	return nil
}

// Advance moves the clock forward by d, firing every callback that becomes
// due. Callbacks scheduled by fired callbacks fire too when they fall inside
// the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		t := f.nextDue(target)
		if t == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		delete(f.pending, t.handle)
		f.now = t.at
		f.mu.Unlock()

		t.fn()
	}
}

// Set moves the clock to an absolute time without firing callbacks that
// would be due in between; callbacks due at or before t fire on the next
// Advance.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Pending returns the number of scheduled callbacks not yet fired.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Slept returns the accumulated Sleep duration and number of Sleep calls.
func (f *Fake) Slept() (time.Duration, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slept, f.sleeps
}

// nextDue must be called with f.mu held.
func (f *Fake) nextDue(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(f.pending))
	for _, t := range f.pending {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].handle < due[j].handle
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}
