// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

// Maintenance defaults.
const (
	DefaultCleanupInterval = time.Hour
	DefaultMaxEntryAge     = 30 * 24 * time.Hour
)

// Report is the outcome of one maintenance pass.
type Report struct {
	Removed     int
	Stats       models.StorageStats
	NearlyFull  bool
	CompletedAt time.Time
}

// MaintenanceJob purges stale secure entries on a fixed interval and warns
// when the durable store is close to its quota.
type MaintenanceJob struct {
	storage  Maintainer
	clock    clock.Clock
	logger   *logger.Logger
	interval time.Duration
	maxAge   time.Duration

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	handle  clock.Handle
	seq     uint64
	last    Report
	running bool
}

// NewMaintenanceJob creates an idle job. Non-positive interval or maxAge
// select the defaults.
func NewMaintenanceJob(storage Maintainer, clk clock.Clock, log *logger.Logger, interval, maxAge time.Duration) *MaintenanceJob {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxEntryAge
	}
	return &MaintenanceJob{
		storage:  storage,
		clock:    clk,
		logger:   log,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start implements [Worker]. A running job is restarted. The first pass
// runs one interval after Start.
func (j *MaintenanceJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	defer j.mu.Unlock()

	j.ctx, j.cancel = context.WithCancel(ctx)
	j.running = true
	j.scheduleLocked()

	j.logger.Info().
		Str("func", "MaintenanceJob.Start").
		Dur("interval", j.interval).
		Dur("max_age", j.maxAge).
		Msg("storage maintenance started")
}

// Stop implements [Worker].
func (j *MaintenanceJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	j.clock.Cancel(j.handle)
	j.cancel()
	j.handle, j.running = 0, false
	j.seq++

	j.logger.Info().Str("func", "MaintenanceJob.Stop").Msg("storage maintenance stopped")
}

// Running reports whether the job is started.
func (j *MaintenanceJob) Running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

// LastReport returns the report of the most recent pass.
func (j *MaintenanceJob) LastReport() Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}

// RunOnce performs a single maintenance pass. A cleanup error is returned
// after the stats are still collected.
func (j *MaintenanceJob) RunOnce(ctx context.Context) (Report, error) {
	removed, cleanupErr := j.storage.CleanupOldEntries(ctx, j.maxAge)
	if cleanupErr != nil {
		j.logger.Err(cleanupErr).Str("func", "MaintenanceJob.RunOnce").Msg("error cleaning up secure storage")
	}

	report := Report{Removed: removed, CompletedAt: j.clock.Now()}
	stats, err := j.storage.StorageStats(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "MaintenanceJob.RunOnce").Msg("error reading storage stats")
	} else {
		report.Stats = stats
	}

	if j.storage.IsNearlyFull(ctx) {
		report.NearlyFull = true
		j.logger.Warn().
			Str("func", "MaintenanceJob.RunOnce").
			Float64("percent_used", report.Stats.PercentUsed).
			Int64("limit_bytes", report.Stats.LimitBytes).
			Msg("secure storage nearly full")
	}

	j.mu.Lock()
	j.last = report
	j.mu.Unlock()

	if cleanupErr != nil {
		return report, cleanupErr
	}
	return report, err
}

// scheduleLocked must be called with j.mu held.
func (j *MaintenanceJob) scheduleLocked() {
	j.seq++
	seq := j.seq
	j.handle = j.clock.Schedule(j.interval, func() { j.tick(seq) })
}

func (j *MaintenanceJob) tick(seq uint64) {
	j.mu.Lock()
	if !j.running || j.seq != seq {
		j.mu.Unlock()
		return
	}
	ctx := j.ctx
	j.mu.Unlock()

	if ctx.Err() != nil {
		j.Stop()
		return
	}

	_, _ = j.RunOnce(ctx)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running && j.seq == seq {
		j.scheduleLocked()
	}
}
