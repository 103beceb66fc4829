// Package workers runs passgate's background jobs. A Worker is started once
// with a context and stopped on shutdown; Workers starts and stops a group of
// them in order.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/passgate/models"
)

// Worker is a background job.
//
// Start must not block; the job keeps running until Stop is called or ctx is
// cancelled. Stop is safe to call on a worker that is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Maintainer is the storage surface the maintenance job drives.
type Maintainer interface {
	CleanupOldEntries(ctx context.Context, maxAge time.Duration) (int, error)
	StorageStats(ctx context.Context) (models.StorageStats, error)
	IsNearlyFull(ctx context.Context) bool
}
