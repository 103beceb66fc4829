package logout

import (
	"context"

	"github.com/MKhiriev/passgate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/logout_mock.go -package=mock

// Confirmer asks the user to approve a logout.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Sessions is the session manager surface the coordinator drives.
type Sessions interface {
	GetActiveSession() *models.SessionInfo
	HasActiveSession() bool
	ClearSession(reason string) bool
}

// Devices revokes remembered devices.
type Devices interface {
	RevokeDeviceToken(ctx context.Context, companyID string) error
	RevokeAllDeviceTokens(ctx context.Context) (int, error)
}

// EphemeralStore holds the secure entries removed on every full logout.
type EphemeralStore interface {
	HasItem(ctx context.Context, key string) bool
	RemoveItem(ctx context.Context, key string) error
}

// VolatileStore is the per-process store wiped on every logout.
type VolatileStore interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
	Clear(ctx context.Context) error
}

// AuditRecorder writes the record of a logout.
type AuditRecorder interface {
	Record(ctx context.Context, rec models.AuditRecord) models.AuditRecord
}
