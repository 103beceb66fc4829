// Package audit writes structured security events to the local log. Records
// never leave the process through any other channel.
package audit

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

// Outcomes written to AuditRecord.Outcome.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailure = "failure"
)

// Recorder emits audit records through a dedicated child logger.
type Recorder struct {
	logger *logger.Logger
	clock  clock.Clock
}

func NewRecorder(log *logger.Logger, clk clock.Clock) *Recorder {
	child := log.With().Str("channel", "audit").Logger()
	return &Recorder{logger: &logger.Logger{Logger: child}, clock: clk}
}

// Record stamps rec with an id and time when missing, writes it and
// returns the stored form.
func (r *Recorder) Record(_ context.Context, rec models.AuditRecord) models.AuditRecord {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.clock.Now()
	}

	ev := r.logger.Info().
		Str("audit_id", rec.ID).
		Str("action", rec.Action).
		Str("outcome", rec.Outcome).
		Time("at", rec.CreatedAt)
	if rec.UserID != "" {
		ev = ev.Str("user_id", rec.UserID)
	}
	if rec.CompanyID != "" {
		ev = ev.Str("company_id", rec.CompanyID)
	}
	if rec.SessionID != "" {
		ev = ev.Str("session_id", rec.SessionID)
	}
	if len(rec.Details) > 0 {
		ev = ev.Dict("details", details(rec.Details))
	}
	ev.Msg("audit")

	return rec
}

// OnSessionEvent records a session lifecycle event. Its signature matches
// the session manager's listener type.
func (r *Recorder) OnSessionEvent(e models.SessionEvent) {
	rec := models.AuditRecord{
		Action:    "session." + string(e.Type),
		UserID:    e.UserID,
		CompanyID: e.CompanyID,
		SessionID: e.SessionID,
		Outcome:   OutcomeSuccess,
		CreatedAt: e.At,
	}
	if e.Type == models.SessionEventValidationFailed {
		rec.Outcome = OutcomeFailure
	}
	if e.Reason != "" {
		rec.Details = map[string]string{"reason": e.Reason}
	}
	r.Record(context.Background(), rec)
}

// details renders m in key order so identical records log identically.
func details(m map[string]string) *zerolog.Event {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := zerolog.Dict()
	for _, k := range keys {
		d = d.Str(k, m[k])
	}
	return d
}
