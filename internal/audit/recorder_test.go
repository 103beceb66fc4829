package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/models"
)

var at = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newBufferedRecorder() (*Recorder, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := &logger.Logger{Logger: zerolog.New(buf)}
	return NewRecorder(log, clock.NewFake(at)), buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestRecorder_Record(t *testing.T) {
	r, buf := newBufferedRecorder()

	rec := r.Record(context.Background(), models.AuditRecord{
		Action:    "logout",
		UserID:    "u-1",
		CompanyID: "acme",
		Outcome:   OutcomeSuccess,
		Details:   map[string]string{"reason": "user_logout", "forget_device": "true"},
	})

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, at, rec.CreatedAt)

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "audit", e["channel"])
	assert.Equal(t, "audit", e["message"])
	assert.Equal(t, rec.ID, e["audit_id"])
	assert.Equal(t, "logout", e["action"])
	assert.Equal(t, "acme", e["company_id"])
	assert.NotContains(t, e, "session_id")
	assert.Equal(t, map[string]any{"reason": "user_logout", "forget_device": "true"}, e["details"])
}

func TestRecorder_KeepsGivenIDAndTime(t *testing.T) {
	r, _ := newBufferedRecorder()
	when := at.Add(-time.Hour)

	rec := r.Record(context.Background(), models.AuditRecord{ID: "fixed", Action: "x", CreatedAt: when})
	assert.Equal(t, "fixed", rec.ID)
	assert.Equal(t, when, rec.CreatedAt)
}

func TestRecorder_OnSessionEvent(t *testing.T) {
	r, buf := newBufferedRecorder()

	r.OnSessionEvent(models.SessionEvent{Type: models.SessionEventTimeout, SessionID: "s-1", Reason: "idle_timeout", At: at})
	r.OnSessionEvent(models.SessionEvent{Type: models.SessionEventValidationFailed, Reason: "invalid signature", At: at})

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "session.timeout", entries[0]["action"])
	assert.Equal(t, OutcomeSuccess, entries[0]["outcome"])
	assert.Equal(t, "s-1", entries[0]["session_id"])
	assert.Equal(t, "session.validation_failed", entries[1]["action"])
	assert.Equal(t, OutcomeFailure, entries[1]["outcome"])
}
