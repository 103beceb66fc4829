package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/passgate/internal/app"
	"github.com/MKhiriev/passgate/internal/securestore"
	"github.com/MKhiriev/passgate/internal/session"
	"github.com/MKhiriev/passgate/models"
)

// UserMessage maps err to the generic text shown to the user. It never
// includes the error's own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var loginErr *LoginError
	if errors.As(err, &loginErr) {
		switch loginErr.Code {
		case models.ErrorCodeInvalidPassphrase:
			return app.MsgInvalidPassphrase
		case models.ErrorCodeRateLimited:
			return fmt.Sprintf(app.MsgRateLimited, humanizeWait(loginErr.Wait))
		case models.ErrorCodeAccountLocked:
			return fmt.Sprintf(app.MsgAccountLocked, humanizeWait(loginErr.Wait))
		default:
			return app.MsgUnknownError
		}
	}

	switch {
	case errors.Is(err, ErrWeakPassphrase):
		return app.MsgWeakPassphrase
	case errors.Is(err, securestore.ErrQuotaExceeded):
		return app.MsgStorageFull
	case errors.Is(err, securestore.ErrNotInitialized), errors.Is(err, securestore.ErrStorageFailure):
		return app.MsgStorageUnavailable
	case errors.Is(err, session.ErrNoActiveSession):
		return app.MsgNotSignedIn
	case errors.Is(err, session.ErrTokenExpired),
		errors.Is(err, session.ErrTokenRevoked),
		errors.Is(err, session.ErrTokenInvalidSignature),
		errors.Is(err, session.ErrTokenMalformed):
		return app.MsgSessionEnded
	}
	return app.MsgUnknownError
}

// humanizeWait rounds d up to whole minutes, or whole seconds below one
// minute.
func humanizeWait(d time.Duration) string {
	if d <= 0 {
		return "a moment"
	}
	if d < time.Minute {
		s := int(math.Ceil(d.Seconds()))
		if s == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", s)
	}
	m := int(math.Ceil(d.Minutes()))
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
