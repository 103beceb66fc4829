package session

import "errors"

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidClaims   = errors.New("session claims require user and company")

	ErrTokenMalformed        = errors.New("session token malformed")
	ErrTokenInvalidSignature = errors.New("session token signature invalid")
	ErrTokenExpired          = errors.New("session token expired")
	ErrTokenRevoked          = errors.New("session token revoked")
)

// errStaleTimer is returned internally when a timer fires for a session
// that has since been renewed or replaced.
var errStaleTimer = errors.New("stale session timer")
