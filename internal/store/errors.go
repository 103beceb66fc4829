package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by key/value backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by Get when no value is stored under the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by Set when a write would push a
	// capacity-limited backend past its limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnknownBackend is returned by [NewStorages] for an unsupported
	// backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Low-level database operation errors returned (wrapped) by the SQLite
// backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// quotaMarkers are the spellings different storage engines use when they run
// out of space.
var quotaMarkers = []string{
	"QuotaExceededError",
	"NS_ERROR_DOM_QUOTA_REACHED",
	"OOM command not allowed",
	"database or disk is full",
}

// quotaCodes are numeric quota codes some engines report instead of a name.
var quotaCodes = map[int]struct{}{22: {}, 1014: {}}

// coder is implemented by errors that expose a numeric code.
type coder interface {
	Code() int
}

// IsQuotaExceeded reports whether err means "the backing store is full". It
// recognises [ErrQuotaExceeded], SQLite's SQLITE_FULL, Redis OOM replies, the
// browser quota spellings, and the numeric codes 22 and 1014.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrFull {
		return true
	}

	var c coder
	if errors.As(err, &c) {
		if _, ok := quotaCodes[c.Code()]; ok {
			return true
		}
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "OOM") {
		return true
	}
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
