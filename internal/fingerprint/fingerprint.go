// Package fingerprint derives a stable, non-reversible identifier for the
// host passgate runs on. It binds the secure-storage key and remembered
// device tokens to this machine.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

//go:generate mockgen -source=fingerprint.go -destination=../mock/fingerprint_mock.go -package=mock

// Characteristics are the raw host signals a fingerprint is computed from.
type Characteristics struct {
	UserAgent      string
	Language       string
	ScreenWidth    int
	ScreenHeight   int
	ColorDepth     int
	TimezoneOffset int // minutes east of UTC
	Graphics       string
}

// Probe gathers [Characteristics] from the running environment.
type Probe interface {
	Characteristics() Characteristics
}

// Compute returns the SHA-256 hex digest of the canonical serialisation of c.
// Equal characteristics always yield the same fingerprint.
func Compute(c Characteristics) string {
	canonical := strings.Join([]string{
		c.UserAgent,
		c.Language,
		fmt.Sprintf("%dx%d", c.ScreenWidth, c.ScreenHeight),
		fmt.Sprintf("%d", c.ColorDepth),
		fmt.Sprintf("%d", c.TimezoneOffset),
		c.Graphics,
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// FromProbe is shorthand for Compute(p.Characteristics()).
func FromProbe(p Probe) string {
	return Compute(p.Characteristics())
}

// Stable digests only the platform and host signature of c. Locale,
// terminal, timezone and geometry are left out, so the result does not
// change when the same host runs passgate from another shell environment.
// It keys the secure storage; [Compute] drives device-trust drift checks.
func Stable(c Characteristics) string {
	sum := sha256.Sum256([]byte(c.UserAgent + "|" + c.Graphics))
	return hex.EncodeToString(sum[:])
}

// StableFromProbe is shorthand for Stable(p.Characteristics()).
func StableFromProbe(p Probe) string {
	return Stable(p.Characteristics())
}
