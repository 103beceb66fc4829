package fingerprint

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
)

// appID scopes the machine id so the raw value is never hashed directly.
const appID = "passgate"

// HostProbe reads characteristics of the local host: the platform as the
// user agent, locale from LANG, colour support from TERM, the local UTC
// offset and a host signature built from the hostname and machine id.
//
// Only the platform and host signature feed [Stable]. Screen geometry is
// left zero.
type HostProbe struct {
	// now is overridable in tests.
	now func() time.Time
}

// NewHostProbe returns a probe of the current host.
func NewHostProbe() *HostProbe {
	return &HostProbe{now: time.Now}
}

// Characteristics implements [Probe].
func (h *HostProbe) Characteristics() Characteristics {
	c := Characteristics{
		UserAgent:  "passgate (" + runtime.GOOS + "; " + runtime.GOARCH + ")",
		Language:   language(),
		ColorDepth: colorDepth(os.Getenv("TERM"), os.Getenv("COLORTERM")),
		Graphics:   hostSignature(),
	}

	c.TimezoneOffset = standardOffset(h.now()) / 60

	return c
}

// standardOffset is the zone's UTC offset in seconds outside daylight
// saving, so the fingerprint does not change twice a year.
func standardOffset(now time.Time) int {
	loc := now.Location()
	_, jan := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(now.Year(), time.July, 1, 0, 0, 0, 0, loc).Zone()
	return min(jan, jul)
}

func language() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			// drop the encoding: en_US.UTF-8 -> en_US
			if i := strings.IndexByte(v, '.'); i > 0 {
				v = v[:i]
			}
			return v
		}
	}
	return ""
}

func colorDepth(termName, colorTerm string) int {
	switch {
	case colorTerm == "truecolor" || colorTerm == "24bit":
		return 24
	case strings.Contains(termName, "256color"):
		return 8
	case termName == "" || termName == "dumb":
		return 0
	default:
		return 4
	}
}

// hostSignature is empty-safe: a host without a machine id still yields its
// hostname.
func hostSignature() string {
	host, _ := os.Hostname()
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		id = ""
	}
	return host + "/" + id
}
