// Package fingerprint derives a best-effort identifier for an anonymous
// caller from environment signals the site front-end reports alongside each
// request. The identifier is a heuristic for abuse throttling: distinct users
// can collide and any client can spoof its own signals. It is never an
// authentication mechanism.
package fingerprint

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Header names the front-end uses to report browser environment signals.
// Missing headers degrade to zero values rather than failing.
const (
	HeaderScreenResolution    = "X-Screen-Resolution"
	HeaderTimezoneOffset      = "X-Timezone-Offset"
	HeaderHardwareConcurrency = "X-Hardware-Concurrency"
)

// Signals holds the environment tuple a fingerprint is derived from.
type Signals struct {
	UserAgent           string
	Language            string
	ScreenWidth         int
	ScreenHeight        int
	TimezoneOffsetMin   int
	HardwareConcurrency int
}

// FromRequest reads signals from request headers. User-Agent and
// Accept-Language are standard; the rest are optional hints set by the site's
// client script.
func FromRequest(r *http.Request) Signals {
	s := Signals{
		UserAgent: r.UserAgent(),
		Language:  r.Header.Get("Accept-Language"),
	}

	if res := r.Header.Get(HeaderScreenResolution); res != "" {
		parts := strings.SplitN(res, "x", 2)
		if len(parts) == 2 {
			s.ScreenWidth, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
			s.ScreenHeight, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
	}
	if tz := r.Header.Get(HeaderTimezoneOffset); tz != "" {
		s.TimezoneOffsetMin, _ = strconv.Atoi(strings.TrimSpace(tz))
	}
	if hc := r.Header.Get(HeaderHardwareConcurrency); hc != "" {
		s.HardwareConcurrency, _ = strconv.Atoi(strings.TrimSpace(hc))
	}

	return s
}

// Derive reduces the signal tuple to a decimal identifier. The tuple is
// joined in fixed order with "|" and folded through a 32-bit rolling hash
// (h = h*31 + c with signed wraparound); the result is the absolute value.
// Deterministic for identical signals, and any single changed signal changes
// the output with overwhelming probability.
func (s Signals) Derive() string {
	joined := strings.Join([]string{
		s.UserAgent,
		s.Language,
		fmt.Sprintf("%dx%d", s.ScreenWidth, s.ScreenHeight),
		strconv.Itoa(s.TimezoneOffsetMin),
		strconv.Itoa(s.HardwareConcurrency),
	}, "|")

	var hash int32
	for _, r := range joined {
		hash = hash<<5 - hash + int32(r)
	}

	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 10)
}
