package fingerprint

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseSignals() Signals {
	return Signals{
		UserAgent:           "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		Language:            "en-US",
		ScreenWidth:         1920,
		ScreenHeight:        1080,
		TimezoneOffsetMin:   -120,
		HardwareConcurrency: 8,
	}
}

func TestDerive_Deterministic(t *testing.T) {
	a := baseSignals().Derive()
	b := baseSignals().Derive()
	assert.Equal(t, a, b)
}

func TestDerive_IsDecimal(t *testing.T) {
	id := baseSignals().Derive()
	require.NotEmpty(t, id)
	n, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(0))
}

func TestDerive_SignalChangesOutput(t *testing.T) {
	base := baseSignals().Derive()

	tests := []struct {
		name   string
		mutate func(*Signals)
	}{
		{"user agent", func(s *Signals) { s.UserAgent = "curl/8.0" }},
		{"language", func(s *Signals) { s.Language = "de-DE" }},
		{"screen width", func(s *Signals) { s.ScreenWidth = 1280 }},
		{"screen height", func(s *Signals) { s.ScreenHeight = 720 }},
		{"timezone offset", func(s *Signals) { s.TimezoneOffsetMin = 0 }},
		{"hardware concurrency", func(s *Signals) { s.HardwareConcurrency = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSignals()
			tt.mutate(&s)
			assert.NotEqual(t, base, s.Derive())
		})
	}
}

func TestDerive_ZeroValueSignals(t *testing.T) {
	// All signals missing still produces a usable identifier.
	id := Signals{}.Derive()
	require.NotEmpty(t, id)
	_, err := strconv.ParseInt(id, 10, 64)
	assert.NoError(t, err)
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set(HeaderScreenResolution, "1920x1080")
	req.Header.Set(HeaderTimezoneOffset, "-120")
	req.Header.Set(HeaderHardwareConcurrency, "8")

	s := FromRequest(req)
	assert.Equal(t, "Mozilla/5.0", s.UserAgent)
	assert.Equal(t, "en-US", s.Language)
	assert.Equal(t, 1920, s.ScreenWidth)
	assert.Equal(t, 1080, s.ScreenHeight)
	assert.Equal(t, -120, s.TimezoneOffsetMin)
	assert.Equal(t, 8, s.HardwareConcurrency)
}

func TestFromRequest_MissingHints(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	s := FromRequest(req)
	assert.Zero(t, s.ScreenWidth)
	assert.Zero(t, s.ScreenHeight)
	assert.Zero(t, s.TimezoneOffsetMin)
	assert.Zero(t, s.HardwareConcurrency)

	// Defensive defaults still derive an identifier.
	assert.NotEmpty(t, s.Derive())
}

func TestFromRequest_MalformedResolution(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.Header.Set(HeaderScreenResolution, "garbage")

	s := FromRequest(req)
	assert.Zero(t, s.ScreenWidth)
	assert.Zero(t, s.ScreenHeight)
}
