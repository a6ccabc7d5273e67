// Package sanitize validates and neutralizes untrusted string input before
// it crosses a trust boundary. All functions are pure and total: invalid
// input is reported through return values, never panics.
//
// Callers embedding untrusted text in an outbound payload are expected to
// pass it through Clean (StripScriptTags then EscapeHTML).
package sanitize

import (
	"regexp"
	"strings"
)

const maxEmailLength = 254

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

	// Injection patterns rejected in email addresses.
	emailDenylist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
	}

	// Injection patterns rejected in names; a match here is reported as
	// suspicious so callers can log it distinctly from an ordinary
	// validation failure.
	nameDenylist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+=`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
	}

	scriptBlockRegex  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	jsProtocolRegex   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRegex = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// IsValidEmail reports whether s looks like a plausible address, is at most
// 254 characters, and contains no known injection pattern.
func IsValidEmail(s string) bool {
	if len(s) > maxEmailLength {
		return false
	}
	if !emailRegex.MatchString(s) {
		return false
	}
	for _, pattern := range emailDenylist {
		if pattern.MatchString(s) {
			return false
		}
	}
	return true
}

// CheckName validates a person's name: letters, whitespace, apostrophe and
// hyphen only, length between 2 and 50. suspicious is true when the input
// matched an injection pattern, regardless of the other checks.
func CheckName(s string) (valid bool, suspicious bool) {
	for _, pattern := range nameDenylist {
		if pattern.MatchString(s) {
			suspicious = true
			break
		}
	}

	valid = !suspicious &&
		len(s) >= 2 && len(s) <= 50 &&
		nameRegex.MatchString(s)
	return valid, suspicious
}

// IsValidName is CheckName without the suspicious signal.
func IsValidName(s string) bool {
	valid, _ := CheckName(s)
	return valid
}

// LooksSuspicious reports whether s contains a known injection pattern.
// Used to flag free-text fields for logging; not a validity check.
func LooksSuspicious(s string) bool {
	for _, pattern := range nameDenylist {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// EscapeHTML renders s incapable of being interpreted as markup by escaping
// &, <, >, double and single quotes.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// StripScriptTags removes complete <script>...</script> blocks (including
// attributes on the opening tag), javascript: URI prefixes, and inline
// on*= event-handler assignments.
func StripScriptTags(s string) string {
	s = scriptBlockRegex.ReplaceAllString(s, "")
	s = jsProtocolRegex.ReplaceAllString(s, "")
	s = eventHandlerRegex.ReplaceAllString(s, "")
	return s
}

// Clean is the composition applied to untrusted text at the delivery
// boundary: script stripping followed by HTML escaping.
func Clean(s string) string {
	return EscapeHTML(StripScriptTags(s))
}
