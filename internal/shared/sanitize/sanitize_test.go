package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple valid", "a@b.co", true},
		{"typical valid", "jane.doe@example.com", true},
		{"plus addressing", "jane+tag@example.com", true},
		{"not an email", "not-an-email", false},
		{"missing tld", "a@b", false},
		{"contains whitespace", "a b@c.co", false},
		{"script injection", "a@b.co<script>", false},
		{"javascript uri", "javascript:alert(1)@b.co", false},
		{"data uri", "data:text@b.co", false},
		{"vbscript uri", "vbscript:x@b.co", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidEmail_LengthBoundary(t *testing.T) {
	local := strings.Repeat("a", 243)
	// 243 + len("@example.com") == 255
	tooLong := local + "@example.com"
	assert.Equal(t, 255, len(tooLong))
	assert.False(t, IsValidEmail(tooLong))

	okLength := local[:242] + "@example.com"
	assert.Equal(t, 254, len(okLength))
	assert.True(t, IsValidEmail(okLength))
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		valid      bool
		suspicious bool
	}{
		{"plain name", "Jane Doe", true, false},
		{"apostrophe and hyphen", "O'Brien-Smith", true, false},
		{"too short", "A", false, false},
		{"too long", strings.Repeat("a", 51), false, false},
		{"digits rejected", "Jane2", false, false},
		{"script tag", "<script>x</script>", false, true},
		{"javascript uri", "javascript:alert(1)", false, true},
		{"event handler", "x onload=alert(1)", false, true},
		{"iframe", "<iframe src=x>", false, true},
		{"object", "<OBJECT>", false, true},
		{"embed", "<embed>", false, true},
		{"empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, suspicious := CheckName(tt.input)
			assert.Equal(t, tt.valid, valid, "valid")
			assert.Equal(t, tt.suspicious, suspicious, "suspicious")
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"angle brackets", "<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"ampersand first", "a&b<c", "a&amp;b&lt;c"},
		{"quotes", `"quoted" and 'single'`, "&quot;quoted&quot; and &#39;single&#39;"},
		{"clean text untouched", "Hello, world.", "Hello, world."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.input))
		})
	}
}

func TestStripScriptTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"script block removed",
			"before<script>alert(1)</script>after",
			"beforeafter",
		},
		{
			"case insensitive with attributes",
			`x<SCRIPT type="text/javascript">evil()</SCRIPT>y`,
			"xy",
		},
		{
			"non-greedy across blocks",
			"<script>a</script>keep<script>b</script>",
			"keep",
		},
		{
			"javascript uri stripped",
			"click javascript:alert(1) here",
			"click alert(1) here",
		},
		{
			"event handler stripped",
			`<img src=x onerror=alert(1)>`,
			"<img src=x alert(1)>",
		},
		{
			"plain text untouched",
			"nothing dangerous here",
			"nothing dangerous here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripScriptTags(tt.input))
		})
	}
}

func TestClean_RoundTripSafety(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"hello <script src=evil.js>payload</script> world",
		`<a href="javascript:steal()">x</a>`,
		`<div onclick=pwn()>y</div>`,
	}

	for _, input := range inputs {
		out := Clean(input)
		assert.NotContains(t, strings.ToLower(out), "<script",
			"no executable script tag may survive Clean: %q -> %q", input, out)
		assert.NotContains(t, out, "<", "all markup must be escaped: %q -> %q", input, out)
	}
}

func TestLooksSuspicious(t *testing.T) {
	assert.True(t, LooksSuspicious("see <script>alert(1)</script>"))
	assert.True(t, LooksSuspicious("javascript:void(0)"))
	assert.False(t, LooksSuspicious("a perfectly ordinary message"))
}
