package vcf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a;b", `a\;b`},
		{"a,b", `a\,b`},
		{"a\nb", `a\nb`},
		{"a\r\nb", `a\nb`},
		{"a\rb", `a\nb`},
		{"a\r\rb", `a\n\nb`},
		{`a\b`, `a\\b`},
		{`\;`, `\\;`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, vcf.Escape(tt.in))
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "plain", "plain"},
		{"Newline", `a\nb`, "a\nb"},
		{"Upper newline", `a\Nb`, "a\nb"},
		{"Comma", `a\,b`, "a,b"},
		{"Semicolon", `a\;b`, "a;b"},
		{"Backslash", `a\\b`, `a\b`},
		{"Escaped backslash before n", `\\n`, `\n`},
		{"Unknown sequence kept", `a\xb`, `a\xb`},
		{"Trailing backslash kept", `a\`, `a\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vcf.Unescape(tt.in))
		})
	}
}

// TestEscape_RoundTrip checks Unescape(Escape(s)) == s, including inputs that
// already look escaped.
func TestEscape_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		`\n`,
		`\\`,
		"a\\",
		";,;,",
		"multi\nline\ntext",
		`C:\temp\new`,
		"émoji 🎉, ok; done",
		`\N\,\;`,
	}

	for _, s := range inputs {
		assert.Equal(t, s, vcf.Unescape(vcf.Escape(s)), "round trip of %q", s)
	}
}

// FuzzEscape checks that any escaped value stays on one content line and
// decodes back to the input with its line breaks written as "\n".
func FuzzEscape(f *testing.F) {
	for _, seed := range []string{"", "plain", "a;b,c", `\n`, "x\ry", "Line1\r\nLine2", "hi\rTEL:+1", "\r\n\r", "tail\\"} {
		f.Add(seed)
	}
	breaks := strings.NewReplacer("\r\n", "\n", "\r", "\n")

	f.Fuzz(func(t *testing.T, s string) {
		escaped := vcf.Escape(s)

		assert.NotContains(t, escaped, "\r")
		assert.NotContains(t, escaped, "\n")
		assert.Equal(t, breaks.Replace(s), vcf.Unescape(escaped))
		assert.Equal(t, []string{"NOTE:" + escaped}, vcf.Unfold("NOTE:"+escaped))
	})
}
