package vcf

import "strings"

// valueEscaper escapes the backslash before anything else so that the
// backslashes it introduces are never escaped twice. CRLF is listed before the
// lone CR so that it collapses into a single escaped newline.
var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

// Escape makes s safe to embed in a property value. Line breaks of every style
// become `\n`, so the result never spans more than one content line.
func Escape(s string) string {
	return valueEscaper.Replace(s)
}

// Unescape reverses Escape. `\n` and `\N` both decode to a newline; an unknown
// escape sequence and a trailing lone backslash are kept as they are.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		switch next := s[i+1]; next {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(next)
		default:
			b.WriteByte(c)
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}

// splitStructured splits a raw structured value (N, ORG, ADR) on semicolons that
// are not escaped. Components are returned still escaped.
func splitStructured(value string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case ';':
			parts = append(parts, value[start:i])
			start = i + 1
		}
	}
	return append(parts, value[start:])
}

// component returns the unescaped i-th part, or "" when absent.
func component(parts []string, i int) string {
	if i < len(parts) {
		return Unescape(parts[i])
	}
	return ""
}
