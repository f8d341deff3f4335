package vcf

import (
	"strings"

	"github.com/tartampluch/go-vcfedit/internal/config"
)

// lineBreaks normalises every line-ending style to "\n".
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// continuations removes a line break followed by one space or tab.
var continuations = strings.NewReplacer("\n ", "", "\n\t", "")

// Unfold rejoins folded lines and returns the logical content lines of text.
// Blank and whitespace-only lines are dropped. Malformed folding is not an error.
func Unfold(text string) []string {
	text = continuations.Replace(lineBreaks.Replace(text))

	physical := strings.Split(text, "\n")
	lines := make([]string, 0, len(physical))
	for _, line := range physical {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// FoldLine splits a logical line into physical lines: the first holds up to 75
// characters, each continuation a single space followed by up to 74 characters.
// Lengths are counted in characters (runes), not octets.
func FoldLine(line string) []string {
	runes := []rune(line)
	if len(runes) <= config.VCardFoldLimit {
		return []string{line}
	}

	chunks := []string{string(runes[:config.VCardFoldLimit])}
	for rest := runes[config.VCardFoldLimit:]; len(rest) > 0; {
		n := min(len(rest), config.VCardFoldContLimit)
		chunks = append(chunks, config.VCardFoldPrefix+string(rest[:n]))
		rest = rest[n:]
	}
	return chunks
}

// Fold is FoldLine joined with CRLF.
func Fold(line string) string {
	return strings.Join(FoldLine(line), config.VCardLineEnding)
}
