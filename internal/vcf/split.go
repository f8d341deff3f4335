package vcf

import (
	"strings"

	"github.com/tartampluch/go-vcfedit/internal/config"
)

// Split cuts a document holding several cards (an address book export) into one
// text per BEGIN:VCARD..END:VCARD block. Lines outside a block are ignored. A
// block missing its END line is kept, ending where the next one begins.
func Split(text string) []string {
	var (
		cards   []string
		current strings.Builder
		inCard  bool
	)

	for _, line := range Unfold(text) {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case upper == config.VCardBegin:
			if inCard {
				cards = append(cards, current.String())
			}
			inCard = true
			current.Reset()
		case !inCard:
			continue
		}

		current.WriteString(line)
		current.WriteString(config.VCardLineEnding)

		if upper == config.VCardEnd {
			cards = append(cards, current.String())
			inCard = false
		}
	}

	if inCard && current.Len() > 0 {
		cards = append(cards, current.String())
	}
	return cards
}
