package vcf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-vcfedit/internal/config"
)

// ErrMalformed wraps every structural problem reported by Validate.
var ErrMalformed = errors.New(config.ErrMalformed)

// Validate decodes the first card of text with an independent vCard decoder and
// checks the properties each version requires: FN for 3.0 and 4.0, N for 2.1
// and 3.0. It is meant for documents produced by Generate or handed to other
// tools, not for import, which stays tolerant.
func Validate(text string) error {
	card, err := vcard.NewDecoder(strings.NewReader(text)).Decode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	version := card.Value(vcard.FieldVersion)
	if version == "" {
		return fmt.Errorf("%w: %s", ErrMalformed, config.ErrMissingVersion)
	}
	v, err := ParseVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if v != V21 && card.Get(vcard.FieldFormattedName) == nil {
		return fmt.Errorf("%w: %s", ErrMalformed, config.ErrMissingFN)
	}
	if v != V40 && card.Get(vcard.FieldName) == nil {
		return fmt.Errorf("%w: %s", ErrMalformed, config.ErrMissingN)
	}
	return nil
}
