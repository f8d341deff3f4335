package vcf_test

import (
	"strings"
	"time"

	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestGenerator() *vcf.Generator {
	return &vcf.Generator{
		Clock:  MockClock{CurrentTime: fixedTime},
		NewUID: func() string { return "00000000-0000-4000-8000-000000000001" },
	}
}

// physicalLines splits a generated document, dropping the empty tail left by the
// final CRLF.
func physicalLines(doc string) []string {
	return strings.Split(strings.TrimSuffix(doc, "\r\n"), "\r\n")
}

// fullRecord exercises every field the generator emits, with values that
// survive a 3.0/4.0 round trip exactly.
func fullRecord() *vcf.Record {
	return &vcf.Record{
		FirstName:   "Jane",
		LastName:    "O;Connor",
		MiddleName:  "Q",
		Prefix:      "Dr.",
		Suffix:      "PhD",
		Nickname:    "JJ",
		Photo:       "https://example.com/photo.jpg",
		Birthday:    "1990-04-15",
		Anniversary: "2015-06-20",
		Gender:      vcf.GenderFemale,

		Organization: "Acme, Inc.",
		Department:   "R&D",
		Title:        "CTO; founder",
		Role:         "Engineering",
		Logo:         "https://example.com/logo.png",

		Emails: []vcf.Email{
			{Type: vcf.EmailWork, Value: "jane@acme.test"},
			{Type: vcf.EmailHome, Value: "jane@home.test"},
		},
		Phones: []vcf.Phone{
			{Type: vcf.PhoneCell, Value: "+33 6 12 34 56 78"},
			{Type: vcf.PhoneWork, Value: "+1 555 0100"},
			{Type: vcf.PhoneFax, Value: "+1 555 0199"},
		},
		IMPPs: []vcf.IMPP{
			{Type: vcf.IMPPTelegram, Value: "@jane"},
			{Type: vcf.IMPPOther, Value: "xmpp:jane@jabber.test"},
		},
		Addresses: []vcf.Address{{
			Type:            vcf.AddressHome,
			Street:          "1 Rue de la Paix",
			City:            "Paris",
			State:           "IDF",
			PostalCode:      "75002",
			Country:         "France",
			ExtendedAddress: "Apt 4",
		}},
		URLs: []vcf.URL{
			{Type: vcf.URLWork, Value: "https://acme.test"},
			{Type: vcf.URLBlog, Value: "https://jane.blog"},
		},

		Geo:      "48.8566,2.3522",
		Timezone: "Europe/Paris",

		Categories: "friends, work",
		Note:       "Line1\nLine2 with a much longer tail so that the NOTE property has to be folded at least once",

		Prodid:             "-//Go VCF Edit//Codec//EN",
		Rev:                "20250102T030405Z",
		UID:                "urn:uuid:4f0c5e2a-7d1b-4c3e-9a55-0b6f2d9e8c11",
		CalendarURI:        "https://cal.test/jane",
		CalendarAddressURI: "mailto:jane@acme.test",
		FreeBusyURL:        "https://cal.test/jane/freebusy",
		PublicKey:          "https://keys.test/jane.asc",

		Related:   []vcf.Related{{Type: vcf.RelatedSpouse, Value: "John Doe"}},
		Languages: "en, fr",

		CustomFields: []vcf.CustomField{{Key: "X-TWITTER", Value: "@jane"}},
	}
}
