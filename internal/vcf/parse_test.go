package vcf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func TestParse_Simple(t *testing.T) {
	doc := "BEGIN:VCARD\r\nVERSION:4.0\r\nN:Doe;John;;;\r\nFN:John Doe\r\nEMAIL;TYPE=work:john@x.com\r\nEND:VCARD"

	r := vcf.Parse(doc)

	assert.Equal(t, "John", r.FirstName)
	assert.Equal(t, "Doe", r.LastName)
	assert.Equal(t, []vcf.Email{{Type: vcf.EmailWork, Value: "john@x.com"}}, r.Emails)
	assert.Equal(t, []vcf.Phone{{Type: vcf.PhoneCell}}, r.Phones)
	assert.Equal(t, []vcf.Address{{Type: vcf.AddressHome}}, r.Addresses)
	assert.Equal(t, []vcf.URL{{Type: vcf.URLHomepage}}, r.URLs)
}

func TestParse_SeedsPlaceholders(t *testing.T) {
	r := vcf.Parse("BEGIN:VCARD\r\nN:Solo;;;;\r\nEND:VCARD\r\n")

	assert.Equal(t, []vcf.Email{{Type: vcf.EmailHome}}, r.Emails)
	assert.Equal(t, []vcf.Phone{{Type: vcf.PhoneCell}}, r.Phones)
	assert.Equal(t, []vcf.Address{{Type: vcf.AddressHome}}, r.Addresses)
	assert.Equal(t, []vcf.URL{{Type: vcf.URLHomepage}}, r.URLs)
	assert.NotNil(t, r.IMPPs)
	assert.Empty(t, r.IMPPs, "IMPP is never seeded")
	assert.Empty(t, r.Related, "RELATED is never seeded")
	assert.Empty(t, r.CustomFields)
}

func TestParse_EmptyInput(t *testing.T) {
	r := vcf.Parse("")

	assert.True(t, r.IsEmpty())
	assert.Len(t, r.Emails, 1)
}

func TestParse_EscapedNewlineInNote(t *testing.T) {
	r := vcf.Parse("BEGIN:VCARD\r\nNOTE:Line1\\nLine2\r\nEND:VCARD\r\n")
	assert.Equal(t, "Line1\nLine2", r.Note)
}

func TestParse_FoldedLines(t *testing.T) {
	doc := "BEGIN:VCARD\nNOTE:This is a lo\n ng note\nTITLE:Chief\n\tExecutive\nEND:VCARD\n"

	r := vcf.Parse(doc)

	assert.Equal(t, "This is a long note", r.Note)
	assert.Equal(t, "ChiefExecutive", r.Title)
}

func TestParse_StructuredValues(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, r *vcf.Record)
	}{
		{
			name: "Short N",
			line: "N:Doe",
			check: func(t *testing.T, r *vcf.Record) {
				assert.Equal(t, "Doe", r.LastName)
				assert.Empty(t, r.FirstName)
				assert.Empty(t, r.Suffix)
			},
		},
		{
			name: "Escaped semicolon in N",
			line: `N:O\;Brien;Pat;;Mr.;Jr.`,
			check: func(t *testing.T, r *vcf.Record) {
				assert.Equal(t, "O;Brien", r.LastName)
				assert.Equal(t, "Pat", r.FirstName)
				assert.Equal(t, "Mr.", r.Prefix)
				assert.Equal(t, "Jr.", r.Suffix)
			},
		},
		{
			name: "ORG with several units",
			line: "ORG:Acme;R&D;Lab 3",
			check: func(t *testing.T, r *vcf.Record) {
				assert.Equal(t, "Acme", r.Organization)
				assert.Equal(t, "R&D, Lab 3", r.Department)
			},
		},
		{
			name: "ORG with escaped comma",
			line: `ORG:Acme\, Inc.`,
			check: func(t *testing.T, r *vcf.Record) {
				assert.Equal(t, "Acme, Inc.", r.Organization)
				assert.Empty(t, r.Department)
			},
		},
		{
			name: "ADR components",
			line: "ADR;TYPE=work:PO 12;Suite 5;1 Main St;Springfield;IL;62701;USA",
			check: func(t *testing.T, r *vcf.Record) {
				require.Len(t, r.Addresses, 1)
				assert.Equal(t, vcf.Address{
					Type:            vcf.AddressWork,
					POBox:           "PO 12",
					ExtendedAddress: "Suite 5",
					Street:          "1 Main St",
					City:            "Springfield",
					State:           "IL",
					PostalCode:      "62701",
					Country:         "USA",
				}, r.Addresses[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, vcf.Parse("BEGIN:VCARD\r\n"+tt.line+"\r\nEND:VCARD\r\n"))
		})
	}
}

func TestParse_Gender(t *testing.T) {
	tests := []struct {
		line string
		want vcf.Gender
	}{
		{"GENDER:F", vcf.GenderFemale},
		{"GENDER:m;male", vcf.GenderMale},
		{"GENDER:O", vcf.GenderOther},
		{"GENDER:U", vcf.GenderUnknown},
		{"GENDER:X", vcf.GenderUnset},
		{"GENDER:", vcf.GenderUnset},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, vcf.Parse(tt.line).Gender)
		})
	}
}

func TestParse_Dates(t *testing.T) {
	r := vcf.Parse("BDAY:19900415\nANNIVERSARY:--0620\n")

	assert.Equal(t, "1990-04-15", r.Birthday)
	assert.Equal(t, "--0620", r.Anniversary, "truncated dates are kept verbatim")
}

func TestParse_Geo(t *testing.T) {
	assert.Equal(t, "48.85,2.35", vcf.Parse("GEO:geo:48.85,2.35").Geo)
	assert.Equal(t, "48.85,2.35", vcf.Parse("GEO:48.85;2.35").Geo)
	assert.Equal(t, "48.85,2.35", vcf.Parse("GEO:48.85,2.35").Geo)
}

func TestParse_IMPP(t *testing.T) {
	r := vcf.Parse("IMPP:telegram:@jane\nIMPP;X-SERVICE-TYPE=Signal:+33600000000\nIMPP:xmpp:jane@jabber.test\n")

	assert.Equal(t, []vcf.IMPP{
		{Type: vcf.IMPPTelegram, Value: "@jane"},
		{Type: vcf.IMPPSignal, Value: "+33600000000"},
		{Type: vcf.IMPPOther, Value: "xmpp:jane@jabber.test"},
	}, r.IMPPs)
}

func TestParse_RepeatedPropertiesKeepOrder(t *testing.T) {
	r := vcf.Parse("TEL;TYPE=HOME:1\nTEL;TYPE=WORK:2\nTEL:3\nLANG:en\nLANG:fr\nRELATED;TYPE=child:Ann\n")

	assert.Equal(t, []vcf.Phone{
		{Type: vcf.PhoneHome, Value: "1"},
		{Type: vcf.PhoneWork, Value: "2"},
		{Type: vcf.PhoneOther, Value: "3"},
	}, r.Phones)
	assert.Equal(t, "en, fr", r.Languages)
	assert.Equal(t, []vcf.Related{{Type: vcf.RelatedChild, Value: "Ann"}}, r.Related)
}

func TestParse_CustomAndUnknown(t *testing.T) {
	r := vcf.Parse("x-twitter;pref=1:@jane\nFOO:bar\nno colon here\nX-NOTE:a\\, b\n")

	assert.Equal(t, []vcf.CustomField{
		{Key: "X-TWITTER", Value: "@jane"},
		{Key: "X-NOTE", Value: "a, b"},
	}, r.CustomFields)
}

func TestParse_Version21Params(t *testing.T) {
	r := vcf.Parse("BEGIN:VCARD\r\nVERSION:2.1\r\nN:Doe;John\r\nTEL;CELL:123\r\nEMAIL;INTERNET;WORK:j@x.com\r\nEND:VCARD\r\n")

	assert.Equal(t, []vcf.Phone{{Type: vcf.PhoneCell, Value: "123"}}, r.Phones)
	assert.Equal(t, []vcf.Email{{Type: vcf.EmailWork, Value: "j@x.com"}}, r.Emails)
}

func TestParse_FreshRecordEachCall(t *testing.T) {
	doc := "EMAIL;TYPE=work:a@b.c\n"

	first := vcf.Parse(doc)
	first.Emails[0].Value = "changed"
	second := vcf.Parse(doc)

	assert.Equal(t, "a@b.c", second.Emails[0].Value)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestDecode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, err := vcf.Decode(strings.NewReader("BEGIN:VCARD\r\nN:Doe;John;;;\r\nEND:VCARD\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "John", r.FirstName)
	})

	t.Run("Byte order mark", func(t *testing.T) {
		r, err := vcf.Decode(strings.NewReader("\uFEFFN:Doe;John;;;\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "Doe", r.LastName)
	})

	t.Run("Read failure", func(t *testing.T) {
		r, err := vcf.Decode(failingReader{})
		assert.ErrorIs(t, err, vcf.ErrReadFailed)
		assert.Nil(t, r)
	})

	t.Run("Not text", func(t *testing.T) {
		r, err := vcf.Decode(strings.NewReader("N:\xff\xfe\x00"))
		assert.ErrorIs(t, err, vcf.ErrNotText)
		assert.Nil(t, r)
	})
}
