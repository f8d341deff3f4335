package vcf_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func TestRecord_UnmarshalJSON_Types(t *testing.T) {
	input := `{
		"gender": "f",
		"emails": [{"type": "BOGUS;X=1", "value": "a@b.c"}, {"type": "WORK", "value": "w@b.c"}],
		"phones": [{"type": "", "value": "+1"}, {"type": "Fax", "value": "+2"}],
		"addresses": [{"type": "castle", "city": "Paris"}],
		"urls": [{"type": "blog", "value": "https://b.test"}, {"type": "x", "value": "https://x.test"}],
		"impps": [{"type": "SIGNAL", "value": "+3"}, {"type": "icq", "value": "42"}],
		"related": [{"type": "enemy", "value": "Bob"}]
	}`

	var r vcf.Record
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	assert.Equal(t, vcf.GenderFemale, r.Gender)
	assert.Equal(t, []vcf.Email{{Type: vcf.EmailOther, Value: "a@b.c"}, {Type: vcf.EmailWork, Value: "w@b.c"}}, r.Emails)
	assert.Equal(t, []vcf.Phone{{Type: vcf.PhoneOther, Value: "+1"}, {Type: vcf.PhoneFax, Value: "+2"}}, r.Phones)
	assert.Equal(t, vcf.AddressOther, r.Addresses[0].Type)
	assert.Equal(t, []vcf.URL{{Type: vcf.URLBlog, Value: "https://b.test"}, {Type: vcf.URLHomepage, Value: "https://x.test"}}, r.URLs)
	assert.Equal(t, []vcf.IMPP{{Type: vcf.IMPPSignal, Value: "+3"}, {Type: vcf.IMPPOther, Value: "42"}}, r.IMPPs)
	assert.Equal(t, vcf.RelatedOther, r.Related[0].Type)
}

func TestRecord_UnmarshalJSON_UnknownGender(t *testing.T) {
	var r vcf.Record
	require.NoError(t, json.Unmarshal([]byte(`{"gender": "zebra"}`), &r))

	assert.Equal(t, vcf.GenderUnset, r.Gender)
}

func TestRecord_Normalize(t *testing.T) {
	r := &vcf.Record{
		Gender:    "m",
		Emails:    []vcf.Email{{Value: "a@b.c"}},
		Phones:    []vcf.Phone{{Type: "CELL", Value: "+1"}, {Value: "+2"}},
		Addresses: []vcf.Address{{City: "Paris"}},
		URLs:      []vcf.URL{{Value: "https://x.test"}},
		IMPPs:     []vcf.IMPP{{Value: "h"}},
		Related:   []vcf.Related{{Type: "Spouse", Value: "Bob"}},
	}

	r.Normalize()

	assert.Equal(t, vcf.GenderMale, r.Gender)
	assert.Equal(t, vcf.EmailOther, r.Emails[0].Type)
	assert.Equal(t, vcf.PhoneCell, r.Phones[0].Type)
	assert.Equal(t, vcf.PhoneOther, r.Phones[1].Type)
	assert.Equal(t, vcf.AddressOther, r.Addresses[0].Type)
	assert.Equal(t, vcf.URLHomepage, r.URLs[0].Type)
	assert.Equal(t, vcf.IMPPOther, r.IMPPs[0].Type)
	assert.Equal(t, vcf.RelatedSpouse, r.Related[0].Type)
}

// TestRecord_JSONRoundTripKeepsTypes guards against UnmarshalText rewriting
// values that are already valid.
func TestRecord_JSONRoundTripKeepsTypes(t *testing.T) {
	original := fullRecord()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded vcf.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}
