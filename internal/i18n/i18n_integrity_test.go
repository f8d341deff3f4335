package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/lint"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// requiredKeys lists every key the command line may ask for.
func requiredKeys() []string {
	keys := []string{
		config.TKeyLblName, config.TKeyLblNickname, config.TKeyLblBirthday,
		config.TKeyLblAnniversary, config.TKeyLblGender, config.TKeyLblOrganization,
		config.TKeyLblTitle, config.TKeyLblRole, config.TKeyLblEmail,
		config.TKeyLblPhone, config.TKeyLblIMPP, config.TKeyLblAddress,
		config.TKeyLblURL, config.TKeyLblRelated, config.TKeyLblLanguages,
		config.TKeyLblTimezone, config.TKeyLblGeo, config.TKeyLblCategories,
		config.TKeyLblNote, config.TKeyLblCustom,
		config.TKeyEvtBirthday, config.TKeyEvtAnniversary,
		config.TKeyQRUsage, config.TKeyQRExceeded, config.TKeyQRApproaching,
		config.TKeyLintClean, config.TKeyValidOK, config.TKeyImported,
		config.TKeyUpcoming, config.TKeyAgeNext,
		config.TKeyGenderUnset,
	}

	add := func(prefix string, values ...string) {
		for _, v := range values {
			keys = append(keys, prefix+v)
		}
	}
	add(config.TKeyPrefixPhone, "home", "work", "cell", "fax", "pager", "other")
	add(config.TKeyPrefixEmail, "home", "work", "other")
	add(config.TKeyPrefixAddress, "home", "work", "other")
	add(config.TKeyPrefixURL, "homepage", "work", "blog", "profile", "other")
	add(config.TKeyPrefixIMPP, "telegram", "whatsapp", "signal", "discord", "matrix", "mastodon", "bluesky", "other")
	add(config.TKeyPrefixRelated, "spouse", "child", "parent", "sibling", "friend", "colleague", "assistant", "emergency", "other")
	add(config.TKeyPrefixGender, "m", "f", "o", "n", "u")
	for _, c := range lint.Codes {
		keys = append(keys, config.TKeyPrefixLint+string(c))
	}
	return keys
}

// TestI18nIntegrity ensures every embedded locale defines every required key.
func TestI18nIntegrity(t *testing.T) {
	entries, err := localeFS.ReadDir(localeDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			content, err := localeFS.ReadFile(localeDir + "/" + entry.Name())
			require.NoError(t, err)

			var messages map[string]string
			require.NoError(t, json.Unmarshal(content, &messages), "locale must be a flat JSON object")

			for _, key := range requiredKeys() {
				assert.NotEmpty(t, messages[key], "missing key %q", key)
			}
		})
	}
}

// TestEnumLabelsMatchRecordValues guards against a vcf constant drifting from
// its label key.
func TestEnumLabelsMatchRecordValues(t *testing.T) {
	tr := New(config.DefaultLanguage)

	assert.NotEqual(t, config.TKeyPrefixPhone+string(vcf.PhoneCell), tr.Label(config.TKeyPrefixPhone, string(vcf.PhoneCell)))
	assert.NotEqual(t, config.TKeyPrefixURL+string(vcf.URLHomepage), tr.Label(config.TKeyPrefixURL, string(vcf.URLHomepage)))
	assert.NotEqual(t, config.TKeyPrefixIMPP+string(vcf.IMPPBluesky), tr.Label(config.TKeyPrefixIMPP, string(vcf.IMPPBluesky)))
	assert.NotEqual(t, config.TKeyPrefixRelated+string(vcf.RelatedEmergency), tr.Label(config.TKeyPrefixRelated, string(vcf.RelatedEmergency)))
	assert.NotEqual(t, config.TKeyPrefixGender+"u", tr.Label(config.TKeyPrefixGender, string(vcf.GenderUnknown)))
}
