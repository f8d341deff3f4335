package vcf

import "strings"

// keyword maps a parameter substring to the type it selects.
type keyword[T ~string] struct {
	match string
	kind  T
}

// Tables are scanned in order; the first keyword contained in the haystack wins.
// Matching is substring containment, so "TYPE=HOMEWORK" resolves to the first of
// WORK/HOME listed in the table.
var (
	phoneKeywords = []keyword[PhoneType]{
		{"CELL", PhoneCell},
		{"MOBILE", PhoneCell},
		{"FAX", PhoneFax},
		{"PAGER", PhonePager},
		{"WORK", PhoneWork},
		{"HOME", PhoneHome},
	}

	emailKeywords = []keyword[EmailType]{
		{"WORK", EmailWork},
		{"HOME", EmailHome},
		{"OTHER", EmailOther},
	}

	addressKeywords = []keyword[AddressType]{
		{"WORK", AddressWork},
		{"HOME", AddressHome},
		{"OTHER", AddressOther},
	}

	urlKeywords = []keyword[URLType]{
		{"WORK", URLWork},
		{"BLOG", URLBlog},
		{"PROFILE", URLProfile},
	}

	imppKeywords = []keyword[IMPPType]{
		{"TELEGRAM", IMPPTelegram},
		{"WHATSAPP", IMPPWhatsApp},
		{"SIGNAL", IMPPSignal},
		{"DISCORD", IMPPDiscord},
		{"MATRIX", IMPPMatrix},
		{"MASTODON", IMPPMastodon},
		{"BLUESKY", IMPPBluesky},
	}

	relatedKeywords = []keyword[RelatedType]{
		{"SPOUSE", RelatedSpouse},
		{"CHILD", RelatedChild},
		{"PARENT", RelatedParent},
		{"SIBLING", RelatedSibling},
		{"FRIEND", RelatedFriend},
		{"COLLEAGUE", RelatedColleague},
		{"ASSISTANT", RelatedAssistant},
		{"EMERGENCY", RelatedEmergency},
	}
)

func classify[T ~string](haystack string, table []keyword[T], fallback T) T {
	haystack = strings.ToUpper(haystack)
	for _, k := range table {
		if strings.Contains(haystack, k.match) {
			return k.kind
		}
	}
	return fallback
}

// ClassifyPhone infers the phone type from the parameters of a TEL line.
func ClassifyPhone(params string) PhoneType {
	return classify(params, phoneKeywords, PhoneOther)
}

// ClassifyEmail infers the email type from the parameters of an EMAIL line.
func ClassifyEmail(params string) EmailType {
	return classify(params, emailKeywords, EmailOther)
}

// ClassifyAddress infers the address type from the parameters of an ADR line.
func ClassifyAddress(params string) AddressType {
	return classify(params, addressKeywords, AddressOther)
}

// ClassifyURL infers the URL type from the parameters of a URL line.
func ClassifyURL(params string) URLType {
	return classify(params, urlKeywords, URLHomepage)
}

// ClassifyIMPP infers the messaging service from the parameters and the value,
// since services are usually named by the URI scheme.
func ClassifyIMPP(params, value string) IMPPType {
	return classify(params+value, imppKeywords, IMPPOther)
}

// ClassifyRelated infers the relationship from the parameters of a RELATED line.
func ClassifyRelated(params string) RelatedType {
	return classify(params, relatedKeywords, RelatedOther)
}
