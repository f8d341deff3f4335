package vcf

import "strings"

var (
	phoneTypes   = []PhoneType{PhoneHome, PhoneWork, PhoneCell, PhoneFax, PhonePager, PhoneOther}
	emailTypes   = []EmailType{EmailHome, EmailWork, EmailOther}
	addressTypes = []AddressType{AddressHome, AddressWork, AddressOther}
	urlTypes     = []URLType{URLHomepage, URLWork, URLBlog, URLProfile, URLOther}
	imppTypes    = []IMPPType{IMPPTelegram, IMPPWhatsApp, IMPPSignal, IMPPDiscord, IMPPMatrix, IMPPMastodon, IMPPBluesky, IMPPOther}
	relatedTypes = []RelatedType{RelatedSpouse, RelatedChild, RelatedParent, RelatedSibling, RelatedFriend, RelatedColleague, RelatedAssistant, RelatedEmergency, RelatedOther}
)

// matchKind returns the member of known equal to text, ignoring case and
// surrounding space, or fallback. Fallbacks are the classifier defaults.
func matchKind[T ~string](text string, known []T, fallback T) T {
	text = strings.TrimSpace(text)
	for _, k := range known {
		if strings.EqualFold(text, string(k)) {
			return k
		}
	}
	return fallback
}

// genderCode keeps the first character of s, upper-cased, when it is a known code.
func genderCode(s string) Gender {
	s = strings.TrimSpace(s)
	if s == "" {
		return GenderUnset
	}
	g := Gender(strings.ToUpper(s[:1]))
	if !g.Valid() {
		return GenderUnset
	}
	return g
}

func (t PhoneType) normalized() PhoneType     { return matchKind(string(t), phoneTypes, PhoneOther) }
func (t EmailType) normalized() EmailType     { return matchKind(string(t), emailTypes, EmailOther) }
func (t AddressType) normalized() AddressType { return matchKind(string(t), addressTypes, AddressOther) }
func (t URLType) normalized() URLType         { return matchKind(string(t), urlTypes, URLHomepage) }
func (t IMPPType) normalized() IMPPType       { return matchKind(string(t), imppTypes, IMPPOther) }
func (t RelatedType) normalized() RelatedType { return matchKind(string(t), relatedTypes, RelatedOther) }
func (g Gender) normalized() Gender           { return genderCode(string(g)) }

// UnmarshalText maps an unknown or empty type to PhoneOther.
func (t *PhoneType) UnmarshalText(b []byte) error {
	*t = PhoneType(b).normalized()
	return nil
}

// UnmarshalText maps an unknown or empty type to EmailOther.
func (t *EmailType) UnmarshalText(b []byte) error {
	*t = EmailType(b).normalized()
	return nil
}

// UnmarshalText maps an unknown or empty type to AddressOther.
func (t *AddressType) UnmarshalText(b []byte) error {
	*t = AddressType(b).normalized()
	return nil
}

// UnmarshalText maps an unknown or empty type to URLHomepage.
func (t *URLType) UnmarshalText(b []byte) error {
	*t = URLType(b).normalized()
	return nil
}

// UnmarshalText maps an unknown or empty service to IMPPOther.
func (t *IMPPType) UnmarshalText(b []byte) error {
	*t = IMPPType(b).normalized()
	return nil
}

// UnmarshalText maps an unknown or empty relationship to RelatedOther.
func (t *RelatedType) UnmarshalText(b []byte) error {
	*t = RelatedType(b).normalized()
	return nil
}

// UnmarshalText keeps the first character of a known code and clears anything else.
func (g *Gender) UnmarshalText(b []byte) error {
	*g = genderCode(string(b))
	return nil
}

// Normalize replaces every type outside its enum, empty ones included, with the
// classifier default. JSON decoding leaves absent type fields empty.
func (r *Record) Normalize() {
	r.Gender = r.Gender.normalized()
	for i := range r.Emails {
		r.Emails[i].Type = r.Emails[i].Type.normalized()
	}
	for i := range r.Phones {
		r.Phones[i].Type = r.Phones[i].Type.normalized()
	}
	for i := range r.Addresses {
		r.Addresses[i].Type = r.Addresses[i].Type.normalized()
	}
	for i := range r.URLs {
		r.URLs[i].Type = r.URLs[i].Type.normalized()
	}
	for i := range r.IMPPs {
		r.IMPPs[i].Type = r.IMPPs[i].Type.normalized()
	}
	for i := range r.Related {
		r.Related[i].Type = r.Related[i].Type.normalized()
	}
}
