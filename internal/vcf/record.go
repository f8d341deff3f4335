// Package vcf converts contact records to and from the vCard text format
// (versions 2.1, 3.0 and 4.0).
//
// Parse and Generate are pure functions of their inputs: every call allocates its
// own Record and the keyword tables they consult are read-only, so both are safe
// for concurrent use without coordination.
package vcf

import (
	"slices"
	"strings"
)

// PhoneType classifies a TEL entry.
type PhoneType string

const (
	PhoneHome  PhoneType = "home"
	PhoneWork  PhoneType = "work"
	PhoneCell  PhoneType = "cell"
	PhoneFax   PhoneType = "fax"
	PhonePager PhoneType = "pager"
	PhoneOther PhoneType = "other"
)

// EmailType classifies an EMAIL entry.
type EmailType string

const (
	EmailHome  EmailType = "home"
	EmailWork  EmailType = "work"
	EmailOther EmailType = "other"
)

// AddressType classifies an ADR entry.
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// URLType classifies a URL entry.
type URLType string

const (
	URLHomepage URLType = "homepage"
	URLWork     URLType = "work"
	URLBlog     URLType = "blog"
	URLProfile  URLType = "profile"
	URLOther    URLType = "other"
)

// IMPPType names the messaging service of an IMPP entry.
type IMPPType string

const (
	IMPPTelegram IMPPType = "telegram"
	IMPPWhatsApp IMPPType = "whatsapp"
	IMPPSignal   IMPPType = "signal"
	IMPPDiscord  IMPPType = "discord"
	IMPPMatrix   IMPPType = "matrix"
	IMPPMastodon IMPPType = "mastodon"
	IMPPBluesky  IMPPType = "bluesky"
	IMPPOther    IMPPType = "other"
)

// RelatedType classifies a RELATED entry.
type RelatedType string

const (
	RelatedSpouse    RelatedType = "spouse"
	RelatedChild     RelatedType = "child"
	RelatedParent    RelatedType = "parent"
	RelatedSibling   RelatedType = "sibling"
	RelatedFriend    RelatedType = "friend"
	RelatedColleague RelatedType = "colleague"
	RelatedAssistant RelatedType = "assistant"
	RelatedEmergency RelatedType = "emergency"
	RelatedOther     RelatedType = "other"
)

// Gender is the single-letter sex component of GENDER.
type Gender string

const (
	GenderUnset   Gender = ""
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderOther   Gender = "O"
	GenderNone    Gender = "N"
	GenderUnknown Gender = "U"
)

// Valid reports whether g is one of the known gender codes (empty included).
func (g Gender) Valid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale, GenderOther, GenderNone, GenderUnknown:
		return true
	}
	return false
}

// Phone is one TEL entry.
type Phone struct {
	Type  PhoneType `json:"type"`
	Value string    `json:"value"`
}

// Email is one EMAIL entry.
type Email struct {
	Type  EmailType `json:"type"`
	Value string    `json:"value"`
}

// URL is one URL entry.
type URL struct {
	Type  URLType `json:"type"`
	Value string  `json:"value"`
}

// IMPP is one instant messaging handle.
type IMPP struct {
	Type  IMPPType `json:"type"`
	Value string   `json:"value"`
}

// Related is one related person.
type Related struct {
	Type  RelatedType `json:"type"`
	Value string      `json:"value"`
}

// Address is one structured ADR entry.
type Address struct {
	Type            AddressType `json:"type"`
	Street          string      `json:"street"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	PostalCode      string      `json:"postalCode"`
	Country         string      `json:"country"`
	POBox           string      `json:"poBox"`
	ExtendedAddress string      `json:"extendedAddress"`
}

// HasContent reports whether the address carries anything worth emitting.
// PO box and extended address alone do not count.
func (a Address) HasContent() bool {
	return a.Street != "" || a.City != "" || a.State != "" || a.PostalCode != "" || a.Country != ""
}

// CustomField is an X- property kept verbatim.
type CustomField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is the editable, in-memory form of one contact.
// Dates are ISO (YYYY-MM-DD) or empty. Languages and Categories are comma-joined.
type Record struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	MiddleName  string `json:"middleName"`
	Prefix      string `json:"prefix"`
	Suffix      string `json:"suffix"`
	Nickname    string `json:"nickname"`
	Photo       string `json:"photo"`
	Birthday    string `json:"birthday"`
	Anniversary string `json:"anniversary"`
	Gender      Gender `json:"gender"`

	Organization string `json:"organization"`
	Department   string `json:"department"`
	Title        string `json:"title"`
	Role         string `json:"role"`
	Logo         string `json:"logo"`

	Emails    []Email   `json:"emails"`
	Phones    []Phone   `json:"phones"`
	IMPPs     []IMPP    `json:"impps"`
	Addresses []Address `json:"addresses"`
	URLs      []URL     `json:"urls"`

	Geo      string `json:"geo"`
	Timezone string `json:"timezone"`

	Categories string `json:"categories"`
	Note       string `json:"note"`

	Prodid             string `json:"prodid"`
	Rev                string `json:"rev"`
	UID                string `json:"uid"`
	CalendarURI        string `json:"calendarUri"`
	CalendarAddressURI string `json:"calendarAddressUri"`
	FreeBusyURL        string `json:"freeBusyUrl"`
	PublicKey          string `json:"publicKey"`

	Related   []Related `json:"related"`
	Languages string    `json:"languages"`

	CustomFields []CustomField `json:"customFields"`
}

// NewRecord returns a blank record with one placeholder row in each of the
// editable lists (email, phone, address, url). Every call returns fresh slices.
func NewRecord() *Record {
	r := &Record{
		IMPPs:        []IMPP{},
		Related:      []Related{},
		CustomFields: []CustomField{},
	}
	r.seedPlaceholders()
	return r
}

// seedPlaceholders gives each empty editable list exactly one blank row.
// IMPP and related entries are never seeded.
func (r *Record) seedPlaceholders() {
	if len(r.Emails) == 0 {
		r.Emails = []Email{{Type: EmailHome}}
	}
	if len(r.Phones) == 0 {
		r.Phones = []Phone{{Type: PhoneCell}}
	}
	if len(r.Addresses) == 0 {
		r.Addresses = []Address{{Type: AddressHome}}
	}
	if len(r.URLs) == 0 {
		r.URLs = []URL{{Type: URLHomepage}}
	}
}

// FullName joins the non-empty name parts in display order.
func (r *Record) FullName() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{r.Prefix, r.FirstName, r.MiddleName, r.LastName, r.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	c.Emails = slices.Clone(r.Emails)
	c.Phones = slices.Clone(r.Phones)
	c.IMPPs = slices.Clone(r.IMPPs)
	c.Addresses = slices.Clone(r.Addresses)
	c.URLs = slices.Clone(r.URLs)
	c.Related = slices.Clone(r.Related)
	c.CustomFields = slices.Clone(r.CustomFields)
	return &c
}

// IsEmpty reports whether the record holds no user content. Placeholder rows and
// the metadata fields (prodid, rev, uid) are ignored.
func (r *Record) IsEmpty() bool {
	scalars := []string{
		r.FirstName, r.LastName, r.MiddleName, r.Prefix, r.Suffix, r.Nickname,
		r.Photo, r.Birthday, r.Anniversary, string(r.Gender),
		r.Organization, r.Department, r.Title, r.Role, r.Logo,
		r.Geo, r.Timezone, r.Categories, r.Note,
		r.CalendarURI, r.CalendarAddressURI, r.FreeBusyURL, r.PublicKey, r.Languages,
	}
	for _, s := range scalars {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	for _, e := range r.Emails {
		if e.Value != "" {
			return false
		}
	}
	for _, p := range r.Phones {
		if p.Value != "" {
			return false
		}
	}
	for _, i := range r.IMPPs {
		if i.Value != "" {
			return false
		}
	}
	for _, u := range r.URLs {
		if u.Value != "" {
			return false
		}
	}
	for _, rel := range r.Related {
		if rel.Value != "" {
			return false
		}
	}
	for _, a := range r.Addresses {
		if a.HasContent() {
			return false
		}
	}
	for _, f := range r.CustomFields {
		if f.Key != "" && f.Value != "" {
			return false
		}
	}
	return true
}
