package vcf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-vcfedit/internal/config"
)

// ErrInvalidVersion is returned by ParseVersion for anything but 2.1, 3.0 and 4.0.
var ErrInvalidVersion = errors.New(config.ErrInvalidVersion)

// Version is a target vCard version.
type Version string

const (
	V21 Version = config.VCardVersion21
	V30 Version = config.VCardVersion30
	V40 Version = config.VCardVersion40

	DefaultVersion = V40
)

// Versions lists the supported versions, oldest first.
var Versions = []Version{V21, V30, V40}

// Valid reports whether v is a supported version.
func (v Version) Valid() bool {
	return v == V21 || v == V30 || v == V40
}

// ParseVersion validates a user supplied version string.
func ParseVersion(s string) (Version, error) {
	v := Version(strings.TrimSpace(s))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}

// Generator serialises records. The zero value uses the real clock and random
// UUIDs; tests inject both.
type Generator struct {
	Clock  Clock
	NewUID func() string
}

var defaultGenerator = &Generator{}

// Generate serialises r as a VCF document of version v with the default Generator.
func Generate(r *Record, v Version) string {
	return defaultGenerator.Generate(r, v)
}

// Generate serialises r as a VCF document of version v. An unsupported version
// falls back to DefaultVersion. Lines are folded and joined with CRLF, and the
// document ends with a CRLF.
func (g *Generator) Generate(r *Record, v Version) string {
	if !v.Valid() {
		v = DefaultVersion
	}

	w := &cardWriter{version: v}
	w.add(config.PropBegin, "", "VCARD")
	w.add(config.PropVersion, "", string(v))

	fn := r.FullName()
	if fn == "" {
		fn = config.VCardUnnamed
	}
	w.add(config.PropFN, "", Escape(fn))
	w.add(config.PropN, "", joinEscaped(r.LastName, r.FirstName, r.MiddleName, r.Prefix, r.Suffix))

	w.addIf(config.PropNickname, "", Escape(r.Nickname))
	w.photo(r.Photo)
	w.addIf(config.PropBday, "", DateToVCF(r.Birthday))
	w.addIf(config.PropAnniversary, "", DateToVCF(r.Anniversary))
	w.addIf(config.PropGender, "", string(r.Gender.normalized()))

	if r.Organization != "" || r.Department != "" {
		org := Escape(r.Organization)
		if r.Department != "" {
			org += ";" + Escape(r.Department)
		}
		w.add(config.PropOrg, "", org)
	}
	w.addIf(config.PropTitle, "", Escape(r.Title))
	w.addIf(config.PropRole, "", Escape(r.Role))
	w.addIf(config.PropLogo, "", r.Logo)

	for _, e := range r.Emails {
		if e.Value != "" {
			w.add(config.PropEmail, w.emailType(e.Type.normalized()), Escape(e.Value))
		}
	}
	for _, p := range r.Phones {
		if p.Value != "" {
			w.add(config.PropTel, w.typeParam(string(p.Type.normalized())), Escape(p.Value))
		}
	}
	for _, im := range r.IMPPs {
		if im.Value != "" {
			w.add(config.PropIMPP, "", Escape(imppURI(im)))
		}
	}
	for _, a := range r.Addresses {
		if a.HasContent() {
			w.add(config.PropAdr, w.typeParam(string(a.Type.normalized())),
				joinEscaped(a.POBox, a.ExtendedAddress, a.Street, a.City, a.State, a.PostalCode, a.Country))
		}
	}
	for _, u := range r.URLs {
		if u.Value != "" {
			w.add(config.PropURL, w.typeParam(string(u.Type.normalized())), Escape(u.Value))
		}
	}

	if r.Geo != "" {
		if v == V40 {
			w.add(config.PropGeo, "", config.VCardGeoScheme+r.Geo)
		} else {
			w.add(config.PropGeo, "", strings.Replace(r.Geo, ",", ";", 1))
		}
	}
	w.addIf(config.PropTZ, "", r.Timezone)
	w.addIf(config.PropCategories, "", Escape(r.Categories))
	w.addIf(config.PropNote, "", Escape(r.Note))
	w.addIf(config.PropCalURI, "", r.CalendarURI)
	w.addIf(config.PropCalAdrURI, "", r.CalendarAddressURI)
	w.addIf(config.PropFBURL, "", r.FreeBusyURL)

	for _, rel := range r.Related {
		if rel.Value != "" {
			w.add(config.PropRelated, config.ParamType+string(rel.Type.normalized()), Escape(rel.Value))
		}
	}
	for _, lang := range strings.Split(r.Languages, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			w.add(config.PropLang, "", lang)
		}
	}
	w.addIf(config.PropKey, "", r.PublicKey)

	for _, f := range r.CustomFields {
		if f.Key != "" && f.Value != "" {
			w.add(f.Key, "", Escape(f.Value))
		}
	}

	uid := r.UID
	if uid == "" {
		uid = config.VCardUIDScheme + g.newUID()
	}
	w.add(config.PropUID, "", uid)
	w.add(config.PropRev, "", g.now())
	w.add(config.PropProdid, "", config.VCardProdid)
	w.add(config.PropEnd, "", "VCARD")

	return w.String()
}

func (g *Generator) now() string {
	var c Clock = RealClock{}
	if g.Clock != nil {
		c = g.Clock
	}
	return c.Now().UTC().Format(config.VCardRevFormat)
}

func (g *Generator) newUID() string {
	if g.NewUID != nil {
		return g.NewUID()
	}
	return uuid.NewString()
}

// rawBreaks strips line breaks from values that are not escaped (URIs, dates,
// zone names, custom keys) so that no value can start a content line of its own.
var rawBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// cardWriter accumulates folded output lines.
type cardWriter struct {
	version Version
	b       strings.Builder
}

func (w *cardWriter) add(name, params, value string) {
	line := name
	if params != "" {
		line += ";" + params
	}
	line += ":" + value

	w.b.WriteString(Fold(rawBreaks.Replace(line)))
	w.b.WriteString(config.VCardLineEnding)
}

func (w *cardWriter) addIf(name, params, value string) {
	if value != "" {
		w.add(name, params, value)
	}
}

// photo emits PHOTO as a URI when the value is a URL or data URI, and as inline
// base64 otherwise.
func (w *cardWriter) photo(photo string) {
	switch {
	case photo == "":
	case strings.HasPrefix(photo, "data:") || strings.HasPrefix(photo, "http"):
		if w.version == V40 {
			w.add(config.PropPhoto, "", photo)
		} else {
			w.add(config.PropPhoto, config.ParamValueURI, photo)
		}
	default:
		w.add(config.PropPhoto, config.ParamPhotoBinary, photo)
	}
}

// typeParam renders TYPE=<kind>, lower case for 4.0 and upper case before.
func (w *cardWriter) typeParam(kind string) string {
	if w.version == V40 {
		return config.ParamType + strings.ToLower(kind)
	}
	return config.ParamType + strings.ToUpper(kind)
}

// emailType renders the EMAIL type, prefixed with INTERNET before 4.0.
func (w *cardWriter) emailType(kind EmailType) string {
	if w.version == V40 {
		return config.ParamType + strings.ToLower(string(kind))
	}
	return config.ParamTypeInternet + strings.ToUpper(string(kind))
}

func (w *cardWriter) String() string {
	return w.b.String()
}

// imppURI prefixes the handle with its service scheme unless it already has it.
func imppURI(im IMPP) string {
	kind := im.Type.normalized()
	if kind == IMPPOther {
		return im.Value
	}
	scheme := string(kind) + ":"
	if len(im.Value) >= len(scheme) && strings.EqualFold(im.Value[:len(scheme)], scheme) {
		return im.Value
	}
	return scheme + im.Value
}

func joinEscaped(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = Escape(p)
	}
	return strings.Join(escaped, ";")
}
