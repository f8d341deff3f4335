package vcf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/go-vcfedit/internal/config"
)

var (
	// ErrReadFailed is returned by Decode when the input cannot be read.
	ErrReadFailed = errors.New(config.ErrReadFailed)

	// ErrNotText is returned by Decode when the input is not UTF-8 text.
	ErrNotText = errors.New(config.ErrNotText)
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// property is one logical content line split into its parts.
// Params is the upper-cased parameter segment (everything after the name).
type property struct {
	Name   string
	Params string
	Value  string
}

type propertyHandler func(r *Record, p property)

// propertyHandlers maps an upper-cased property name to the handler filling the
// record. It is never written after package initialisation.
var propertyHandlers = map[string]propertyHandler{
	config.PropN:           parseName,
	config.PropNickname:    func(r *Record, p property) { r.Nickname = Unescape(p.Value) },
	config.PropPhoto:       func(r *Record, p property) { r.Photo = p.Value },
	config.PropBday:        func(r *Record, p property) { r.Birthday = DateFromVCF(p.Value) },
	config.PropAnniversary: func(r *Record, p property) { r.Anniversary = DateFromVCF(p.Value) },
	config.PropGender:      parseGender,
	config.PropOrg:         parseOrg,
	config.PropTitle:       func(r *Record, p property) { r.Title = Unescape(p.Value) },
	config.PropRole:        func(r *Record, p property) { r.Role = Unescape(p.Value) },
	config.PropLogo:        func(r *Record, p property) { r.Logo = p.Value },
	config.PropEmail:       parseEmail,
	config.PropTel:         parseTel,
	config.PropIMPP:        parseIMPP,
	config.PropAdr:         parseAdr,
	config.PropURL:         parseURL,
	config.PropGeo:         parseGeo,
	config.PropTZ:          func(r *Record, p property) { r.Timezone = p.Value },
	config.PropCategories:  func(r *Record, p property) { r.Categories = Unescape(p.Value) },
	config.PropNote:        func(r *Record, p property) { r.Note = Unescape(p.Value) },
	config.PropProdid:      func(r *Record, p property) { r.Prodid = p.Value },
	config.PropRev:         func(r *Record, p property) { r.Rev = p.Value },
	config.PropUID:         func(r *Record, p property) { r.UID = p.Value },
	config.PropCalURI:      func(r *Record, p property) { r.CalendarURI = p.Value },
	config.PropCalAdrURI:   func(r *Record, p property) { r.CalendarAddressURI = p.Value },
	config.PropFBURL:       func(r *Record, p property) { r.FreeBusyURL = p.Value },
	config.PropKey:         func(r *Record, p property) { r.PublicKey = p.Value },
	config.PropRelated:     parseRelated,
	config.PropLang:        parseLang,
}

// Decode reads a whole VCF document from rd and parses it.
// It fails only when the input cannot be read or is not UTF-8 text; no partial
// record is returned in that case.
func Decode(rd io.Reader) (*Record, error) {
	text, err := ReadText(rd)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// ReadText reads rd fully and returns its content as a string, dropping a
// leading byte order mark.
func ReadText(rd io.Reader) (string, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

// Parse turns VCF text into a Record. It never fails: unknown properties are
// dropped, missing components default to empty strings.
func Parse(text string) *Record {
	return ParseLines(Unfold(text))
}

// ParseLines fills a fresh Record from unfolded content lines. Repeated
// properties are appended in input order.
func ParseLines(lines []string) *Record {
	r := &Record{
		Emails:       []Email{},
		Phones:       []Phone{},
		IMPPs:        []IMPP{},
		Addresses:    []Address{},
		URLs:         []URL{},
		Related:      []Related{},
		CustomFields: []CustomField{},
	}

	for _, line := range lines {
		p, ok := splitLine(line)
		if !ok {
			slog.Debug(config.MsgNoColon,
				config.LogKeyComponent, config.CompCodec,
				config.LogKeyValue, line)
			continue
		}

		if handle, found := propertyHandlers[p.Name]; found {
			handle(r, p)
			continue
		}

		if strings.HasPrefix(p.Name, config.VCardCustomPrefix) {
			r.CustomFields = append(r.CustomFields, CustomField{Key: p.Name, Value: Unescape(p.Value)})
			continue
		}

		slog.Debug(config.MsgDroppedProp,
			config.LogKeyComponent, config.CompCodec,
			config.LogKeyProperty, p.Name)
	}

	r.seedPlaceholders()
	return r
}

// splitLine separates "NAME;PARAMS:value" at the first colon.
func splitLine(line string) (property, bool) {
	namePart, value, found := strings.Cut(line, ":")
	if !found {
		return property{}, false
	}
	name, params, _ := strings.Cut(namePart, ";")
	return property{
		Name:   strings.ToUpper(name),
		Params: strings.ToUpper(params),
		Value:  strings.TrimSpace(value),
	}, true
}

func parseName(r *Record, p property) {
	parts := splitStructured(p.Value)
	r.LastName = component(parts, 0)
	r.FirstName = component(parts, 1)
	r.MiddleName = component(parts, 2)
	r.Prefix = component(parts, 3)
	r.Suffix = component(parts, 4)
}

func parseGender(r *Record, p property) {
	r.Gender = genderCode(p.Value)
}

func parseOrg(r *Record, p property) {
	parts := splitStructured(p.Value)
	r.Organization = component(parts, 0)

	units := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		units = append(units, Unescape(parts[i]))
	}
	r.Department = strings.Join(units, ", ")
}

func parseEmail(r *Record, p property) {
	r.Emails = append(r.Emails, Email{Type: ClassifyEmail(p.Params), Value: Unescape(p.Value)})
}

func parseTel(r *Record, p property) {
	r.Phones = append(r.Phones, Phone{Type: ClassifyPhone(p.Params), Value: Unescape(p.Value)})
}

// parseIMPP drops the "<service>:" scheme the generator adds, so that a handle
// survives a round trip unchanged.
func parseIMPP(r *Record, p property) {
	kind := ClassifyIMPP(p.Params, p.Value)
	value := Unescape(p.Value)
	if kind != IMPPOther {
		scheme := string(kind) + ":"
		if len(value) > len(scheme) && strings.EqualFold(value[:len(scheme)], scheme) {
			value = value[len(scheme):]
		}
	}
	r.IMPPs = append(r.IMPPs, IMPP{Type: kind, Value: value})
}

func parseAdr(r *Record, p property) {
	parts := splitStructured(p.Value)
	r.Addresses = append(r.Addresses, Address{
		Type:            ClassifyAddress(p.Params),
		POBox:           component(parts, 0),
		ExtendedAddress: component(parts, 1),
		Street:          component(parts, 2),
		City:            component(parts, 3),
		State:           component(parts, 4),
		PostalCode:      component(parts, 5),
		Country:         component(parts, 6),
	})
}

func parseURL(r *Record, p property) {
	r.URLs = append(r.URLs, URL{Type: ClassifyURL(p.Params), Value: Unescape(p.Value)})
}

// parseGeo accepts both the 4.0 "geo:lat,lng" URI and the 3.0 "lat;lng" pair.
func parseGeo(r *Record, p property) {
	value := p.Value
	if len(value) >= len(config.VCardGeoScheme) && strings.EqualFold(value[:len(config.VCardGeoScheme)], config.VCardGeoScheme) {
		value = value[len(config.VCardGeoScheme):]
	}
	r.Geo = strings.Replace(value, ";", ",", 1)
}

func parseRelated(r *Record, p property) {
	r.Related = append(r.Related, Related{Type: ClassifyRelated(p.Params), Value: Unescape(p.Value)})
}

func parseLang(r *Record, p property) {
	if r.Languages == "" {
		r.Languages = p.Value
		return
	}
	r.Languages += ", " + p.Value
}
