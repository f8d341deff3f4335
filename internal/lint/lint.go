// Package lint reports values of a record that are well-formed vCard but
// unlikely to be what the user meant: unknown language tags, broken photo
// sources, out of range coordinates and the like. It never modifies the record.
package lint

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // IANA zones must resolve on hosts without zoneinfo.

	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/phone"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
	"golang.org/x/text/language"
)

// Code identifies the kind of problem.
type Code string

const (
	CodeGender             Code = "invalid_gender"
	CodeDate               Code = "invalid_date"
	CodeLanguage           Code = "invalid_language"
	CodeImage              Code = "invalid_image"
	CodeImageSize          Code = "image_too_large"
	CodeGeo                Code = "invalid_geo"
	CodeTimezone           Code = "invalid_timezone"
	CodeEmail              Code = "invalid_email"
	CodeMissingCountryCode Code = "missing_country_code"
)

// Codes lists every code, in the order Check may report them.
var Codes = []Code{
	CodeGender, CodeDate, CodeLanguage, CodeImage, CodeImageSize,
	CodeGeo, CodeTimezone, CodeEmail, CodeMissingCountryCode,
}

// Issue is one finding. Field uses the JSON name of the record field, with an
// index for list entries (e.g. "phones[1]").
type Issue struct {
	Field string `json:"field"`
	Code  Code   `json:"code"`
	Value string `json:"value"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s (%q)", i.Field, i.Code, i.Value)
}

var (
	imageDataURI = regexp.MustCompile(`^data:image/(jpeg|jpg|png|gif|webp|svg\+xml);base64,([A-Za-z0-9+/]+={0,2})$`)
	utcOffset    = regexp.MustCompile(`^[+-](0\d|1[0-4]):?[0-5]\d$`)
)

// Check returns every issue found in r, in field order. An empty result means
// the record is clean.
func Check(r *vcf.Record) []Issue {
	var issues []Issue
	add := func(field string, code Code, value string) {
		issues = append(issues, Issue{Field: field, Code: code, Value: value})
	}

	if !r.Gender.Valid() {
		add("gender", CodeGender, string(r.Gender))
	}
	if r.Birthday != "" && !validDate(r.Birthday) {
		add("birthday", CodeDate, r.Birthday)
	}
	if r.Anniversary != "" && !validDate(r.Anniversary) {
		add("anniversary", CodeDate, r.Anniversary)
	}

	for _, tag := range strings.Split(r.Languages, ",") {
		if tag = strings.TrimSpace(tag); tag == "" {
			continue
		}
		if _, err := language.Parse(tag); err != nil {
			add("languages", CodeLanguage, tag)
		}
	}

	if code, ok := checkImage(r.Photo); !ok {
		add("photo", code, r.Photo)
	}
	if code, ok := checkImage(r.Logo); !ok {
		add("logo", code, r.Logo)
	}

	if r.Geo != "" && !validGeo(r.Geo) {
		add("geo", CodeGeo, r.Geo)
	}
	if r.Timezone != "" && !validTimezone(r.Timezone) {
		add("timezone", CodeTimezone, r.Timezone)
	}

	for i, e := range r.Emails {
		if e.Value != "" && !validEmail(e.Value) {
			add(fmt.Sprintf("emails[%d]", i), CodeEmail, e.Value)
		}
	}
	for i, p := range r.Phones {
		if p.Value != "" && !phone.HasCountryCode(p.Value) {
			add(fmt.Sprintf("phones[%d]", i), CodeMissingCountryCode, p.Value)
		}
	}
	return issues
}

func validDate(value string) bool {
	for _, f := range []string{config.DateFormatFullDash, config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(f, value); err == nil {
			return true
		}
	}
	return false
}

// checkImage accepts an http(s) URL, a base64 image data URI within the size
// limit, or bare base64 as found in imported 2.1/3.0 cards.
func checkImage(value string) (Code, bool) {
	if value == "" {
		return "", true
	}

	if strings.HasPrefix(value, "data:") {
		m := imageDataURI.FindStringSubmatch(value)
		if m == nil {
			return CodeImage, false
		}
		if base64.StdEncoding.DecodedLen(len(m[2])) > config.MaxPhotoDataURISize {
			return CodeImageSize, false
		}
		return "", true
	}

	if u, err := url.Parse(value); err == nil && u.Host != "" {
		if u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS {
			return "", true
		}
		return CodeImage, false
	}

	if _, err := base64.StdEncoding.DecodeString(value); err == nil {
		return "", true
	}
	return CodeImage, false
}

func validGeo(value string) bool {
	latText, lngText, ok := strings.Cut(value, ",")
	if !ok {
		return false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil || lat < -90 || lat > 90 {
		return false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	return err == nil && lng >= -180 && lng <= 180
}

func validTimezone(value string) bool {
	if utcOffset.MatchString(value) {
		return true
	}
	_, err := time.LoadLocation(value)
	return err == nil
}

// validEmail accepts a bare addr-spec, without display name or angle brackets.
func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}
