package main

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-vcfedit/internal/calendar"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/phone"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// printSummary writes one localized line per non-empty field of r.
func (c *cli) printSummary(r *vcf.Record) {
	line := func(key, value string) {
		if value != "" {
			fmt.Fprintf(c.out, config.FormatShowLine, c.tr.T(key), value)
		}
	}
	item := func(key, value, prefix, kind string) {
		if value != "" {
			fmt.Fprintf(c.out, config.FormatShowItem, c.tr.T(key), value, c.tr.Label(prefix, kind))
		}
	}

	name := r.FullName()
	if name == "" {
		name = config.VCardUnnamed
	}
	line(config.TKeyLblName, name)
	line(config.TKeyLblNickname, r.Nickname)
	line(config.TKeyLblBirthday, r.Birthday)
	line(config.TKeyLblAnniversary, r.Anniversary)
	if r.Gender != vcf.GenderUnset {
		line(config.TKeyLblGender, c.tr.Label(config.TKeyPrefixGender, string(r.Gender)))
	}
	line(config.TKeyLblOrganization, joinNonEmpty(", ", r.Organization, r.Department))
	line(config.TKeyLblTitle, r.Title)
	line(config.TKeyLblRole, r.Role)

	for _, e := range r.Emails {
		item(config.TKeyLblEmail, e.Value, config.TKeyPrefixEmail, string(e.Type))
	}
	for _, p := range r.Phones {
		item(config.TKeyLblPhone, phone.Format(p.Value), config.TKeyPrefixPhone, string(p.Type))
	}
	for _, im := range r.IMPPs {
		item(config.TKeyLblIMPP, im.Value, config.TKeyPrefixIMPP, string(im.Type))
	}
	for _, a := range r.Addresses {
		item(config.TKeyLblAddress,
			joinNonEmpty(", ", a.POBox, a.ExtendedAddress, a.Street, a.PostalCode, a.City, a.State, a.Country),
			config.TKeyPrefixAddress, string(a.Type))
	}
	for _, u := range r.URLs {
		item(config.TKeyLblURL, u.Value, config.TKeyPrefixURL, string(u.Type))
	}
	for _, rel := range r.Related {
		item(config.TKeyLblRelated, rel.Value, config.TKeyPrefixRelated, string(rel.Type))
	}

	line(config.TKeyLblLanguages, r.Languages)
	line(config.TKeyLblTimezone, r.Timezone)
	line(config.TKeyLblGeo, r.Geo)
	line(config.TKeyLblCategories, r.Categories)
	line(config.TKeyLblNote, r.Note)

	for _, f := range r.CustomFields {
		if f.Key != "" {
			line(config.TKeyLblCustom, f.Key+"="+f.Value)
		}
	}
}

// printUpcoming lists entries with their next date and, when the year is
// known, the age reached that day.
func (c *cli) printUpcoming(entries []calendar.Entry) {
	fmt.Fprintln(c.out, c.tr.T(config.TKeyUpcoming))
	for _, e := range entries {
		text := fmt.Sprintf(config.FormatUpcoming,
			e.NextOccurrence.Format(config.DateFormatFullDash),
			c.tr.EventSummary(e.Kind, e.Name))
		if e.YearKnown {
			text += fmt.Sprintf(config.FormatAgeSuffix, c.tr.Tf(config.TKeyAgeNext, map[string]any{"Age": e.AgeNext}))
		}
		fmt.Fprintln(c.out, text)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
