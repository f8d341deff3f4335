package calendar

import (
	"cmp"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// Kind is the record date an entry was built from.
type Kind string

const (
	KindBirthday    Kind = "birthday"
	KindAnniversary Kind = "anniversary"
)

// Entry is one dated event of a contact, with its next occurrence for listing.
type Entry struct {
	// UID is a deterministic hash, stable across exports of the same data.
	UID string

	// Name is the display name of the record (FN, or a fallback).
	Name string

	Kind Kind

	// Date is the parsed date. Without a year, it is set in config.DefaultLeapYear.
	Date time.Time

	// YearKnown indicates if the record contained a year or just --MM-DD.
	YearKnown bool

	// NextOccurrence is today or the next anniversary of Date.
	NextOccurrence time.Time

	// AgeNext is the number of years completed at NextOccurrence.
	// Only valid if YearKnown is true.
	AgeNext int
}

// entries extracts every birthday and anniversary of records, sorted by next
// occurrence then name. Unparsable dates are skipped.
func entries(records []*vcf.Record, now time.Time) []Entry {
	var out []Entry
	for _, r := range records {
		name := r.FullName()
		if name == "" {
			name = config.VCardUnnamed
		}
		for _, d := range []struct {
			kind  Kind
			value string
		}{
			{KindBirthday, r.Birthday},
			{KindAnniversary, r.Anniversary},
		} {
			if d.value == "" {
				continue
			}
			date, yearKnown, err := parseDate(d.value)
			if err != nil {
				logSkippedDate(d.value)
				continue
			}
			next, age := calculateNextOccurrence(now, date, yearKnown)
			out = append(out, Entry{
				UID:            entryUID(name, d.kind, date),
				Name:           name,
				Kind:           d.kind,
				Date:           date,
				YearKnown:      yearKnown,
				NextOccurrence: next,
				AgeNext:        age,
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := a.NextOccurrence.Compare(b.NextOccurrence); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func entryUID(name string, kind Kind, date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, kind, date.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

// calculateNextOccurrence determines the next anniversary of date relative to now.
// Today counts as the next occurrence.
func calculateNextOccurrence(now time.Time, date time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in non-leap years.
	candidate := time.Date(now.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}

	age := 0
	if yearKnown {
		age = candidate.Year() - date.Year()
	}
	return candidate, age
}

// parseDate handles the record date forms: ISO, basic, date-time and the
// truncated --MM-DD / --MMDD forms.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates are placed in a leap year so that --02-29 stays valid.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
