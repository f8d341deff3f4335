// Package calendar publishes the birthdays and anniversaries of contact records
// as a subscribable iCalendar feed.
package calendar

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// Exporter turns records into an iCalendar document.
type Exporter struct {
	Clock vcf.Clock // Interface for time mocking. Nil means the real clock.

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(kind Kind, name string) string
}

// Entries lists the dated events of records, soonest first.
func (e *Exporter) Entries(records []*vcf.Record) []Entry {
	return entries(records, e.now())
}

// Export renders one all-day yearly event per birthday and anniversary.
// When no record carries a usable date, a valid empty VCALENDAR is returned.
func (e *Exporter) Export(records []*vcf.Record) ([]byte, error) {
	list := e.Entries(records)
	if len(list) == 0 {
		e.logSuccess(len(records), 0)
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(e.now().UTC())

	for _, entry := range list {
		event := e.createEvent(entry)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	e.logSuccess(len(records), len(list))
	return buf.Bytes(), nil
}

func (e *Exporter) createEvent(entry Entry) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, entry.UID)
	event.Props.SetText(config.PropSummary, e.summary(entry))

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(entry.Date)
	event.Props.Set(dtStartProp)

	// Set the rule manually to avoid a "VALUE=TEXT" param.
	ruleProp := ical.NewProp(config.PropRRule)
	ruleProp.Value = config.ICalYearly
	event.Props.Set(ruleProp)

	return event
}

func (e *Exporter) summary(entry Entry) string {
	if e.FormatSummary != nil {
		return e.FormatSummary(entry.Kind, entry.Name)
	}
	if entry.Kind == KindAnniversary {
		return fmt.Sprintf(config.FallbackAnniversary, entry.Name)
	}
	return fmt.Sprintf(config.FallbackBirthday, entry.Name)
}

func (e *Exporter) now() time.Time {
	if e.Clock == nil {
		return vcf.RealClock{}.Now()
	}
	return e.Clock.Now()
}

func (e *Exporter) logSuccess(records, events int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompCalendar,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, records),
			slog.Int(config.LogKeyEvents, events),
		),
	)
}

func logSkippedDate(value string) {
	slog.Debug(config.MsgSkippedDate,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyValue, value)
}
