// Package importer converts external ICS calendar payloads into events.
// Recurring VEVENTs are not expanded; each VEVENT becomes a single fixed
// event on the target calendar.
package importer

import (
	"errors"
	"fmt"
	"io"

	ical "github.com/arran4/golang-ical"

	"github.com/avnerell/dayweave/internal/domain"
)

// SkippedEvent records a VEVENT that could not be converted, keyed by its
// UID when one was present.
type SkippedEvent struct {
	UID    string
	Reason string
}

// Result holds the outcome of parsing one ICS payload. Events are ready
// for persistence but not yet stored.
type Result struct {
	Events  []*domain.Event
	Skipped []SkippedEvent
}

// ParseICS parses a single ICS payload into events for the given calendar.
// Individual VEVENTs that fail conversion are skipped and reported in the
// result; the call fails only when the payload itself is unreadable.
func ParseICS(r io.Reader, calendarID string) (*Result, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ICS payload: %w", err)
	}

	res := &Result{}
	for _, ve := range cal.Events() {
		ev, cerr := convertVEvent(ve, calendarID)
		if cerr != nil {
			res.Skipped = append(res.Skipped, SkippedEvent{UID: eventUID(ve), Reason: cerr.Error()})
			continue
		}
		res.Events = append(res.Events, ev)
	}
	return res, nil
}

func convertVEvent(ve *ical.VEvent, calendarID string) (*domain.Event, error) {
	summary := propValue(ve, ical.ComponentPropertySummary)
	if summary == "" {
		return nil, errors.New("missing SUMMARY")
	}

	if isAllDay(ve) {
		return nil, errors.New("all-day events carry no schedulable times")
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("DTEND: %w", err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end %s is not after start %s", end.Format("15:04"), start.Format("15:04"))
	}

	ev := &domain.Event{
		CalendarID:     calendarID,
		Title:          summary,
		Description:    propValue(ve, ical.ComponentPropertyDescription),
		Location:       propValue(ve, ical.ComponentPropertyLocation),
		Category:       domain.CategoryImported,
		StartTime:      start,
		EndTime:        end,
		RecurrenceType: domain.RecurrenceNone,
	}
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}

// isAllDay reports whether DTSTART is a date-only value (VALUE=DATE or a
// value with no time component).
func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && vs[0] == "DATE" {
		return true
	}
	for _, c := range prop.Value {
		if c == 'T' {
			return false
		}
	}
	return prop.Value != ""
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

func eventUID(ve *ical.VEvent) string {
	return propValue(ve, ical.ComponentPropertyUniqueId)
}
