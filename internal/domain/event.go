package domain

import (
	"fmt"
	"time"
)

// Event is a single entry in a user's calendar. Events created by the
// reconciliation engine are marked Movable and may be repositioned by later
// reconciliation passes; user-authored and imported events are fixed.
type Event struct {
	ID          string // store-assigned, empty until persisted
	CalendarID  string
	Title       string
	Description string
	Location    string
	Category    string

	StartTime time.Time
	EndTime   time.Time

	Recurring       bool
	RecurrenceType  RecurrenceType
	RecurrenceCount int

	Movable bool
}

// CalendarIDForUser derives the calendar identifier owned by a user.
// The mapping is deterministic and never user-editable.
func CalendarIDForUser(userID string) string {
	return userID + "_calendar"
}

// Validate checks the event's structural invariants. It does not touch the
// store and does not check for overlaps with other events.
func (e *Event) Validate() error {
	if e.CalendarID == "" {
		return fmt.Errorf("event calendar id is required")
	}
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return fmt.Errorf("event %q: start time %s must be before end time %s",
			e.Title, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
	}
	if !ValidRecurrenceTypes[e.RecurrenceType] {
		return fmt.Errorf("event %q: unknown recurrence type %q", e.Title, e.RecurrenceType)
	}
	if !e.Recurring && e.RecurrenceType != RecurrenceNone {
		return fmt.Errorf("event %q: recurrence type %q on a non-recurring event", e.Title, e.RecurrenceType)
	}
	if e.RecurrenceCount < 0 {
		return fmt.Errorf("event %q: recurrence count must be non-negative, got %d", e.Title, e.RecurrenceCount)
	}
	if !e.Recurring && e.RecurrenceCount != 0 {
		return fmt.Errorf("event %q: recurrence count %d on a non-recurring event", e.Title, e.RecurrenceCount)
	}
	return nil
}

// Overlaps reports whether the half-open intervals [start, end) of two
// events intersect.
func (e *Event) Overlaps(other *Event) bool {
	return e.StartTime.Before(other.EndTime) && other.StartTime.Before(e.EndTime)
}

// Normalize fills defaulted fields: empty category becomes Uncategorized and
// a non-recurring event's type is pinned to none.
func (e *Event) Normalize() {
	if e.Category == "" {
		e.Category = CategoryUncategorized
	}
	if !e.Recurring {
		e.RecurrenceType = RecurrenceNone
		e.RecurrenceCount = 0
	}
	if e.RecurrenceType == "" {
		e.RecurrenceType = RecurrenceNone
	}
}
