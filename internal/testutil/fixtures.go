package testutil

import (
	"time"

	"github.com/avnerell/dayweave/internal/domain"
)

// Event options

type EventOption func(*domain.Event)

func WithTimes(start, end time.Time) EventOption {
	return func(e *domain.Event) {
		e.StartTime = start
		e.EndTime = end
	}
}

func WithDescription(desc string) EventOption {
	return func(e *domain.Event) {
		e.Description = desc
	}
}

func WithLocation(loc string) EventOption {
	return func(e *domain.Event) {
		e.Location = loc
	}
}

func WithCategory(cat string) EventOption {
	return func(e *domain.Event) {
		e.Category = cat
	}
}

func WithMovable(movable bool) EventOption {
	return func(e *domain.Event) {
		e.Movable = movable
	}
}

func WithRecurrence(rt domain.RecurrenceType, count int) EventOption {
	return func(e *domain.Event) {
		e.Recurring = rt != domain.RecurrenceNone
		e.RecurrenceType = rt
		e.RecurrenceCount = count
	}
}

// NewTestEvent builds a fixed one-hour event at 09:00 UTC on 2026-03-14
// unless overridden.
func NewTestEvent(calendarID, title string, opts ...EventOption) *domain.Event {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	e := &domain.Event{
		CalendarID:     calendarID,
		Title:          title,
		Category:       domain.CategoryUncategorized,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		RecurrenceType: domain.RecurrenceNone,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profile options

type ProfileOption func(*domain.UserProfile)

func WithWindow(wake, sleep string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.WakeTime = wake
		p.SleepTime = sleep
	}
}

func WithTimezone(tz string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.Timezone = tz
	}
}

// NewTestProfile builds a profile with a 07:00-23:00 UTC day window.
func NewTestProfile(userID string, opts ...ProfileOption) *domain.UserProfile {
	p := &domain.UserProfile{
		UserID:      userID,
		DisplayName: userID,
		WakeTime:    "07:00",
		SleepTime:   "23:00",
		Timezone:    "UTC",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
