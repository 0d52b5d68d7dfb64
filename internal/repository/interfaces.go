// Package repository exposes typed, schema-validated access to the document
// store. Untyped field bags never leave this package: every read is decoded
// and validated into a domain type immediately.
package repository

import (
	"context"
	"time"

	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// ErrNotFound is returned when a referenced user, calendar, or event does
// not exist.
var ErrNotFound = docstore.ErrNotFound

// MatchPolicy controls how title-based updates behave when several events in
// a calendar share a title. Title is a human join key, so duplicates are
// legal; first-match is the safe default.
type MatchPolicy string

const (
	MatchFirst MatchPolicy = "first-match"
	MatchAll   MatchPolicy = "all-matches"
)

// EventRepo is the event store adapter. All operations are scoped to one
// calendar. Batch operations over multiple matched events may partially
// fail; no transaction spans multiple events.
type EventRepo interface {
	// Create persists a new event and returns its assigned ID. Fails with
	// ErrNotFound when the calendar's owning user profile does not exist.
	Create(ctx context.Context, e *domain.Event) (string, error)

	// GetByID returns one event, or ErrNotFound.
	GetByID(ctx context.Context, calendarID, id string) (*domain.Event, error)

	// ListForDay returns all events whose interval intersects the local day
	// window. Order is unspecified; callers sort.
	ListForDay(ctx context.Context, calendarID string, day timewindow.Day, loc *time.Location) ([]*domain.Event, error)

	// UpdateTimeByID rewrites one event's start and end times.
	UpdateTimeByID(ctx context.Context, calendarID, id string, start, end time.Time) error

	// UpdateTimeByTitle rewrites the times of events matching the title
	// exactly (case-sensitive). Returns the number of events updated; zero
	// matches is ErrNotFound.
	UpdateTimeByTitle(ctx context.Context, calendarID, title string, start, end time.Time, policy MatchPolicy) (int, error)

	// UpdateFieldByTitle sets a single whitelisted field on events matching
	// the title. Same matching rule as UpdateTimeByTitle.
	UpdateFieldByTitle(ctx context.Context, calendarID, title, field string, value string, policy MatchPolicy) (int, error)

	// DeleteByID removes one event, or ErrNotFound.
	DeleteByID(ctx context.Context, calendarID, id string) error

	// DeleteByTitle removes all events with the title and returns the count
	// deleted. Zero is not an error.
	DeleteByTitle(ctx context.Context, calendarID, title string) (int, error)
}

// UserProfileRepo stores per-user scheduling settings.
type UserProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

// TaskHistoryRepo maintains the rolling duration window per (user, task).
type TaskHistoryRepo interface {
	// Record appends an observation and returns the updated record.
	Record(ctx context.Context, userID, taskName string, minutes int) (*domain.TaskHistoryRecord, error)

	// Get returns the record, or ErrNotFound when the task has no history.
	Get(ctx context.Context, userID, taskName string) (*domain.TaskHistoryRecord, error)

	// Durations returns the recorded windows for the named tasks, omitting
	// tasks without history.
	Durations(ctx context.Context, userID string, taskNames []string) (map[string][]int, error)
}
