// Package contract defines the request and response value objects exchanged
// with the scheduling services, and the coded errors they surface.
package contract

import (
	"strings"
	"time"

	"github.com/avnerell/dayweave/internal/timewindow"
)

// PlacementRequest asks the engine to place new microtasks into one day
// (Flow A). It is ephemeral: it lives only for the duration of one
// reconciliation call and is never persisted.
type PlacementRequest struct {
	UserID    string
	Day       timewindow.Day
	TaskNames []string

	// UseHistory enriches the prompt with recorded task durations.
	UseHistory bool

	// WakeTime / SleepTime override the profile's day-window bounds when
	// non-empty ("HH:MM").
	WakeTime  string
	SleepTime string
}

// ChangeRequest asks the engine to reflow movable events after one event was
// moved or deleted (Flow B).
type ChangeRequest struct {
	UserID string
	Day    timewindow.Day
	Title  string

	// EventID pins the change to one stored event. When empty the engine
	// falls back to title matching.
	EventID string

	// Delete marks the event as removed; NewStart/NewEnd are ignored.
	Delete   bool
	NewStart timewindow.Clock
	NewEnd   timewindow.Clock
}

// DroppedEntry records one completion-response element rejected during
// parsing, for caller-visible diagnostics.
type DroppedEntry struct {
	Index  int
	Title  string
	Reason string
}

// PlacementResponse reports the outcome of Flow A.
type PlacementResponse struct {
	GeneratedAt time.Time
	Day         timewindow.Day

	// CreatedTitles were persisted by this run.
	CreatedTitles []string
	// SkippedTitles were requested but already present in the day.
	SkippedTitles []string
	// DiscardedTitles appeared in the completion response without being
	// requested and were never persisted.
	DiscardedTitles []string
	// UnrealizedTitles were requested but never created (dropped during
	// parsing or failed during apply).
	UnrealizedTitles []string

	Dropped []DroppedEntry
}

// ChangeResponse reports the outcome of Flow B.
type ChangeResponse struct {
	GeneratedAt time.Time
	Day         timewindow.Day

	// DeletedCount is the number of events removed for a delete change.
	DeletedCount int
	// MovedTitles had their times rewritten by this run.
	MovedTitles []string
	// IgnoredTitles appeared in the completion response but were not in the
	// movable set, so the engine refused to touch them.
	IgnoredTitles []string

	Dropped []DroppedEntry
}

// ScheduleErrorCode classifies reconciliation failures.
type ScheduleErrorCode string

const (
	ScheduleErrNotFound              ScheduleErrorCode = "NOT_FOUND"
	ScheduleErrInvalidFormat         ScheduleErrorCode = "INVALID_FORMAT"
	ScheduleErrMalformedResponse     ScheduleErrorCode = "MALFORMED_RESPONSE"
	ScheduleErrEmptySchedule         ScheduleErrorCode = "EMPTY_SCHEDULE"
	ScheduleErrCompletionUnavailable ScheduleErrorCode = "COMPLETION_UNAVAILABLE"
	ScheduleErrPartialApply          ScheduleErrorCode = "PARTIAL_APPLY"
)

// ScheduleError is a coded reconciliation failure. PartialApply errors carry
// the titles whose writes failed so the caller can retry just those.
type ScheduleError struct {
	Code         ScheduleErrorCode
	Message      string
	FailedTitles []string
}

func (e *ScheduleError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if len(e.FailedTitles) > 0 {
		msg += " (" + strings.Join(e.FailedTitles, ", ") + ")"
	}
	return msg
}
