// Package service implements the application use cases over the typed
// repositories: day reconciliation against the completion service, direct
// event and profile management, history recording, and calendar import.
package service

import (
	"context"

	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/importer"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// ScheduleService is the reconciliation engine. Callers serialize: one
// in-flight reconciliation per user. Store writes are applied sequentially.
type ScheduleService interface {
	// Plan places the requested microtasks into the user's day. When writes
	// partially fail, the partial response is returned alongside a
	// PARTIAL_APPLY error so the caller can see what did land.
	Plan(ctx context.Context, req contract.PlacementRequest) (*contract.PlacementResponse, error)

	// Reflow repositions the day's movable events after one event was moved
	// or deleted. Partial failures behave as in Plan.
	Reflow(ctx context.Context, req contract.ChangeRequest) (*contract.ChangeResponse, error)
}

type EventService interface {
	// Create persists an event in the user's calendar and returns its ID.
	Create(ctx context.Context, userID string, e *domain.Event) (string, error)

	// ListDay returns the user's events intersecting the day, in
	// chronological order.
	ListDay(ctx context.Context, userID string, day timewindow.Day) ([]*domain.Event, error)

	// EditField updates one whitelisted field on events matching the title.
	EditField(ctx context.Context, userID, title, field, value string) (int, error)

	// Remove deletes all events with the title and returns the count.
	Remove(ctx context.Context, userID, title string) (int, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Set(ctx context.Context, p *domain.UserProfile) error
}

type HistoryService interface {
	// Record appends an observed duration for a named task.
	Record(ctx context.Context, userID, taskName string, minutes int) (*domain.TaskHistoryRecord, error)

	// Show returns the recorded window, or repository.ErrNotFound.
	Show(ctx context.Context, userID, taskName string) (*domain.TaskHistoryRecord, error)
}

// ImportSummary reports the outcome of one calendar import.
type ImportSummary struct {
	Created int
	Skipped []importer.SkippedEvent
	// Failed holds titles that parsed but could not be persisted.
	Failed []string
}

type ImportService interface {
	// ImportFile parses an ICS file and persists its timed events as fixed
	// entries in the user's calendar.
	ImportFile(ctx context.Context, userID, path string) (*ImportSummary, error)
}
