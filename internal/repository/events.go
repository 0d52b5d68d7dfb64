package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// DocEventRepo implements EventRepo on the document store.
type DocEventRepo struct {
	store docstore.Store
}

// NewDocEventRepo creates an EventRepo backed by the given store.
func NewDocEventRepo(store docstore.Store) *DocEventRepo {
	return &DocEventRepo{store: store}
}

func (r *DocEventRepo) Create(ctx context.Context, e *domain.Event) (string, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return "", err
	}

	// The calendar must belong to a known user. CalendarID is derived, so
	// the owner is recoverable from it.
	userID := strings.TrimSuffix(e.CalendarID, "_calendar")
	if userID == e.CalendarID {
		return "", fmt.Errorf("%w: calendar %q has no owning user", ErrNotFound, e.CalendarID)
	}
	if _, err := r.store.Get(ctx, profilesCollection, userID); err != nil {
		return "", fmt.Errorf("resolving owner of calendar %q: %w", e.CalendarID, err)
	}

	id := uuid.New().String()
	if err := r.store.Put(ctx, eventsCollection, id, eventFields(e)); err != nil {
		return "", fmt.Errorf("creating event %q: %w", e.Title, err)
	}
	e.ID = id
	return id, nil
}

func (r *DocEventRepo) GetByID(ctx context.Context, calendarID, id string) (*domain.Event, error) {
	doc, err := r.store.Get(ctx, eventsCollection, id)
	if err != nil {
		return nil, err
	}
	e, err := decodeEvent(*doc)
	if err != nil {
		return nil, err
	}
	if e.CalendarID != calendarID {
		return nil, fmt.Errorf("%w: event %s not in calendar %s", ErrNotFound, id, calendarID)
	}
	return e, nil
}

func (r *DocEventRepo) ListForDay(ctx context.Context, calendarID string, day timewindow.Day, loc *time.Location) ([]*domain.Event, error) {
	docs, err := r.store.Query(ctx, eventsCollection, func(d docstore.Document) bool {
		cal, _ := d.Fields["calendar_id"].(string)
		return cal == calendarID
	})
	if err != nil {
		return nil, fmt.Errorf("listing events for calendar %s: %w", calendarID, err)
	}

	var events []*domain.Event
	for _, doc := range docs {
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		if day.Intersects(e.StartTime, e.EndTime, loc) {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *DocEventRepo) UpdateTimeByID(ctx context.Context, calendarID, id string, start, end time.Time) error {
	if _, err := r.GetByID(ctx, calendarID, id); err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("event %s: start time must precede end time", id)
	}
	return r.store.UpdateFields(ctx, eventsCollection, id, map[string]any{
		"start_time": start.UTC().Format(time.RFC3339),
		"end_time":   end.UTC().Format(time.RFC3339),
	})
}

func (r *DocEventRepo) UpdateTimeByTitle(ctx context.Context, calendarID, title string, start, end time.Time, policy MatchPolicy) (int, error) {
	if !start.Before(end) {
		return 0, fmt.Errorf("event %q: start time must precede end time", title)
	}
	return r.updateMatching(ctx, calendarID, title, policy, map[string]any{
		"start_time": start.UTC().Format(time.RFC3339),
		"end_time":   end.UTC().Format(time.RFC3339),
	})
}

// updatableFields is the whitelist for generic single-field updates. Times
// go through the dedicated update methods and calendar_id is never
// user-editable.
var updatableFields = map[string]bool{
	"title":       true,
	"description": true,
	"location":    true,
	"category":    true,
}

func (r *DocEventRepo) UpdateFieldByTitle(ctx context.Context, calendarID, title, field string, value string, policy MatchPolicy) (int, error) {
	if !updatableFields[field] {
		return 0, fmt.Errorf("field %q is not updatable", field)
	}
	return r.updateMatching(ctx, calendarID, title, policy, map[string]any{field: value})
}

// updateMatching applies partial fields to events matching (calendarID,
// title). Matching is exact and case-sensitive. Updates are applied one
// document at a time and may partially fail; the count of successful
// updates is reported alongside the first error.
func (r *DocEventRepo) updateMatching(ctx context.Context, calendarID, title string, policy MatchPolicy, partial map[string]any) (int, error) {
	matches, err := r.matchByTitle(ctx, calendarID, title)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: no event titled %q in calendar %s", ErrNotFound, title, calendarID)
	}
	if policy == MatchFirst {
		matches = matches[:1]
	}

	updated := 0
	for _, doc := range matches {
		if err := r.store.UpdateFields(ctx, eventsCollection, doc.Key, partial); err != nil {
			return updated, fmt.Errorf("updating event %s: %w", doc.Key, err)
		}
		updated++
	}
	return updated, nil
}

func (r *DocEventRepo) DeleteByID(ctx context.Context, calendarID, id string) error {
	if _, err := r.GetByID(ctx, calendarID, id); err != nil {
		return err
	}
	return r.store.Delete(ctx, eventsCollection, id)
}

func (r *DocEventRepo) DeleteByTitle(ctx context.Context, calendarID, title string) (int, error) {
	matches, err := r.matchByTitle(ctx, calendarID, title)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range matches {
		if err := r.store.Delete(ctx, eventsCollection, doc.Key); err != nil {
			return deleted, fmt.Errorf("deleting event %s: %w", doc.Key, err)
		}
		deleted++
	}
	return deleted, nil
}

// matchByTitle returns matching documents in a stable key order so that
// MatchFirst is deterministic.
func (r *DocEventRepo) matchByTitle(ctx context.Context, calendarID, title string) ([]docstore.Document, error) {
	docs, err := r.store.Query(ctx, eventsCollection, func(d docstore.Document) bool {
		cal, _ := d.Fields["calendar_id"].(string)
		t, _ := d.Fields["title"].(string)
		return cal == calendarID && t == title
	})
	if err != nil {
		return nil, fmt.Errorf("matching events titled %q: %w", title, err)
	}
	sortDocsByKey(docs)
	return docs, nil
}

func sortDocsByKey(docs []docstore.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
}
