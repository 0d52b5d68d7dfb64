package repository

import (
	"fmt"
	"time"

	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/domain"
)

// Collection names in the document store.
const (
	eventsCollection   = "events"
	profilesCollection = "profiles"
	historyCollection  = "task_history"
)

// eventFields flattens an event into a document field bag. Timestamps are
// stored as RFC3339 strings in UTC.
func eventFields(e *domain.Event) map[string]any {
	return map[string]any{
		"calendar_id":      e.CalendarID,
		"title":            e.Title,
		"description":      e.Description,
		"location":         e.Location,
		"category":         e.Category,
		"start_time":       e.StartTime.UTC().Format(time.RFC3339),
		"end_time":         e.EndTime.UTC().Format(time.RFC3339),
		"recurring":        e.Recurring,
		"recurrence_type":  string(e.RecurrenceType),
		"recurrence_count": e.RecurrenceCount,
		"movable":          e.Movable,
	}
}

// decodeEvent validates a document into a typed event. Documents that fail
// schema validation are never propagated past the repository.
func decodeEvent(doc docstore.Document) (*domain.Event, error) {
	e := &domain.Event{ID: doc.Key}

	var err error
	if e.CalendarID, err = stringField(doc, "calendar_id"); err != nil {
		return nil, err
	}
	if e.Title, err = stringField(doc, "title"); err != nil {
		return nil, err
	}
	e.Description = optionalString(doc, "description")
	e.Location = optionalString(doc, "location")
	e.Category = optionalString(doc, "category")

	if e.StartTime, err = timeField(doc, "start_time"); err != nil {
		return nil, err
	}
	if e.EndTime, err = timeField(doc, "end_time"); err != nil {
		return nil, err
	}

	e.Recurring = boolField(doc, "recurring")
	e.RecurrenceType = domain.RecurrenceType(optionalString(doc, "recurrence_type"))
	e.RecurrenceCount = intField(doc, "recurrence_count")
	e.Movable = boolField(doc, "movable")

	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("event document %s failed validation: %w", doc.Key, err)
	}
	return e, nil
}

func stringField(doc docstore.Document, name string) (string, error) {
	v, ok := doc.Fields[name]
	if !ok {
		return "", fmt.Errorf("event document %s: missing field %s", doc.Key, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("event document %s: field %s is %T, want string", doc.Key, name, v)
	}
	return s, nil
}

func optionalString(doc docstore.Document, name string) string {
	s, _ := doc.Fields[name].(string)
	return s
}

func boolField(doc docstore.Document, name string) bool {
	b, _ := doc.Fields[name].(bool)
	return b
}

// intField reads a numeric field. JSON round-tripping turns numbers into
// float64, so both forms are accepted.
func intField(doc docstore.Document, name string) int {
	switch v := doc.Fields[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func timeField(doc docstore.Document, name string) (time.Time, error) {
	s, err := stringField(doc, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("event document %s: field %s: %v", doc.Key, name, err)
	}
	return t, nil
}
