package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/domain"
)

// DocTaskHistoryRepo implements TaskHistoryRepo on the document store.
// Records are keyed "<userID>/<taskName>". Task names are free text, so
// the system-assigned user id goes first to keep keys unambiguous.
type DocTaskHistoryRepo struct {
	store docstore.Store
}

// NewDocTaskHistoryRepo creates a TaskHistoryRepo backed by the given store.
func NewDocTaskHistoryRepo(store docstore.Store) *DocTaskHistoryRepo {
	return &DocTaskHistoryRepo{store: store}
}

func historyKey(userID, taskName string) string {
	return userID + "/" + taskName
}

func (r *DocTaskHistoryRepo) Record(ctx context.Context, userID, taskName string, minutes int) (*domain.TaskHistoryRecord, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", minutes)
	}

	rec, err := r.Get(ctx, userID, taskName)
	if errors.Is(err, ErrNotFound) {
		rec = &domain.TaskHistoryRecord{UserID: userID, TaskName: taskName}
	} else if err != nil {
		return nil, err
	}

	rec.Observe(minutes)

	durations := make([]any, len(rec.DurationsMin))
	for i, d := range rec.DurationsMin {
		durations[i] = d
	}
	err = r.store.Put(ctx, historyCollection, historyKey(userID, taskName), map[string]any{
		"user_id":   userID,
		"task_name": taskName,
		"durations": durations,
	})
	if err != nil {
		return nil, fmt.Errorf("recording history for %q: %w", taskName, err)
	}
	return rec, nil
}

func (r *DocTaskHistoryRepo) Get(ctx context.Context, userID, taskName string) (*domain.TaskHistoryRecord, error) {
	doc, err := r.store.Get(ctx, historyCollection, historyKey(userID, taskName))
	if err != nil {
		return nil, err
	}
	return decodeHistory(*doc, userID, taskName)
}

func (r *DocTaskHistoryRepo) Durations(ctx context.Context, userID string, taskNames []string) (map[string][]int, error) {
	out := make(map[string][]int)
	for _, name := range taskNames {
		rec, err := r.Get(ctx, userID, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(rec.DurationsMin) > 0 {
			out[name] = rec.DurationsMin
		}
	}
	return out, nil
}

func decodeHistory(doc docstore.Document, userID, taskName string) (*domain.TaskHistoryRecord, error) {
	rec := &domain.TaskHistoryRecord{UserID: userID, TaskName: taskName}

	raw, _ := doc.Fields["durations"].([]any)
	for _, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("history document %s: duration is %T, want number", doc.Key, v)
		}
		rec.DurationsMin = append(rec.DurationsMin, int(f))
	}
	if len(rec.DurationsMin) > domain.HistoryWindowSize {
		rec.DurationsMin = rec.DurationsMin[len(rec.DurationsMin)-domain.HistoryWindowSize:]
	}
	return rec, nil
}
