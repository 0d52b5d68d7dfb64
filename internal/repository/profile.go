package repository

import (
	"context"
	"fmt"

	"github.com/avnerell/dayweave/internal/docstore"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// DocUserProfileRepo implements UserProfileRepo on the document store.
type DocUserProfileRepo struct {
	store docstore.Store
}

// NewDocUserProfileRepo creates a UserProfileRepo backed by the given store.
func NewDocUserProfileRepo(store docstore.Store) *DocUserProfileRepo {
	return &DocUserProfileRepo{store: store}
}

func (r *DocUserProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	doc, err := r.store.Get(ctx, profilesCollection, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.UserProfile{
		UserID:      userID,
		DisplayName: optionalString(*doc, "display_name"),
		WakeTime:    optionalString(*doc, "wake_time"),
		SleepTime:   optionalString(*doc, "sleep_time"),
		Timezone:    optionalString(*doc, "timezone"),
	}
	return p, nil
}

func (r *DocUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.WakeTime != "" {
		if _, err := timewindow.ParseClock(p.WakeTime); err != nil {
			return fmt.Errorf("wake time: %w", err)
		}
	}
	if p.SleepTime != "" {
		if _, err := timewindow.ParseClock(p.SleepTime); err != nil {
			return fmt.Errorf("sleep time: %w", err)
		}
	}

	return r.store.Put(ctx, profilesCollection, p.UserID, map[string]any{
		"display_name": p.DisplayName,
		"wake_time":    p.WakeTime,
		"sleep_time":   p.SleepTime,
		"timezone":     p.Timezone,
		"calendar_id":  domain.CalendarIDForUser(p.UserID),
	})
}
