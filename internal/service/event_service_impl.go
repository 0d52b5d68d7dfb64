package service

import (
	"context"
	"errors"
	"time"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/repository"
	"github.com/avnerell/dayweave/internal/scheduler"
	"github.com/avnerell/dayweave/internal/timewindow"
)

type eventService struct {
	events   repository.EventRepo
	profiles repository.UserProfileRepo
	policy   repository.MatchPolicy
}

func NewEventService(events repository.EventRepo, profiles repository.UserProfileRepo, policy repository.MatchPolicy) EventService {
	if policy == "" {
		policy = repository.MatchFirst
	}
	return &eventService{events: events, profiles: profiles, policy: policy}
}

func (s *eventService) Create(ctx context.Context, userID string, e *domain.Event) (string, error) {
	e.CalendarID = domain.CalendarIDForUser(userID)
	return s.events.Create(ctx, e)
}

func (s *eventService) ListDay(ctx context.Context, userID string, day timewindow.Day) ([]*domain.Event, error) {
	loc, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListForDay(ctx, domain.CalendarIDForUser(userID), day, loc)
	if err != nil {
		return nil, err
	}
	scheduler.SortChronological(events)
	return events, nil
}

func (s *eventService) EditField(ctx context.Context, userID, title, field, value string) (int, error) {
	return s.events.UpdateFieldByTitle(ctx, domain.CalendarIDForUser(userID), title, field, value, s.policy)
}

func (s *eventService) Remove(ctx context.Context, userID, title string) (int, error) {
	return s.events.DeleteByTitle(ctx, domain.CalendarIDForUser(userID), title)
}

// userLocation resolves the user's timezone for day-window queries. A
// missing profile falls back to local time rather than failing a read.
func (s *eventService) userLocation(ctx context.Context, userID string) (*time.Location, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return time.Local, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Timezone == "" {
		return time.Local, nil
	}
	loc, lerr := time.LoadLocation(p.Timezone)
	if lerr != nil {
		return time.Local, nil
	}
	return loc, nil
}
