package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/intelligence"
	"github.com/avnerell/dayweave/internal/llm"
	"github.com/avnerell/dayweave/internal/repository"
	"github.com/avnerell/dayweave/internal/scheduler"
	"github.com/avnerell/dayweave/internal/timewindow"
)

type scheduleService struct {
	events   repository.EventRepo
	profiles repository.UserProfileRepo
	history  repository.TaskHistoryRepo
	client   llm.CompletionClient
	prompts  intelligence.PromptConfig
	policy   repository.MatchPolicy
	observer UseCaseObserver
}

// NewScheduleService creates the reconciliation engine. A zero-value policy
// defaults to MatchFirst.
func NewScheduleService(
	events repository.EventRepo,
	profiles repository.UserProfileRepo,
	history repository.TaskHistoryRepo,
	client llm.CompletionClient,
	prompts intelligence.PromptConfig,
	policy repository.MatchPolicy,
	observer UseCaseObserver,
) ScheduleService {
	if policy == "" {
		policy = repository.MatchFirst
	}
	return &scheduleService{
		events:   events,
		profiles: profiles,
		history:  history,
		client:   client,
		prompts:  prompts,
		policy:   policy,
		observer: observerOrNoop(observer),
	}
}

func (s *scheduleService) Plan(ctx context.Context, req contract.PlacementRequest) (resp *contract.PlacementResponse, err error) {
	start := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule_plan",
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			StartedAt: start,
			Fields:    map[string]any{"user_id": req.UserID, "day": req.Day.String(), "task_count": len(req.TaskNames)},
		})
	}()

	if req.UserID == "" {
		return nil, invalidFormat("user id is required")
	}
	if verr := req.Day.Validate(); verr != nil {
		return nil, invalidFormat(verr.Error())
	}
	requested := dedupe(req.TaskNames)
	if len(requested) == 0 {
		return nil, invalidFormat("no tasks to place")
	}

	profile, perr := s.profiles.Get(ctx, req.UserID)
	if errors.Is(perr, repository.ErrNotFound) {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrNotFound, Message: fmt.Sprintf("no profile for user %q", req.UserID)}
	} else if perr != nil {
		return nil, perr
	}

	cfg := s.promptConfigFor(profile)
	loc := cfg.Location()

	wake, sleep, werr := resolveWindow(profile, req.WakeTime, req.SleepTime)
	if werr != nil {
		return nil, invalidFormat(werr.Error())
	}

	calendarID := domain.CalendarIDForUser(req.UserID)
	existing, lerr := s.events.ListForDay(ctx, calendarID, req.Day, loc)
	if lerr != nil {
		return nil, lerr
	}
	scheduler.SortChronological(existing)

	existingTitles := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingTitles[e.Title] = true
	}

	task := llm.TaskPlacement
	input := intelligence.PlacementInput{
		Day:       req.Day,
		Wake:      wake,
		Sleep:     sleep,
		Existing:  existing,
		TaskNames: requested,
	}
	if req.UseHistory {
		durations, herr := s.history.Durations(ctx, req.UserID, requested)
		if herr != nil {
			return nil, herr
		}
		if len(durations) > 0 {
			input.History = durations
			task = llm.TaskHistoryPlacement
		}
	}

	gen, gerr := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: cfg.System(),
		UserPrompt:   intelligence.BuildPlacementPrompt(cfg, input),
	})
	if gerr != nil {
		return nil, completionError(gerr)
	}

	parsed, perr2 := intelligence.ParseSchedule(gen.Text, req.Day, loc)
	if perr2 != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrMalformedResponse, Message: perr2.Error()}
	}
	if len(parsed.Events) == 0 {
		return nil, &contract.ScheduleError{
			Code:    contract.ScheduleErrEmptySchedule,
			Message: fmt.Sprintf("completion response contained no valid schedule entries (%d dropped)", len(parsed.Dropped)),
		}
	}

	resp = &contract.PlacementResponse{
		GeneratedAt: time.Now().UTC(),
		Day:         req.Day,
		Dropped:     parsed.Dropped,
	}

	requestedSet := make(map[string]bool, len(requested))
	for _, name := range requested {
		requestedSet[name] = true
	}

	skipped := make(map[string]bool)
	accepted := make(map[string]bool)
	var candidates []*domain.Event

	// Only events that were explicitly requested and are not already on the
	// day become candidates. Everything else the model volunteered is
	// discarded.
	for _, ev := range parsed.Events {
		switch {
		case !requestedSet[ev.Title]:
			resp.DiscardedTitles = append(resp.DiscardedTitles, ev.Title)
		case existingTitles[ev.Title]:
			if !skipped[ev.Title] {
				skipped[ev.Title] = true
				resp.SkippedTitles = append(resp.SkippedTitles, ev.Title)
			}
		case accepted[ev.Title]:
			// Duplicate element for an already-accepted title.
			resp.DiscardedTitles = append(resp.DiscardedTitles, ev.Title)
		default:
			accepted[ev.Title] = true
			candidates = append(candidates, ev)
		}
	}

	scheduler.SortChronological(candidates)
	if cfg.StrictOverlapCheck {
		// During placement every stored event occupies its slot.
		candidates = rejectOverlaps(candidates, existing, &resp.Dropped)
	}

	created := make(map[string]bool)
	var failed []string
	for _, ev := range candidates {
		ev.CalendarID = calendarID
		if _, cerr := s.events.Create(ctx, ev); cerr != nil {
			failed = append(failed, ev.Title)
			continue
		}
		created[ev.Title] = true
		resp.CreatedTitles = append(resp.CreatedTitles, ev.Title)
	}

	for _, name := range requested {
		if !created[name] && !skipped[name] {
			resp.UnrealizedTitles = append(resp.UnrealizedTitles, name)
		}
	}

	if len(failed) > 0 {
		return resp, &contract.ScheduleError{
			Code:         contract.ScheduleErrPartialApply,
			Message:      "some placements could not be persisted",
			FailedTitles: failed,
		}
	}
	return resp, nil
}

func (s *scheduleService) Reflow(ctx context.Context, req contract.ChangeRequest) (resp *contract.ChangeResponse, err error) {
	start := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule_reflow",
			Duration:  time.Since(start),
			Success:   err == nil,
			Err:       err,
			StartedAt: start,
			Fields:    map[string]any{"user_id": req.UserID, "day": req.Day.String(), "delete": req.Delete},
		})
	}()

	if req.UserID == "" {
		return nil, invalidFormat("user id is required")
	}
	if verr := req.Day.Validate(); verr != nil {
		return nil, invalidFormat(verr.Error())
	}
	if req.Title == "" && req.EventID == "" {
		return nil, invalidFormat("a title or event id is required")
	}
	if !req.Delete && req.NewStart.MinuteOfDay() >= req.NewEnd.MinuteOfDay() {
		return nil, invalidFormat("new start time must precede new end time")
	}

	profile, perr := s.profiles.Get(ctx, req.UserID)
	if errors.Is(perr, repository.ErrNotFound) {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrNotFound, Message: fmt.Sprintf("no profile for user %q", req.UserID)}
	} else if perr != nil {
		return nil, perr
	}

	cfg := s.promptConfigFor(profile)
	loc := cfg.Location()

	wake, sleep, werr := resolveWindow(profile, "", "")
	if werr != nil {
		return nil, invalidFormat(werr.Error())
	}

	calendarID := domain.CalendarIDForUser(req.UserID)
	existing, lerr := s.events.ListForDay(ctx, calendarID, req.Day, loc)
	if lerr != nil {
		return nil, lerr
	}

	title := req.Title
	if req.EventID != "" {
		target, terr := s.events.GetByID(ctx, calendarID, req.EventID)
		if errors.Is(terr, repository.ErrNotFound) {
			return nil, &contract.ScheduleError{Code: contract.ScheduleErrNotFound, Message: fmt.Sprintf("no event %q", req.EventID)}
		} else if terr != nil {
			return nil, terr
		}
		title = target.Title
	}

	resp = &contract.ChangeResponse{
		GeneratedAt: time.Now().UTC(),
		Day:         req.Day,
	}

	if req.Delete {
		// Delete first so a completion failure can never resurrect the event.
		if req.EventID != "" {
			if derr := s.events.DeleteByID(ctx, calendarID, req.EventID); derr != nil {
				return nil, derr
			}
			resp.DeletedCount = 1
			existing = withoutID(existing, req.EventID)
		} else {
			n, derr := s.events.DeleteByTitle(ctx, calendarID, title)
			if derr != nil {
				return nil, derr
			}
			if n == 0 {
				return nil, &contract.ScheduleError{Code: contract.ScheduleErrNotFound, Message: fmt.Sprintf("no event titled %q", title)}
			}
			resp.DeletedCount = n
			existing = withoutTitle(existing, title)
		}
	} else {
		newStart := req.Day.At(req.NewStart, loc)
		newEnd := req.Day.At(req.NewEnd, loc)
		if req.EventID != "" {
			if uerr := s.events.UpdateTimeByID(ctx, calendarID, req.EventID, newStart, newEnd); uerr != nil {
				return nil, uerr
			}
		} else {
			if _, uerr := s.events.UpdateTimeByTitle(ctx, calendarID, title, newStart, newEnd, s.policy); uerr != nil {
				if errors.Is(uerr, repository.ErrNotFound) {
					return nil, &contract.ScheduleError{Code: contract.ScheduleErrNotFound, Message: uerr.Error()}
				}
				return nil, uerr
			}
		}
		// Refetch so the prompt sees the event at its new position.
		existing, lerr = s.events.ListForDay(ctx, calendarID, req.Day, loc)
		if lerr != nil {
			return nil, lerr
		}
	}
	scheduler.SortChronological(existing)

	// The changed event is pinned for this reflow; only the other movable
	// events may be repositioned.
	var movable, fixed []*domain.Event
	for _, e := range existing {
		if e.Movable && e.Title != title {
			movable = append(movable, e)
		} else {
			fixed = append(fixed, e)
		}
	}

	if len(movable) == 0 {
		return resp, nil
	}

	movableIDs := make(map[string][]string)
	var movableTitles []string
	for _, e := range movable {
		if len(movableIDs[e.Title]) == 0 {
			movableTitles = append(movableTitles, e.Title)
		}
		movableIDs[e.Title] = append(movableIDs[e.Title], e.ID)
	}

	gen, gerr := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskReflow,
		SystemPrompt: cfg.System(),
		UserPrompt: intelligence.BuildChangePrompt(cfg, intelligence.ChangeInput{
			Day:           req.Day,
			Wake:          wake,
			Sleep:         sleep,
			Existing:      existing,
			Title:         title,
			Delete:        req.Delete,
			NewStart:      req.NewStart,
			NewEnd:        req.NewEnd,
			MovableTitles: movableTitles,
		}),
	})
	if gerr != nil {
		return nil, completionError(gerr)
	}

	parsed, perr2 := intelligence.ParseSchedule(gen.Text, req.Day, loc)
	if perr2 != nil {
		return nil, &contract.ScheduleError{Code: contract.ScheduleErrMalformedResponse, Message: perr2.Error()}
	}
	resp.Dropped = parsed.Dropped

	// An empty array is a valid answer here: nothing needed to move.
	candidates := make([]*domain.Event, 0, len(parsed.Events))
	seen := make(map[string]bool)
	for i, ev := range parsed.Events {
		if len(movableIDs[ev.Title]) == 0 {
			resp.IgnoredTitles = append(resp.IgnoredTitles, ev.Title)
			continue
		}
		if seen[ev.Title] {
			resp.Dropped = append(resp.Dropped, contract.DroppedEntry{
				Index:  i,
				Title:  ev.Title,
				Reason: "duplicate entry for this title",
			})
			continue
		}
		seen[ev.Title] = true
		candidates = append(candidates, ev)
	}

	scheduler.SortChronological(candidates)
	if cfg.StrictOverlapCheck {
		// Movable events the model left out may be vacating their old slots,
		// so only the fixed events count as occupied here.
		candidates = rejectOverlaps(candidates, fixed, &resp.Dropped)
	}

	var failed []string
	for _, ev := range candidates {
		ids := movableIDs[ev.Title]
		if s.policy == repository.MatchFirst {
			ids = ids[:1]
		}
		ok := true
		for _, id := range ids {
			if uerr := s.events.UpdateTimeByID(ctx, calendarID, id, ev.StartTime, ev.EndTime); uerr != nil {
				ok = false
				break
			}
		}
		if !ok {
			failed = append(failed, ev.Title)
			continue
		}
		resp.MovedTitles = append(resp.MovedTitles, ev.Title)
	}

	if len(failed) > 0 {
		return resp, &contract.ScheduleError{
			Code:         contract.ScheduleErrPartialApply,
			Message:      "some moves could not be persisted",
			FailedTitles: failed,
		}
	}
	return resp, nil
}

// rejectOverlaps drops candidates that collide with an occupied slot or an
// already-kept candidate.
func rejectOverlaps(candidates, occupied []*domain.Event, dropped *[]contract.DroppedEntry) []*domain.Event {
	var kept []*domain.Event
	for i, c := range candidates {
		collides := false
		for _, o := range occupied {
			if c.Overlaps(o) {
				collides = true
				break
			}
		}
		if !collides {
			for _, k := range kept {
				if c.Overlaps(k) {
					collides = true
					break
				}
			}
		}
		if collides {
			*dropped = append(*dropped, contract.DroppedEntry{
				Index:  i,
				Title:  c.Title,
				Reason: "overlaps another event",
			})
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// promptConfigFor fills the prompt timezone from the profile when the engine
// configuration leaves it unset.
func (s *scheduleService) promptConfigFor(p *domain.UserProfile) intelligence.PromptConfig {
	cfg := s.prompts
	if cfg.Timezone == "" {
		cfg.Timezone = p.Timezone
	}
	return cfg
}

func resolveWindow(p *domain.UserProfile, wakeOverride, sleepOverride string) (wake, sleep timewindow.Clock, err error) {
	wakeStr, sleepStr := p.WindowBounds()
	if wakeOverride != "" {
		wakeStr = wakeOverride
	}
	if sleepOverride != "" {
		sleepStr = sleepOverride
	}
	if wake, err = timewindow.ParseClock(wakeStr); err != nil {
		return wake, sleep, fmt.Errorf("wake time: %w", err)
	}
	if sleep, err = timewindow.ParseClock(sleepStr); err != nil {
		return wake, sleep, fmt.Errorf("sleep time: %w", err)
	}
	return wake, sleep, nil
}

func completionError(err error) *contract.ScheduleError {
	if errors.Is(err, llm.ErrInvalidOutput) {
		return &contract.ScheduleError{Code: contract.ScheduleErrMalformedResponse, Message: err.Error()}
	}
	return &contract.ScheduleError{Code: contract.ScheduleErrCompletionUnavailable, Message: err.Error()}
}

func invalidFormat(msg string) *contract.ScheduleError {
	return &contract.ScheduleError{Code: contract.ScheduleErrInvalidFormat, Message: msg}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func withoutID(events []*domain.Event, id string) []*domain.Event {
	var out []*domain.Event
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func withoutTitle(events []*domain.Event, title string) []*domain.Event {
	var out []*domain.Event
	for _, e := range events {
		if e.Title != title {
			out = append(out, e)
		}
	}
	return out
}
