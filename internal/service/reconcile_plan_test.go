package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/llm"
	"github.com/avnerell/dayweave/internal/repository"
	"github.com/avnerell/dayweave/internal/scheduler"
	"github.com/avnerell/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placementRequest(tasks ...string) contract.PlacementRequest {
	return contract.PlacementRequest{UserID: "alice", Day: testDay, TaskNames: tasks}
}

func TestPlan_PlacesRequestedTask(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Breakfast", "08:00", "08:30"),
		entry("Laundry", "10:00", "10:45"),
	)}}
	f := newEngine(t, fake)
	ctx := context.Background()

	at := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	_, err := f.events.Create(ctx, testutil.NewTestEvent(f.cal, "Breakfast", testutil.WithTimes(at, at.Add(30*time.Minute))))
	require.NoError(t, err)

	resp, err := f.svc.Plan(ctx, placementRequest("Laundry"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Laundry"}, resp.CreatedTitles)
	assert.Equal(t, []string{"Breakfast"}, resp.DiscardedTitles, "existing event echoed by the model is not re-created")
	assert.Empty(t, resp.UnrealizedTitles)
	assert.ElementsMatch(t, []string{"Breakfast", "Laundry"}, f.dayTitles(t))

	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0].UserPrompt, `title="Breakfast"`)
	assert.Contains(t, fake.Calls[0].UserPrompt, "Laundry")
	assert.Equal(t, llm.TaskPlacement, fake.Calls[0].Task)
}

func TestPlan_UnrequestedTitleNeverCreated(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "10:45"),
		entry("Lunch", "12:00", "12:30"),
	)}}
	f := newEngine(t, fake)

	resp, err := f.svc.Plan(context.Background(), placementRequest("Laundry"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Laundry"}, resp.CreatedTitles)
	assert.Equal(t, []string{"Lunch"}, resp.DiscardedTitles)
	assert.Equal(t, []string{"Laundry"}, f.dayTitles(t), "the volunteered Lunch never reaches the store")
}

func TestPlan_SkipsAlreadyExistingTitle(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "10:45"),
	)}}
	f := newEngine(t, fake)
	ctx := context.Background()

	_, err := f.events.Create(ctx, testutil.NewTestEvent(f.cal, "Laundry"))
	require.NoError(t, err)

	resp, err := f.svc.Plan(ctx, placementRequest("Laundry"))
	require.NoError(t, err)

	assert.Empty(t, resp.CreatedTitles)
	assert.Equal(t, []string{"Laundry"}, resp.SkippedTitles)
	assert.Equal(t, []string{"Laundry"}, f.dayTitles(t), "no duplicate created")
}

func TestPlan_MalformedResponseLeavesStoreUntouched(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{"I could not produce a schedule today."}}
	f := newEngine(t, fake)

	_, err := f.svc.Plan(context.Background(), placementRequest("Laundry"))

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrMalformedResponse, serr.Code)
	assert.Empty(t, f.dayTitles(t))
}

func TestPlan_AllEntriesInvalidIsEmptySchedule(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "25:00", "26:00"),
		entry("", "10:00", "11:00"),
	)}}
	f := newEngine(t, fake)

	_, err := f.svc.Plan(context.Background(), placementRequest("Laundry"))

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrEmptySchedule, serr.Code)
	assert.Empty(t, f.dayTitles(t))
}

func TestPlan_DroppedEntryDoesNotAbortBatch(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "9:45"),
		entry("Dishes", "11:00", "11:20"),
	)}}
	f := newEngine(t, fake)

	resp, err := f.svc.Plan(context.Background(), placementRequest("Laundry", "Dishes"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Dishes"}, resp.CreatedTitles)
	assert.Equal(t, []string{"Laundry"}, resp.UnrealizedTitles)
	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, "Laundry", resp.Dropped[0].Title)
}

func TestPlan_OverlappingCandidatePairRejected(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "10:45"),
		entry("Dishes", "10:30", "11:00"),
	)}}
	f := newEngine(t, fake)
	ctx := context.Background()

	resp, err := f.svc.Plan(ctx, placementRequest("Laundry", "Dishes"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Laundry"}, resp.CreatedTitles, "the chronologically earlier candidate wins")
	assert.Equal(t, []string{"Dishes"}, resp.UnrealizedTitles)
	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, "Dishes", resp.Dropped[0].Title)

	day, lerr := f.events.ListForDay(ctx, f.cal, testDay, time.UTC)
	require.NoError(t, lerr)
	assert.False(t, scheduler.HasOverlap(day), "the stored day stays overlap-free")
}

func TestPlan_CandidateOverlappingExistingEventRejected(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Breakfast", "08:00", "08:30"),
		entry("Laundry", "08:15", "09:00"),
	)}}
	f := newEngine(t, fake)
	ctx := context.Background()

	at := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	_, err := f.events.Create(ctx, testutil.NewTestEvent(f.cal, "Breakfast", testutil.WithTimes(at, at.Add(30*time.Minute))))
	require.NoError(t, err)

	resp, perr := f.svc.Plan(ctx, placementRequest("Laundry"))
	require.NoError(t, perr)

	assert.Empty(t, resp.CreatedTitles)
	assert.Equal(t, []string{"Laundry"}, resp.UnrealizedTitles)
	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, "Laundry", resp.Dropped[0].Title)
	assert.Equal(t, []string{"Breakfast"}, f.dayTitles(t), "the colliding slot never reaches the store")
}

func TestPlan_RelaxedOverlapCheckTrustsTheResponse(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "10:45"),
		entry("Dishes", "10:30", "11:00"),
	)}}
	cfg := testPromptConfig()
	cfg.StrictOverlapCheck = false
	f := newEngineCfg(t, fake, cfg)

	resp, err := f.svc.Plan(context.Background(), placementRequest("Laundry", "Dishes"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Laundry", "Dishes"}, resp.CreatedTitles)
	assert.Empty(t, resp.Dropped)
}

// rejectingEventRepo refuses to persist events with one given title.
type rejectingEventRepo struct {
	repository.EventRepo
	rejectTitle string
}

func (r *rejectingEventRepo) Create(ctx context.Context, e *domain.Event) (string, error) {
	if e.Title == r.rejectTitle {
		return "", errors.New("write refused")
	}
	return r.EventRepo.Create(ctx, e)
}

func TestPlan_PartialApplyReportsFailedTitles(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(
		entry("Laundry", "10:00", "10:45"),
		entry("Dishes", "11:00", "11:20"),
	)}}
	f := newFaultyEngine(t, fake, func(inner repository.EventRepo) repository.EventRepo {
		return &rejectingEventRepo{EventRepo: inner, rejectTitle: "Dishes"}
	})

	resp, err := f.svc.Plan(context.Background(), placementRequest("Laundry", "Dishes"))

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrPartialApply, serr.Code)
	assert.Equal(t, []string{"Dishes"}, serr.FailedTitles)

	require.NotNil(t, resp, "the partial response accompanies the error")
	assert.Equal(t, []string{"Laundry"}, resp.CreatedTitles)
	assert.Equal(t, []string{"Dishes"}, resp.UnrealizedTitles)
	assert.Equal(t, []string{"Laundry"}, f.dayTitles(t))
}

func TestPlan_CompletionUnavailable(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Err: llm.ErrUnavailable}
	f := newEngine(t, fake)

	_, err := f.svc.Plan(context.Background(), placementRequest("Laundry"))

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrCompletionUnavailable, serr.Code)
}

func TestPlan_UnknownUser(t *testing.T) {
	f := newEngine(t, &testutil.FakeCompletionClient{})

	_, err := f.svc.Plan(context.Background(), contract.PlacementRequest{
		UserID: "nobody", Day: testDay, TaskNames: []string{"Laundry"},
	})

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrNotFound, serr.Code)
}

func TestPlan_RejectsEmptyTaskList(t *testing.T) {
	f := newEngine(t, &testutil.FakeCompletionClient{})

	_, err := f.svc.Plan(context.Background(), placementRequest())

	var serr *contract.ScheduleError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, contract.ScheduleErrInvalidFormat, serr.Code)
	assert.Empty(t, f.fake.Calls, "no completion call for an invalid request")
}

func TestPlan_WindowBoundsFlowIntoPrompt(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(entry("Laundry", "10:00", "10:45"))}}
	f := newEngine(t, fake)

	req := placementRequest("Laundry")
	req.WakeTime = "06:15"
	req.SleepTime = "21:30"
	_, err := f.svc.Plan(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0].UserPrompt, "06:15")
	assert.Contains(t, fake.Calls[0].UserPrompt, "21:30")
}

func TestPlan_HistoryEnrichesPromptAndTask(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(entry("Laundry", "10:00", "10:35"))}}
	f := newEngine(t, fake)
	ctx := context.Background()

	for _, m := range []int{30, 35, 40} {
		_, err := f.history.Record(ctx, "alice", "Laundry", m)
		require.NoError(t, err)
	}

	req := placementRequest("Laundry")
	req.UseHistory = true
	_, err := f.svc.Plan(ctx, req)
	require.NoError(t, err)

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, llm.TaskHistoryPlacement, fake.Calls[0].Task)
	assert.Contains(t, fake.Calls[0].UserPrompt, "30, 35, 40")
}

func TestPlan_HistoryFlagWithoutRecordsFallsBack(t *testing.T) {
	fake := &testutil.FakeCompletionClient{Responses: []string{schedule(entry("Laundry", "10:00", "10:45"))}}
	f := newEngine(t, fake)

	req := placementRequest("Laundry")
	req.UseHistory = true
	_, err := f.svc.Plan(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, llm.TaskPlacement, fake.Calls[0].Task)
}
