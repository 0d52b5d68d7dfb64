package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/avnerell/dayweave/internal/intelligence"
	"github.com/avnerell/dayweave/internal/repository"
	"github.com/avnerell/dayweave/internal/service"
	"github.com/avnerell/dayweave/internal/testutil"
	"github.com/avnerell/dayweave/internal/timewindow"
	"github.com/stretchr/testify/require"
)

var testDay = timewindow.Day{Year: 2026, Month: time.March, Day: 14}

type engineFixture struct {
	svc      service.ScheduleService
	events   *repository.DocEventRepo
	profiles *repository.DocUserProfileRepo
	history  *repository.DocTaskHistoryRepo
	fake     *testutil.FakeCompletionClient
	cal      string
}

// newEngine wires a reconciliation engine over an in-memory store with a
// seeded "alice" profile (07:00-23:00, UTC).
func newEngine(t *testing.T, fake *testutil.FakeCompletionClient) *engineFixture {
	t.Helper()
	return buildEngine(t, fake, testPromptConfig(), nil)
}

// newEngineCfg is newEngine with a caller-supplied prompt config.
func newEngineCfg(t *testing.T, fake *testutil.FakeCompletionClient, cfg intelligence.PromptConfig) *engineFixture {
	t.Helper()
	return buildEngine(t, fake, cfg, nil)
}

// newFaultyEngine wraps the event repo seen by the engine for fault
// injection. The fixture's own repo field still writes directly.
func newFaultyEngine(t *testing.T, fake *testutil.FakeCompletionClient, wrap func(repository.EventRepo) repository.EventRepo) *engineFixture {
	t.Helper()
	return buildEngine(t, fake, testPromptConfig(), wrap)
}

func testPromptConfig() intelligence.PromptConfig {
	cfg := intelligence.DefaultPromptConfig()
	cfg.Timezone = "UTC"
	return cfg
}

func buildEngine(t *testing.T, fake *testutil.FakeCompletionClient, cfg intelligence.PromptConfig, wrap func(repository.EventRepo) repository.EventRepo) *engineFixture {
	t.Helper()
	store := testutil.NewTestStore(t)
	events := repository.NewDocEventRepo(store)
	profiles := repository.NewDocUserProfileRepo(store)
	history := repository.NewDocTaskHistoryRepo(store)

	require.NoError(t, profiles.Upsert(context.Background(), testutil.NewTestProfile("alice")))

	var engineEvents repository.EventRepo = events
	if wrap != nil {
		engineEvents = wrap(events)
	}

	return &engineFixture{
		svc:      service.NewScheduleService(engineEvents, profiles, history, fake, cfg, repository.MatchFirst, nil),
		events:   events,
		profiles: profiles,
		history:  history,
		fake:     fake,
		cal:      "alice_calendar",
	}
}

// dayTitles returns the stored titles for alice's test day, chronologically.
func (f *engineFixture) dayTitles(t *testing.T) []string {
	t.Helper()
	events, err := service.NewEventService(f.events, f.profiles, repository.MatchFirst).
		ListDay(context.Background(), "alice", testDay)
	require.NoError(t, err)
	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	return titles
}

func entry(name, start, end string) string {
	return fmt.Sprintf(`{"task_name":%q,"task_desc":"","rec_freq":"none","rec_num":0,"start_time":%q,"end_time":%q}`,
		name, start, end)
}

func schedule(entries ...string) string {
	return "[" + strings.Join(entries, ",") + "]"
}
