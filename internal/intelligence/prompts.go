package intelligence

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// defaultSystemPrompt instructs the completion service to act as a day
// scheduler and pins the output contract the parser depends on.
const defaultSystemPrompt = `You are a daily schedule assistant for a personal planner called Dayweave.
You receive a user's day (its waking window and existing calendar events) and a scheduling instruction.

You must output ONLY a JSON array. Each element must have these exact fields:
- task_name: string (the event title, copied exactly)
- task_desc: string (at most 10 words)
- rec_freq: one of [none, daily, weekly, monthly, bi-weekly]
- rec_num: integer >= 0 (0 unless the event recurs)
- start_time: zero-padded 24-hour "HH:MM"
- end_time: zero-padded 24-hour "HH:MM"

CRITICAL RULES:
1. Every event must fit inside the stated day window
2. Return the events in chronological order by start_time
3. No two events may overlap
4. Never invent events that were not listed or requested
5. Include every requested addition exactly once
6. Do not change events you were not asked to move
7. Output ONLY the JSON array, no markdown, no explanation`

// PromptConfig carries the caller-supplied options for prompt construction.
// There is no package-level mutable state: the same config and inputs always
// produce the same instruction text.
type PromptConfig struct {
	SystemPrompt       string
	Timezone           string // IANA name; empty means local time
	StrictOverlapCheck bool   // reject overlapping movable entries after parsing
}

// DefaultPromptConfig returns the standard configuration.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompt:       defaultSystemPrompt,
		StrictOverlapCheck: true,
	}
}

// System returns the effective system prompt.
func (c PromptConfig) System() string {
	if c.SystemPrompt != "" {
		return c.SystemPrompt
	}
	return defaultSystemPrompt
}

// Location resolves the configured timezone, falling back to local time on
// empty or unknown names.
func (c PromptConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// PlacementInput describes one Flow A prompt: the day, its window, the
// existing events, the tasks to add, and optionally their duration history.
type PlacementInput struct {
	Day       timewindow.Day
	Wake      timewindow.Clock
	Sleep     timewindow.Clock
	Existing  []*domain.Event
	TaskNames []string

	// History maps task name to its most recent durations in minutes,
	// oldest first. Nil disables history enrichment.
	History map[string][]int
}

// ChangeInput describes one Flow B prompt: a single event moved or deleted,
// and the titles the model is allowed to reposition.
type ChangeInput struct {
	Day      timewindow.Day
	Wake     timewindow.Clock
	Sleep    timewindow.Clock
	Existing []*domain.Event

	Title    string
	Delete   bool
	NewStart timewindow.Clock
	NewEnd   timewindow.Clock

	MovableTitles []string
}

// BuildPlacementPrompt composes the user prompt for initial placement.
func BuildPlacementPrompt(cfg PromptConfig, in PlacementInput) string {
	var b strings.Builder

	writeDayHeader(&b, cfg, in.Day, in.Wake, in.Sleep)
	writeExistingEvents(&b, cfg, in.Existing)

	fmt.Fprintf(&b, "\nAdd the following tasks to this day: %s.\n", strings.Join(in.TaskNames, ", "))

	if len(in.History) > 0 {
		b.WriteString("\nRecent durations for these tasks (minutes, oldest first):\n")
		names := make([]string, 0, len(in.History))
		for name := range in.History {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			durations := make([]string, 0, len(in.History[name]))
			for _, d := range in.History[name] {
				durations = append(durations, fmt.Sprintf("%d", d))
			}
			fmt.Fprintf(&b, "- %s: %s\n", name, strings.Join(durations, ", "))
		}
		b.WriteString("Size each task's slot to roughly its recent durations.\n")
	}

	writeOutputContract(&b, in.TaskNames)
	return b.String()
}

// BuildChangePrompt composes the user prompt for a schedule modification.
func BuildChangePrompt(cfg PromptConfig, in ChangeInput) string {
	var b strings.Builder

	writeDayHeader(&b, cfg, in.Day, in.Wake, in.Sleep)
	writeExistingEvents(&b, cfg, in.Existing)

	if in.Delete {
		fmt.Fprintf(&b, "\nThe event %q has been deleted from this day.\n", in.Title)
	} else {
		fmt.Fprintf(&b, "\nThe event %q has been moved to %s-%s.\n",
			in.Title, in.NewStart, in.NewEnd)
	}

	if len(in.MovableTitles) == 0 {
		b.WriteString("No events may be repositioned; return an empty JSON array [].\n")
	} else {
		fmt.Fprintf(&b, "You may reposition ONLY these events: %s. Leave every other event exactly where it is and do not include it in your output.\n",
			strings.Join(in.MovableTitles, ", "))
	}

	writeOutputContract(&b, nil)
	return b.String()
}

func writeDayHeader(b *strings.Builder, cfg PromptConfig, day timewindow.Day, wake, sleep timewindow.Clock) {
	fmt.Fprintf(b, "Day: %s\nDay window: %s to %s\n", day, wake, sleep)
}

// writeExistingEvents serializes the day's events one per line with a stable
// field order: title, description, recurrence frequency, recurrence count,
// start, end.
func writeExistingEvents(b *strings.Builder, cfg PromptConfig, events []*domain.Event) {
	if len(events) == 0 {
		b.WriteString("Existing events: none\n")
		return
	}

	loc := cfg.Location()
	b.WriteString("Existing events:\n")
	for _, e := range events {
		fmt.Fprintf(b, "- title=%q desc=%q rec_freq=%s rec_num=%d start=%s end=%s\n",
			e.Title,
			e.Description,
			e.RecurrenceType,
			e.RecurrenceCount,
			timewindow.FormatClock(e.StartTime, loc),
			timewindow.FormatClock(e.EndTime, loc),
		)
	}
}

func writeOutputContract(b *strings.Builder, requested []string) {
	b.WriteString("\nRespond with the complete schedule for this day as a JSON array, chronologically ordered, without overlaps, and without any event that was not listed or requested.")
	if len(requested) > 0 {
		fmt.Fprintf(b, " Your output must include every requested addition: %s.", strings.Join(requested, ", "))
	}
	b.WriteString("\n")
}
