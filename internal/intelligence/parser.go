package intelligence

import (
	"fmt"
	"time"

	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/llm"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// ParseResult holds the normalized events recovered from a completion
// response plus diagnostics for every element that was dropped.
type ParseResult struct {
	Events  []*domain.Event
	Dropped []contract.DroppedEntry
}

// ParseSchedule extracts the JSON schedule array from raw completion output
// and normalizes each valid element into an Event stamped onto the target
// day. Invalid elements are dropped and recorded, never fatal; only a
// missing or undecodable array fails the whole parse (llm.ErrInvalidOutput).
//
// Returned events carry no CalendarID and no ID; the reconciliation engine
// decides what, if anything, gets persisted.
func ParseSchedule(raw string, day timewindow.Day, loc *time.Location) (*ParseResult, error) {
	entries, err := llm.ExtractJSONArray[ScheduleEntry](raw, nil)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{}
	for i, entry := range entries {
		start, end, verr := entry.validate()
		if verr != nil {
			res.Dropped = append(res.Dropped, contract.DroppedEntry{
				Index:  i,
				Title:  entry.TaskName,
				Reason: verr.Error(),
			})
			continue
		}

		recType := domain.RecurrenceType(entry.RecFreq)
		ev := &domain.Event{
			Title:           entry.TaskName,
			Description:     entry.TaskDesc,
			Category:        domain.CategoryMicrotask,
			StartTime:       day.At(start, loc),
			EndTime:         day.At(end, loc),
			Recurring:       recType != domain.RecurrenceNone,
			RecurrenceType:  recType,
			RecurrenceCount: entry.RecNum,
			Movable:         true,
		}
		ev.Normalize()
		res.Events = append(res.Events, ev)
	}

	return res, nil
}

// DropReason renders a dropped entry for logs and CLI output.
func DropReason(d contract.DroppedEntry) string {
	title := d.Title
	if title == "" {
		title = "<unnamed>"
	}
	return fmt.Sprintf("entry %d (%s): %s", d.Index, title, d.Reason)
}
