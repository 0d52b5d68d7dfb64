// Package scheduler holds the deterministic post-parse hardening pass the
// reconciliation engine runs over completion-service output. The model is
// instructed to return a chronological, overlap-free schedule, but that is a
// natural-language contract; this package enforces it.
package scheduler

import (
	"sort"
	"time"

	"github.com/avnerell/dayweave/internal/domain"
)

// SortChronological sorts events in place by start time, breaking ties by
// end time and then title for a stable, deterministic order.
func SortChronological(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if !a.EndTime.Equal(b.EndTime) {
			return a.EndTime.Before(b.EndTime)
		}
		return a.Title < b.Title
	})
}

// DropOverlapping sorts events chronologically and rejects every event that
// overlaps an earlier kept one. The earlier event wins; the later one is
// returned in rejected, in input-independent chronological order.
func DropOverlapping(events []*domain.Event) (kept, rejected []*domain.Event) {
	sorted := make([]*domain.Event, len(events))
	copy(sorted, events)
	SortChronological(sorted)

	var lastEnd time.Time
	for _, e := range sorted {
		if len(kept) > 0 && e.StartTime.Before(lastEnd) {
			rejected = append(rejected, e)
			continue
		}
		kept = append(kept, e)
		lastEnd = e.EndTime
	}
	return kept, rejected
}

// HasOverlap reports whether any two events in the slice overlap.
func HasOverlap(events []*domain.Event) bool {
	sorted := make([]*domain.Event, len(events))
	copy(sorted, events)
	SortChronological(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartTime.Before(sorted[i-1].EndTime) {
			return true
		}
	}
	return false
}

// FitsWindow reports whether the event lies entirely inside [start, end).
func FitsWindow(e *domain.Event, start, end time.Time) bool {
	return !e.StartTime.Before(start) && !e.EndTime.After(end)
}
