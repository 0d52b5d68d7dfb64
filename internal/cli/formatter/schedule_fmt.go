package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avnerell/dayweave/internal/contract"
	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/intelligence"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// RenderDay renders one day's events as a table with movable markers.
// Events are expected in chronological order.
func RenderDay(day timewindow.Day, events []*domain.Event, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Header("Schedule " + day.String()))
	b.WriteString("\n")

	if len(events) == 0 {
		b.WriteString(Dim("no events") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			MovableMarker(e.Movable),
			timewindow.FormatClock(e.StartTime, loc) + "-" + timewindow.FormatClock(e.EndTime, loc),
			CategoryStyle(e.Category).Render(e.Title),
			Dim(e.Category),
			Dim(e.Description),
		})
	}
	b.WriteString(RenderTable([]string{"", "Time", "Title", "Category", "Notes"}, rows))
	return b.String()
}

// RenderPlacement summarizes a Flow A outcome.
func RenderPlacement(resp *contract.PlacementResponse) string {
	var b strings.Builder
	if len(resp.CreatedTitles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("placed:"), strings.Join(resp.CreatedTitles, ", "))
	}
	if len(resp.SkippedTitles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("already scheduled:"), strings.Join(resp.SkippedTitles, ", "))
	}
	if len(resp.UnrealizedTitles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("not placed:"), strings.Join(resp.UnrealizedTitles, ", "))
	}
	writeDropped(&b, resp.Dropped)
	return b.String()
}

// RenderChange summarizes a Flow B outcome.
func RenderChange(resp *contract.ChangeResponse) string {
	var b strings.Builder
	if resp.DeletedCount > 0 {
		fmt.Fprintf(&b, "%s %d event(s)\n", StyleRed.Render("removed:"), resp.DeletedCount)
	}
	if len(resp.MovedTitles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("repositioned:"), strings.Join(resp.MovedTitles, ", "))
	}
	if len(resp.IgnoredTitles) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("left untouched:"), strings.Join(resp.IgnoredTitles, ", "))
	}
	writeDropped(&b, resp.Dropped)
	return b.String()
}

func writeDropped(b *strings.Builder, dropped []contract.DroppedEntry) {
	for _, d := range dropped {
		fmt.Fprintf(b, "%s %s\n", StyleYellow.Render("dropped:"), intelligence.DropReason(d))
	}
}
