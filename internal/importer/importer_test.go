package importer_test

import (
	"strings"
	"testing"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:ev-1
DTSTAMP:20260310T000000Z
DTSTART:20260314T090000Z
DTEND:20260314T100000Z
SUMMARY:Dentist
DESCRIPTION:Annual checkup
LOCATION:Main St 4
END:VEVENT
BEGIN:VEVENT
UID:ev-2
DTSTAMP:20260310T000000Z
DTSTART:20260314T120000Z
DTEND:20260314T120000Z
SUMMARY:Zero length
END:VEVENT
BEGIN:VEVENT
UID:ev-3
DTSTAMP:20260310T000000Z
DTSTART:20260314T140000Z
DTEND:20260314T150000Z
END:VEVENT
BEGIN:VEVENT
UID:ev-4
DTSTAMP:20260310T000000Z
DTSTART;VALUE=DATE:20260314
DTEND;VALUE=DATE:20260315
SUMMARY:Public holiday
END:VEVENT
END:VCALENDAR
`

func TestParseICS(t *testing.T) {
	res, err := importer.ParseICS(strings.NewReader(sampleICS), "alice_calendar")
	require.NoError(t, err)

	require.Len(t, res.Events, 1, "only the well-formed timed VEVENT converts")
	ev := res.Events[0]
	assert.Equal(t, "Dentist", ev.Title)
	assert.Equal(t, "Annual checkup", ev.Description)
	assert.Equal(t, "Main St 4", ev.Location)
	assert.Equal(t, "alice_calendar", ev.CalendarID)
	assert.Equal(t, domain.CategoryImported, ev.Category)
	assert.False(t, ev.Movable, "imported events stay fixed")
	assert.False(t, ev.Recurring)
	require.NoError(t, ev.Validate())

	require.Len(t, res.Skipped, 3)
	skippedUIDs := make(map[string]string)
	for _, s := range res.Skipped {
		skippedUIDs[s.UID] = s.Reason
	}
	assert.Contains(t, skippedUIDs["ev-2"], "not after")
	assert.Contains(t, skippedUIDs["ev-3"], "SUMMARY")
	assert.Contains(t, skippedUIDs["ev-4"], "all-day")
}

func TestParseICS_UnreadablePayload(t *testing.T) {
	_, err := importer.ParseICS(strings.NewReader("not an ics file"), "alice_calendar")
	assert.Error(t, err)
}

func TestParseICS_EmptyCalendar(t *testing.T) {
	payload := "BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//test//test//EN\nEND:VCALENDAR\n"
	res, err := importer.ParseICS(strings.NewReader(payload), "alice_calendar")
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Skipped)
}
