package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleLine struct {
	TaskName  string `json:"task_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func TestExtractJSONArray_PlainArray(t *testing.T) {
	raw := `[{"task_name":"Laundry","start_time":"07:30","end_time":"08:00"}]`

	got, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Laundry", got[0].TaskName)
	assert.Equal(t, "07:30", got[0].StartTime)
}

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the schedule you asked for:\n" +
		`[{"task_name":"Laundry","start_time":"07:30","end_time":"08:00"},` +
		`{"task_name":"Trash","start_time":"08:00","end_time":"08:15"}]` +
		"\nLet me know if you need anything else."

	got, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestExtractJSONArray_CodeFences(t *testing.T) {
	raw := "```json\n[{\"task_name\":\"Laundry\",\"start_time\":\"07:30\",\"end_time\":\"08:00\"}]\n```"

	got, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExtractJSONArray_CommentsStripped(t *testing.T) {
	raw := `[
		// morning chores
		{"task_name":"Laundry","start_time":"07:30","end_time":"08:00"}
	]`

	got, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExtractJSONArray_BracketsInsideStrings(t *testing.T) {
	raw := `[{"task_name":"Buy gifts [urgent]","start_time":"07:30","end_time":"08:00"}]`

	got, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy gifts [urgent]", got[0].TaskName)
}

func TestExtractJSONArray_NoOpeningBracket(t *testing.T) {
	_, err := ExtractJSONArray[scheduleLine]("I could not produce a schedule.", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_UnbalancedBrackets(t *testing.T) {
	_, err := ExtractJSONArray[scheduleLine](`[{"task_name":"Laundry"`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_InvalidJSON(t *testing.T) {
	_, err := ExtractJSONArray[scheduleLine](`[{"task_name": Laundry}]`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSONArray_ValidatorRejects(t *testing.T) {
	raw := `[{"task_name":"","start_time":"07:30","end_time":"08:00"}]`

	_, err := ExtractJSONArray(raw, func(lines []scheduleLine) error {
		for _, l := range lines {
			if l.TaskName == "" {
				return assert.AnError
			}
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

// Re-parsing the same text yields identical results.
func TestExtractJSONArray_Idempotent(t *testing.T) {
	raw := "Here you go:\n```\n" +
		`[{"task_name":"Laundry","start_time":"07:30","end_time":"08:00"}]` +
		"\n```"

	first, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	second, err := ExtractJSONArray[scheduleLine](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractJSONArray_EmptyArray(t *testing.T) {
	got, err := ExtractJSONArray[scheduleLine]("[]", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
