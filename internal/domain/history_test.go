package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskHistoryRecordObserve_WindowBound(t *testing.T) {
	r := &TaskHistoryRecord{UserID: "u1", TaskName: "Laundry"}

	for _, d := range []int{10, 20, 30, 40, 50} {
		r.Observe(d)
		assert.LessOrEqual(t, len(r.DurationsMin), HistoryWindowSize)
	}

	// Only the three most recent remain, oldest first.
	assert.Equal(t, []int{30, 40, 50}, r.DurationsMin)
}

func TestTaskHistoryRecordAverageMin(t *testing.T) {
	r := &TaskHistoryRecord{}
	assert.Equal(t, 0, r.AverageMin())

	r.Observe(10)
	r.Observe(20)
	r.Observe(31)
	assert.Equal(t, 20, r.AverageMin())
}

func TestUserProfileWindowBounds(t *testing.T) {
	p := &UserProfile{UserID: "u1"}
	wake, sleep := p.WindowBounds()
	assert.Equal(t, DefaultWakeTime, wake)
	assert.Equal(t, DefaultSleepTime, sleep)

	p.WakeTime = "06:30"
	p.SleepTime = "22:00"
	wake, sleep = p.WindowBounds()
	assert.Equal(t, "06:30", wake)
	assert.Equal(t, "22:00", sleep)
}
