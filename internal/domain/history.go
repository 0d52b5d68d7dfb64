package domain

// HistoryWindowSize is the number of recent duration observations kept per
// recurring task.
const HistoryWindowSize = 3

// TaskHistoryRecord tracks how long a recurring task actually took the last
// few times it was done. Durations are minutes, oldest first.
type TaskHistoryRecord struct {
	UserID       string
	TaskName     string
	DurationsMin []int
}

// Observe appends a new duration observation, dropping the oldest when the
// window exceeds HistoryWindowSize.
func (r *TaskHistoryRecord) Observe(minutes int) {
	r.DurationsMin = append(r.DurationsMin, minutes)
	if len(r.DurationsMin) > HistoryWindowSize {
		r.DurationsMin = r.DurationsMin[len(r.DurationsMin)-HistoryWindowSize:]
	}
}

// AverageMin returns the mean of the recorded durations, or 0 when empty.
func (r *TaskHistoryRecord) AverageMin() int {
	if len(r.DurationsMin) == 0 {
		return 0
	}
	sum := 0
	for _, d := range r.DurationsMin {
		sum += d
	}
	return sum / len(r.DurationsMin)
}
