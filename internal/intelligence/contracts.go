package intelligence

import (
	"fmt"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/timewindow"
)

// ScheduleEntry is one element of the JSON array the completion service is
// instructed to return. The keys and the rec_freq literals are a stable wire
// contract; changing them requires changing the prompt in lockstep.
type ScheduleEntry struct {
	TaskName  string `json:"task_name"`
	TaskDesc  string `json:"task_desc"`
	RecFreq   string `json:"rec_freq"`
	RecNum    int    `json:"rec_num"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// validate checks one entry against the wire schema. It returns the parsed
// clock bounds on success so callers do not parse twice.
func (e ScheduleEntry) validate() (start, end timewindow.Clock, err error) {
	if e.TaskName == "" {
		return start, end, fmt.Errorf("task_name is required")
	}
	if !domain.ValidRecurrenceTypes[domain.RecurrenceType(e.RecFreq)] {
		return start, end, fmt.Errorf("rec_freq %q is not one of none, daily, weekly, monthly, bi-weekly", e.RecFreq)
	}
	if e.RecNum < 0 {
		return start, end, fmt.Errorf("rec_num must be non-negative, got %d", e.RecNum)
	}
	start, err = timewindow.ParseClock(e.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("start_time: %v", err)
	}
	end, err = timewindow.ParseClock(e.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("end_time: %v", err)
	}
	if start.MinuteOfDay() >= end.MinuteOfDay() {
		return start, end, fmt.Errorf("start_time %s must precede end_time %s", e.StartTime, e.EndTime)
	}
	return start, end, nil
}
