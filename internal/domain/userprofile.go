package domain

import "fmt"

// UserProfile holds the per-user settings the scheduling engine depends on.
// WakeTime and SleepTime bound the default day window and are stored as
// zero-padded 24-hour "HH:MM" strings.
type UserProfile struct {
	UserID      string
	DisplayName string
	WakeTime    string
	SleepTime   string
	Timezone    string // IANA name, e.g. "Europe/Berlin"; empty means local
}

// DefaultWakeTime and DefaultSleepTime are used when a profile leaves the
// day window unset.
const (
	DefaultWakeTime  = "07:00"
	DefaultSleepTime = "23:00"
)

// Validate checks profile invariants.
func (p *UserProfile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	return nil
}

// WindowBounds returns the wake/sleep clock strings, falling back to the
// defaults for unset fields.
func (p *UserProfile) WindowBounds() (wake, sleep string) {
	wake, sleep = p.WakeTime, p.SleepTime
	if wake == "" {
		wake = DefaultWakeTime
	}
	if sleep == "" {
		sleep = DefaultSleepTime
	}
	return wake, sleep
}
