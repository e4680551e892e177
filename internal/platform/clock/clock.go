package clock

import "time"

// Clock abstracts wall-clock time so services stay deterministic in tests.
// Session durations and week boundaries are derived from Now at read time,
// never from background timers.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
