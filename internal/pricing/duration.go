package pricing

import (
	"math"
	"time"
)

// Duration is a billable span resolved from a timestamp pair.
type Duration struct {
	Hours int
	Days  int
}

// ResolveDuration converts a start/end pair into billable hour and day
// counts. Any positive span rounds up, never down, and a zero or negative
// span clamps to the one-hour/one-day minimum instead of raising.
func ResolveDuration(startAt, endAt time.Time) Duration {
	span := endAt.Sub(startAt)

	hours := int(math.Ceil(span.Hours()))
	if hours < 1 {
		hours = 1
	}

	days := int(math.Ceil(float64(hours) / 24))
	if days < 1 {
		days = 1
	}

	return Duration{Hours: hours, Days: days}
}
