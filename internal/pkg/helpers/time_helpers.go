package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

var weekdayNumbers = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// NextMonday returns the next Monday on or after the given date. Exam weeks
// derived from the class timetable start on a Monday.
func NextMonday(from time.Time) time.Time {
	daysAhead := (int(time.Monday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, daysAhead)
}

// NextWeekday returns the first occurrence of the named weekday on or after
// the start date.
func NextWeekday(start time.Time, weekday string) (time.Time, error) {
	target, ok := weekdayNumbers[weekday]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday %q", weekday)
	}
	daysAhead := (int(target) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, daysAhead), nil
}
