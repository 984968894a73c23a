package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical wire format for exam dates.
const DateLayout = "2006-01-02"

// ClockLayout is the canonical wire format for times of day.
const ClockLayout = "15:04"

// ErrInvalidInterval reports a malformed time interval (end <= start or an
// unparseable clock value). It is a fatal input error: a run that carries one
// is aborted rather than deferred.
var ErrInvalidInterval = errors.New("invalid time interval")

// Interval is a half-open [Start, End) time range within a single day,
// expressed in minutes since midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseClock converts an HH:MM string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad clock value %q", ErrInvalidInterval, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseInterval builds an Interval from HH:MM start and end values.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: s, End: e}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: end %q must be after start %q", ErrInvalidInterval, end, start)
	}
	return iv, nil
}

// Valid reports whether the interval is well formed.
func (i Interval) Valid() bool {
	return i.End > i.Start
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// String renders the interval back to HH:MM-HH:MM form.
func (i Interval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", i.Start/60, i.Start%60, i.End/60, i.End%60)
}
