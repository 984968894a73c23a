package scheduling

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("10:30")
	if err != nil {
		t.Fatalf("ParseClock should succeed: %v", err)
	}
	if minutes != 630 {
		t.Errorf("expected 630 minutes, got %d", minutes)
	}

	if _, err := ParseClock("25:00"); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval for bad hour, got: %v", err)
	}
	if _, err := ParseClock("not-a-time"); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval for garbage input, got: %v", err)
	}
}

func TestParseIntervalRejectsInvertedRange(t *testing.T) {
	if _, err := ParseInterval("11:00", "10:00"); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval when end precedes start, got: %v", err)
	}
	if _, err := ParseInterval("10:00", "10:00"); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval for zero-length interval, got: %v", err)
	}
}

func TestIntervalOverlapsIsHalfOpen(t *testing.T) {
	morning := Interval{Start: 600, End: 660}  // 10:00-11:00
	adjacent := Interval{Start: 660, End: 720} // 11:00-12:00
	crossing := Interval{Start: 630, End: 690} // 10:30-11:30

	if morning.Overlaps(adjacent) {
		t.Error("back-to-back intervals must not overlap")
	}
	if adjacent.Overlaps(morning) {
		t.Error("overlap must be symmetric for back-to-back intervals")
	}
	if !morning.Overlaps(crossing) {
		t.Error("10:00-11:00 and 10:30-11:30 must overlap")
	}
	if !crossing.Overlaps(adjacent) {
		t.Error("10:30-11:30 and 11:00-12:00 must overlap")
	}
}

func TestIntervalString(t *testing.T) {
	iv := Interval{Start: 630, End: 690}
	if got := iv.String(); got != "10:30-11:30" {
		t.Errorf("expected 10:30-11:30, got %s", got)
	}
}
