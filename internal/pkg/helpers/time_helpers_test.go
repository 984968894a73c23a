package helpers

import (
	"testing"
	"time"
)

func TestNextMonday(t *testing.T) {
	cases := []struct {
		from time.Time
		want time.Time
	}{
		// Monday stays put.
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		// Wednesday rolls to next week's Monday.
		{time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		// Sunday rolls to the following day.
		{time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := NextMonday(c.from); !got.Equal(c.want) {
			t.Errorf("NextMonday(%s) = %s, want %s", c.from.Format("2006-01-02"), got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}

func TestNextWeekday(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	got, err := NextWeekday(monday, "WEDNESDAY")
	if err != nil {
		t.Fatalf("NextWeekday: %v", err)
	}
	if want := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}

	// Same weekday resolves to the start date itself.
	got, err = NextWeekday(monday, "MONDAY")
	if err != nil {
		t.Fatalf("NextWeekday: %v", err)
	}
	if !got.Equal(monday) {
		t.Errorf("expected %s, got %s", monday.Format("2006-01-02"), got.Format("2006-01-02"))
	}

	if _, err := NextWeekday(monday, "FUNDAY"); err == nil {
		t.Error("unknown weekday should error")
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("expected 90m, got %s", got)
	}
	if got := ParseDuration("bogus", time.Hour); got != time.Hour {
		t.Errorf("expected fallback 1h, got %s", got)
	}
}
