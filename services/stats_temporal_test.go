package services

import (
	"testing"
	"time"
)

func dates(ss ...string) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			panic(err)
		}
		out[i] = t
	}
	return out
}

func TestStreaksFromDatesConsecutiveRun(t *testing.T) {
	streaks := streaksFromDates(dates("2025-03-01", "2025-03-02", "2025-03-03"))

	if len(streaks) != 1 {
		t.Fatalf("expected 1 streak, got %d", len(streaks))
	}
	s := streaks[0]
	if s.StartDate != "2025-03-01" || s.EndDate != "2025-03-03" || s.Length != 3 {
		t.Errorf("unexpected streak: %+v", s)
	}
}

func TestStreaksFromDatesIgnoresIsolatedDays(t *testing.T) {
	streaks := streaksFromDates(dates("2025-03-01", "2025-03-05", "2025-03-10"))
	if len(streaks) != 0 {
		t.Errorf("isolated days are not streaks, got %+v", streaks)
	}
}

func TestStreaksFromDatesSortsLongestFirst(t *testing.T) {
	streaks := streaksFromDates(dates(
		"2025-01-01", "2025-01-02",
		"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04",
		"2025-03-15",
	))

	if len(streaks) != 2 {
		t.Fatalf("expected 2 streaks, got %d", len(streaks))
	}
	if streaks[0].Length != 4 || streaks[1].Length != 2 {
		t.Errorf("expected lengths [4 2], got [%d %d]", streaks[0].Length, streaks[1].Length)
	}
}

func TestStreaksFromDatesFlushesFinalRun(t *testing.T) {
	streaks := streaksFromDates(dates("2025-05-01", "2025-05-10", "2025-05-11"))

	if len(streaks) != 1 {
		t.Fatalf("expected the trailing run to be recorded, got %+v", streaks)
	}
	if streaks[0].StartDate != "2025-05-10" || streaks[0].Length != 2 {
		t.Errorf("unexpected streak: %+v", streaks[0])
	}
}

func TestStreaksFromDatesEmpty(t *testing.T) {
	if streaks := streaksFromDates(nil); len(streaks) != 0 {
		t.Errorf("expected no streaks for no dates, got %+v", streaks)
	}
}

func TestDayDiffIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)
	if got := dayDiff(a, b); got != 1 {
		t.Errorf("dayDiff = %d, want 1", got)
	}
}

func TestSeason(t *testing.T) {
	cases := map[time.Month]string{
		time.January:  "Winter",
		time.December: "Winter",
		time.April:    "Spring",
		time.July:     "Summer",
		time.October:  "Autumn",
	}
	for m, want := range cases {
		if got := season(m); got != want {
			t.Errorf("season(%s) = %q, want %q", m, got, want)
		}
	}
}
