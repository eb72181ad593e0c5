package services

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"identical", "2026-06-01", "2026-06-10", "2026-06-01", "2026-06-10", true},
		{"partial overlap", "2026-06-01", "2026-06-10", "2026-06-09", "2026-06-15", true},
		{"contained", "2026-06-01", "2026-06-30", "2026-06-10", "2026-06-15", true},
		{"touching endpoints", "2026-06-01", "2026-06-10", "2026-06-10", "2026-06-15", false},
		{"touching endpoints reversed", "2026-06-10", "2026-06-15", "2026-06-01", "2026-06-10", false},
		{"disjoint", "2026-06-01", "2026-06-05", "2026-06-20", "2026-06-25", false},
		{"one day each adjacent", "2026-06-01", "2026-06-02", "2026-06-02", "2026-06-03", false},
	}
	for _, c := range cases {
		got := RangesOverlap(day(c.aStart), day(c.aEnd), day(c.bStart), day(c.bEnd))
		if got != c.want {
			t.Errorf("%s: RangesOverlap = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestLeaseDays(t *testing.T) {
	if got := LeaseDays(day("2026-06-01"), day("2026-06-10")); got != 9 {
		t.Errorf("LeaseDays = %d, want 9", got)
	}
	if got := LeaseDays(day("2026-06-01"), day("2026-06-02")); got != 1 {
		t.Errorf("LeaseDays = %d, want 1", got)
	}
}

func TestComputeTotalAmount(t *testing.T) {
	if got := ComputeTotalAmount(10, day("2026-06-01"), day("2026-06-10")); got != 90 {
		t.Errorf("ComputeTotalAmount = %f, want 90", got)
	}
	// Degenerate windows still price at least one day.
	if got := ComputeTotalAmount(10, day("2026-06-01"), day("2026-06-01")); got != 10 {
		t.Errorf("ComputeTotalAmount zero-length = %f, want 10", got)
	}
}

func TestValidateWindow(t *testing.T) {
	if err := ValidateWindow(day("2026-06-01"), day("2026-06-10"), 1); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}
	if err := ValidateWindow(day("2026-06-10"), day("2026-06-01"), 1); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart, got %v", err)
	}
	if err := ValidateWindow(day("2026-06-01"), day("2026-06-01"), 1); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("expected ErrEndBeforeStart for empty window, got %v", err)
	}
	if err := ValidateWindow(day("2026-06-01"), day("2026-06-03"), 7); !errors.Is(err, ErrBelowMinLease) {
		t.Errorf("expected ErrBelowMinLease, got %v", err)
	}
	// No minimum set on the listing.
	if err := ValidateWindow(day("2026-06-01"), day("2026-06-02"), 0); err != nil {
		t.Errorf("1-day lease with no minimum rejected: %v", err)
	}
}

func TestDefaultAvailabilityWindow(t *testing.T) {
	w := DefaultAvailabilityWindow()
	if !w.Start.Before(w.End) {
		t.Fatalf("window start %v not before end %v", w.Start, w.End)
	}
	if w.End.Sub(w.Start) < 364*24*time.Hour {
		t.Errorf("default window shorter than a year: %v to %v", w.Start, w.End)
	}
}
