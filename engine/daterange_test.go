package engine_test

import (
	"testing"
	"time"

	"github.com/warp/camptrack/engine"
)

func date(y int, m time.Month, d int) engine.Date {
	return engine.NewDate(y, m, d)
}

func dr(start, end engine.Date) engine.DateRange {
	return engine.DateRange{Start: start, End: end}
}

// =============================================================================
// OVERLAP PREDICATE TESTS
// =============================================================================

func TestOverlaps_SharedBoundaryDay_Overlaps(t *testing.T) {
	// GIVEN: A range ending July 5 and a range starting July 5
	// WHEN: Checking overlap
	// THEN: Both claim July 5, so they overlap

	a := dr(date(2025, time.July, 1), date(2025, time.July, 5))
	b := dr(date(2025, time.July, 5), date(2025, time.July, 10))

	if !engine.Overlaps(a, b) {
		t.Error("expected shared boundary day to count as overlap")
	}
}

func TestOverlaps_AdjacentRanges_DoNotOverlap(t *testing.T) {
	// GIVEN: A range ending July 5 and a range starting July 6
	// WHEN: Checking overlap
	// THEN: No shared day, no overlap

	a := dr(date(2025, time.July, 1), date(2025, time.July, 5))
	b := dr(date(2025, time.July, 6), date(2025, time.July, 10))

	if engine.Overlaps(a, b) {
		t.Error("expected adjacent ranges not to overlap")
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b engine.DateRange
	}{
		{"disjoint", dr(date(2025, time.June, 1), date(2025, time.June, 3)), dr(date(2025, time.June, 10), date(2025, time.June, 12))},
		{"nested", dr(date(2025, time.June, 1), date(2025, time.June, 30)), dr(date(2025, time.June, 10), date(2025, time.June, 12))},
		{"boundary", dr(date(2025, time.June, 1), date(2025, time.June, 10)), dr(date(2025, time.June, 10), date(2025, time.June, 20))},
		{"single-day", dr(date(2025, time.June, 5), date(2025, time.June, 5)), dr(date(2025, time.June, 5), date(2025, time.June, 5))},
	}

	for _, tc := range cases {
		if engine.Overlaps(tc.a, tc.b) != engine.Overlaps(tc.b, tc.a) {
			t.Errorf("%s: Overlaps is not symmetric for %s / %s", tc.name, tc.a, tc.b)
		}
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	a := dr(date(2025, time.July, 1), date(2025, time.July, 5))
	if !engine.Overlaps(a, a) {
		t.Error("a range must overlap itself")
	}
}

func TestOverlaps_SingleDayInsideRange(t *testing.T) {
	a := dr(date(2025, time.July, 3), date(2025, time.July, 3))
	b := dr(date(2025, time.July, 1), date(2025, time.July, 5))
	if !engine.Overlaps(a, b) {
		t.Error("single-day range inside a wider range must overlap")
	}
}

// =============================================================================
// RANGE CONSTRUCTION AND ENUMERATION
// =============================================================================

func TestNewDateRange_EndBeforeStart_Rejected(t *testing.T) {
	_, err := engine.NewDateRange(date(2025, time.July, 10), date(2025, time.July, 1))
	if err != engine.ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDateRange_Days_Inclusive(t *testing.T) {
	r := dr(date(2025, time.July, 1), date(2025, time.July, 3))
	days := r.Days()

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[0].Equal(date(2025, time.July, 1)) || !days[2].Equal(date(2025, time.July, 3)) {
		t.Errorf("unexpected day enumeration: %v", days)
	}
}

func TestDateRange_SingleDay_OneDay(t *testing.T) {
	r := dr(date(2025, time.July, 1), date(2025, time.July, 1))
	if got := len(r.Days()); got != 1 {
		t.Errorf("expected 1 day for single-day range, got %d", got)
	}
	if r.Len() != 1 {
		t.Errorf("expected Len 1, got %d", r.Len())
	}
}

func TestDateRange_Contains_Boundaries(t *testing.T) {
	r := dr(date(2025, time.July, 1), date(2025, time.July, 5))
	if !r.Contains(date(2025, time.July, 1)) || !r.Contains(date(2025, time.July, 5)) {
		t.Error("range must contain both boundary days")
	}
	if r.Contains(date(2025, time.June, 30)) || r.Contains(date(2025, time.July, 6)) {
		t.Error("range must not contain days outside boundaries")
	}
}
