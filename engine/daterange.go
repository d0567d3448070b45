/*
daterange.go - Inclusive date ranges and the overlap predicate

PURPOSE:
  A camp occupies an inclusive range of calendar days, and so does a leader
  assignment. The single most load-bearing rule in the scheduler lives here:
  two inclusive ranges overlap unless one ends strictly before the other
  begins. A range ending on day X and a range starting on day X DO overlap -
  both claim that calendar day.

PROPERTIES:
  - Overlaps(a, b) == Overlaps(b, a)          (symmetric)
  - Overlaps(a, a) == true                     (reflexive)
  - Single-day ranges (Start == End) are valid
  - Adjacent ranges (a.End + 1 day == b.Start) do NOT overlap

SEE ALSO:
  - camps/assignment.go: Uses Overlaps to reject conflicting leader claims
  - projection.go: Iterates a camp's range day by day
*/
package engine

// =============================================================================
// DATE RANGE - Inclusive on both ends
// =============================================================================

// DateRange is an inclusive [Start, End] span of calendar days.
// Invariant: Start <= End. A single-day range has Start == End.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange builds a range, rejecting End before Start.
func NewDateRange(start, end Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Valid reports whether the range satisfies Start <= End.
func (r DateRange) Valid() bool { return r.Start.BeforeOrEqual(r.End) }

// Contains returns true if the day falls within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Days returns every calendar day in the range, ascending. A valid range
// always yields at least one day.
func (r DateRange) Days() []Date {
	var days []Date
	current := r.Start
	for current.BeforeOrEqual(r.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Len returns the inclusive day count of the range.
func (r DateRange) Len() int { return DaysBetween(r.Start, r.End) + 1 }

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// OVERLAP PREDICATE
// =============================================================================

// Overlaps reports whether two inclusive ranges share at least one calendar
// day. Two ranges are disjoint only when one ends strictly before the other
// begins.
func Overlaps(a, b DateRange) bool {
	return !(a.End.Before(b.Start) || a.Start.After(b.End))
}
