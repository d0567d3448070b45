package engine

import (
	"time"
)

// =============================================================================
// DATE - Calendar-day abstraction (the engine reasons in whole days)
// =============================================================================

// Date is a calendar day in UTC. All camp scheduling and stock projection
// happens at day granularity; Date keeps that explicit instead of passing
// raw time.Time values around and hoping nobody compares hours.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

// EndOfDay returns the last instant of the calendar day. A stock top-up
// recorded at any time during day d counts toward d's planned stock, so the
// projector compares top-up timestamps against this boundary.
func (d Date) EndOfDay() time.Time {
	n := d.normalize()
	return time.Date(n.Year(), n.Month(), n.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the whole-day distance from from to to.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}
