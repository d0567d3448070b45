/*
errors.go - Centralized error types for the camp engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Service packages wrap these with additional context where useful.

ERROR CATEGORIES:
  1. Reference errors - caller supplied an unknown camp/leader
  2. Validation errors - zero deltas, inverted ranges, bad CSV headers
  3. Conflict errors - overlapping leader assignments

PROPAGATION POLICY:
  Per-row problems inside a batch import are collected into the result
  (RejectedRow), never thrown - a roster import must continue past bad rows.
  Reference errors propagate to the caller; the engine cannot recover them.

USAGE:
  if errors.Is(err, engine.ErrOverlapConflict) {
      var conflict *engine.OverlapConflictError
      errors.As(err, &conflict)
      ...
  }

SEE ALSO:
  - ledger.go: ErrInvalidDelta, ErrCampNotFound
  - dedupe.go: MalformedHeaderError, RejectedRow
  - camps/assignment.go: OverlapConflictError
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCampNotFound is returned when a referenced camp doesn't exist.
	ErrCampNotFound = errors.New("camp not found")

	// ErrLeaderNotFound is returned when a referenced leader doesn't exist.
	ErrLeaderNotFound = errors.New("leader not found")

	// ErrCamperNotFound is returned when a referenced camper doesn't exist.
	ErrCamperNotFound = errors.New("camper not found")

	// ErrInvalidDelta is returned when a stock top-up has a zero delta.
	// Zero is a no-op and recording it would only pollute the audit trail.
	ErrInvalidDelta = errors.New("invalid delta: top-up must be non-zero")

	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrOverlapConflict is returned when a leader assignment would overlap
	// an existing assignment for the same leader.
	ErrOverlapConflict = errors.New("assignment overlaps an existing assignment")

	// ErrMalformedHeader is returned when a roster CSV header doesn't match
	// the expected shape. No row is processed past a bad header.
	ErrMalformedHeader = errors.New("malformed csv header")

	// ErrDuplicateAssignment is returned when a leader already holds the camp.
	ErrDuplicateAssignment = errors.New("leader already assigned to camp")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OverlapConflictError identifies the existing assignment that blocks a new
// claim. The checker itself returns a bool (overlap is frequent, not
// exceptional); services raise this when they choose to fail the claim.
type OverlapConflictError struct {
	LeaderID  LeaderID
	Candidate DateRange
	Existing  Assignment
}

func (e *OverlapConflictError) Error() string {
	return fmt.Sprintf("leader %s: range %s overlaps assignment to camp %s %s",
		e.LeaderID, e.Candidate, e.Existing.CampID, e.Existing.Range)
}

func (e *OverlapConflictError) Unwrap() error { return ErrOverlapConflict }

// MalformedHeaderError reports the header shape mismatch of a roster CSV.
type MalformedHeaderError struct {
	Got  []string
	Want []string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed csv header: got %v, want %v", e.Got, e.Want)
}

func (e *MalformedHeaderError) Unwrap() error { return ErrMalformedHeader }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCampNotFound) ||
		errors.Is(err, ErrLeaderNotFound) ||
		errors.Is(err, ErrCamperNotFound)
}

// IsClientError returns true if the error is due to invalid client input
// rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDelta) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrOverlapConflict) ||
		errors.Is(err, ErrMalformedHeader) ||
		errors.Is(err, ErrDuplicateAssignment)
}
