/*
Package camps is the domain service layer over the engine.

assignment.go - Leader-to-camp claims with the overlap guard

PURPOSE:
  A leader claims a camp for the camp's full date range. Before the claim
  is persisted, every existing assignment for that leader is checked with
  engine.Overlaps; a hit rejects the claim. Check and insert run inside ONE
  storage transaction - check-then-insert is a classic read-then-write race,
  and without the transaction two concurrent claimants could each pass the
  check before either writes.

LIFECYCLE:
  Assignments are never mutated. A range change is unassign + claim, which
  re-runs the overlap check on the way back in.

EDGE CASES:
  - Two camps with overlapping ranges are fine - only overlap for the SAME
    leader is forbidden.
  - Claiming a camp the leader already holds fails with
    ErrDuplicateAssignment before the overlap check reports the
    self-evident range conflict.

SEE ALSO:
  - engine/daterange.go: The overlap predicate
  - import.go: Roster import service
  - reports.go: Shortage and pay reporting
*/
package camps

import (
	"context"
	"fmt"

	"github.com/warp/camptrack/engine"
)

// =============================================================================
// ASSIGNMENT SERVICE
// =============================================================================

// AssignmentService mediates leader claims on camps.
type AssignmentService struct {
	Store engine.Stores
	Tx    engine.TxRunner
}

// NewAssignmentService wires the service over a transactional store.
func NewAssignmentService(store engine.Stores, tx engine.TxRunner) *AssignmentService {
	return &AssignmentService{Store: store, Tx: tx}
}

// Claim assigns the camp to the leader for the camp's date range. The
// overlap check and the insert run inside one storage transaction.
func (s *AssignmentService) Claim(ctx context.Context, leaderID engine.LeaderID, campID engine.CampID) (*engine.Assignment, error) {
	if _, err := s.Store.FetchLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	camp, err := s.Store.FetchCamp(ctx, campID)
	if err != nil {
		return nil, err
	}

	candidate := engine.Assignment{
		ID:       fmt.Sprintf("%s:%s", leaderID, campID),
		LeaderID: leaderID,
		CampID:   campID,
		Range:    camp.Range,
	}

	err = s.Tx.WithTx(ctx, func(stores engine.Stores) error {
		existing, err := stores.FetchAssignments(ctx, leaderID)
		if err != nil {
			return err
		}
		if err := checkClaim(existing, candidate); err != nil {
			return err
		}
		return stores.InsertAssignment(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Unassign removes a leader's claim. The assignment is destroyed, not
// edited; re-claiming goes back through the overlap check.
func (s *AssignmentService) Unassign(ctx context.Context, leaderID engine.LeaderID, campID engine.CampID) error {
	if _, err := s.Store.FetchLeader(ctx, leaderID); err != nil {
		return err
	}
	return s.Store.DeleteAssignment(ctx, leaderID, campID)
}

// Assignments returns the leader's current claims.
func (s *AssignmentService) Assignments(ctx context.Context, leaderID engine.LeaderID) ([]engine.Assignment, error) {
	if _, err := s.Store.FetchLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	return s.Store.FetchAssignments(ctx, leaderID)
}

// AvailableCamps returns camps the leader could still claim: not already
// held, and not overlapping any held assignment.
func (s *AssignmentService) AvailableCamps(ctx context.Context, leaderID engine.LeaderID) ([]engine.Camp, error) {
	if _, err := s.Store.FetchLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	held, err := s.Store.FetchAssignments(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	camps, err := s.Store.FetchCamps(ctx)
	if err != nil {
		return nil, err
	}

	heldCamps := make(map[engine.CampID]bool, len(held))
	for _, a := range held {
		heldCamps[a.CampID] = true
	}

	var available []engine.Camp
	for _, camp := range camps {
		if heldCamps[camp.ID] {
			continue
		}
		conflict := false
		for _, a := range held {
			if engine.Overlaps(camp.Range, a.Range) {
				conflict = true
				break
			}
		}
		if !conflict {
			available = append(available, camp)
		}
	}
	return available, nil
}

// checkClaim is the pure precondition: no existing assignment for the same
// leader may overlap the candidate's range.
func checkClaim(existing []engine.Assignment, candidate engine.Assignment) error {
	for _, a := range existing {
		if a.CampID == candidate.CampID {
			return engine.ErrDuplicateAssignment
		}
		if engine.Overlaps(a.Range, candidate.Range) {
			return &engine.OverlapConflictError{
				LeaderID:  candidate.LeaderID,
				Candidate: candidate.Range,
				Existing:  a,
			}
		}
	}
	return nil
}
