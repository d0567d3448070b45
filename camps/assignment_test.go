package camps_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/camptrack/camps"
	"github.com/warp/camptrack/engine"
	"github.com/warp/camptrack/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedCamp creates a July 2025 camp spanning the given days (inclusive).
func seedCamp(t *testing.T, store *sqlite.Store, id string, startDay, endDay int) engine.Camp {
	t.Helper()
	camp := engine.Camp{
		ID:       engine.CampID(id),
		Name:     "Camp " + id,
		Location: "Lakeside",
		Type:     engine.CampOvernight,
		Range: engine.DateRange{
			Start: engine.NewDate(2025, time.July, startDay),
			End:   engine.NewDate(2025, time.July, endDay),
		},
		BaseFoodStock:        decimal.NewFromInt(10),
		DefaultFoodPerCamper: decimal.NewFromInt(4),
	}
	require.NoError(t, store.SaveCamp(context.Background(), camp))
	return camp
}

func decimalInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedLeader(t *testing.T, store *sqlite.Store, id, name string) engine.Leader {
	t.Helper()
	leader := engine.Leader{ID: engine.LeaderID(id), Name: name}
	require.NoError(t, store.InsertLeader(context.Background(), leader))
	return leader
}

// =============================================================================
// CLAIM / OVERLAP TESTS
// =============================================================================

func TestClaim_NoConflict_Succeeds(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	camp := seedCamp(t, store, "camp-1", 1, 5)
	seedLeader(t, store, "lead-1", "Sam")

	a, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)
	assert.Equal(t, camp.Range, a.Range, "claim should span the camp's full range")

	held, err := svc.Assignments(ctx, "lead-1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, engine.CampID("camp-1"), held[0].CampID)
}

func TestClaim_OverlappingCamps_Rejected(t *testing.T) {
	// GIVEN: Leader holds July 1-5
	// WHEN: Claiming a camp spanning July 3-8
	// THEN: Rejected with OverlapConflictError naming the held assignment

	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 3, 8)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)

	_, err = svc.Claim(ctx, "lead-1", "camp-2")
	require.Error(t, err)

	var conflict *engine.OverlapConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, engine.CampID("camp-1"), conflict.Existing.CampID)
	assert.True(t, engine.IsClientError(err))

	// The rejected claim must not have been persisted.
	held, err := svc.Assignments(ctx, "lead-1")
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestClaim_SharedBoundaryDay_Rejected(t *testing.T) {
	// Ranges are inclusive: a camp ending July 5 and one starting July 5
	// share a day, and one person cannot lead two camps on the same day.

	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 5, 9)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)

	_, err = svc.Claim(ctx, "lead-1", "camp-2")
	var conflict *engine.OverlapConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestClaim_AdjacentCamps_Allowed(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 6, 9)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)
	_, err = svc.Claim(ctx, "lead-1", "camp-2")
	assert.NoError(t, err, "back-to-back camps do not overlap")
}

func TestClaim_SameCampTwice_DuplicateAssignment(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)

	_, err = svc.Claim(ctx, "lead-1", "camp-1")
	assert.True(t, errors.Is(err, engine.ErrDuplicateAssignment))
}

func TestClaim_TwoLeaders_SameCamp_BothSucceed(t *testing.T) {
	// Overlap is forbidden per leader, not per camp.
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedLeader(t, store, "lead-1", "Sam")
	seedLeader(t, store, "lead-2", "Alex")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)
	_, err = svc.Claim(ctx, "lead-2", "camp-1")
	assert.NoError(t, err)
}

func TestClaim_UnknownLeaderOrCamp_NotFound(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "ghost", "camp-1")
	assert.True(t, errors.Is(err, engine.ErrLeaderNotFound))
	assert.True(t, engine.IsNotFound(err))

	_, err = svc.Claim(ctx, "lead-1", "ghost")
	assert.True(t, errors.Is(err, engine.ErrCampNotFound))
}

func TestUnassign_ThenReclaim_Succeeds(t *testing.T) {
	// GIVEN: A conflicting pair where camp-1 is held
	// WHEN: Unassigning camp-1 and claiming camp-2
	// THEN: The re-check passes; assignments were destroyed, not edited

	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 3, 8)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)

	require.NoError(t, svc.Unassign(ctx, "lead-1", "camp-1"))

	_, err = svc.Claim(ctx, "lead-1", "camp-2")
	require.NoError(t, err)

	held, err := svc.Assignments(ctx, "lead-1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, engine.CampID("camp-2"), held[0].CampID)
}

// =============================================================================
// AVAILABLE CAMPS TESTS
// =============================================================================

func TestAvailableCamps_ExcludesHeldAndOverlapping(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-held", 1, 5)
	seedCamp(t, store, "camp-overlap", 4, 8)
	seedCamp(t, store, "camp-free", 10, 12)
	seedLeader(t, store, "lead-1", "Sam")

	_, err := svc.Claim(ctx, "lead-1", "camp-held")
	require.NoError(t, err)

	available, err := svc.AvailableCamps(ctx, "lead-1")
	require.NoError(t, err)

	require.Len(t, available, 1)
	assert.Equal(t, engine.CampID("camp-free"), available[0].ID)
}

func TestAvailableCamps_NoAssignments_AllCamps(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 3, 8)
	seedLeader(t, store, "lead-1", "Sam")

	available, err := svc.AvailableCamps(ctx, "lead-1")
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
