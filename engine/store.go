/*
store.go - Persistence interfaces consumed by the engine

PURPOSE:
  The engine itself holds no state. These interfaces describe the narrow
  storage collaborator it reads from and writes through. Implementations
  must use parameter-bound queries - never string-interpolated values.

KEY INTERFACES:
  CampStore:       Camps and their camper rosters
  TopUpStore:      Append-only stock top-up log
  AssignmentStore: Leader-to-camp claims
  LeaderStore:     Leader lookup
  SettingStore:    Key/value settings (e.g. daily pay rate)
  TxRunner:        Atomic check-then-write units

APPEND-ONLY CONTRACT:
  TopUpStore has no update or delete. Corrections are compensating top-ups.

ATOMICITY:
  The overlap check and the assignment insert are a classic read-then-write
  race. TxRunner lets the assignment service run both inside one storage
  transaction; two concurrent claimants cannot both pass the check.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - engine/store: in-memory store for tests/dev

SEE ALSO:
  - ledger.go: StockLedger built on CampStore + TopUpStore
  - camps/assignment.go: check-then-insert under TxRunner
*/
package engine

import "context"

// =============================================================================
// CAMP STORE
// =============================================================================

// CampStore resolves camps and their rosters.
type CampStore interface {
	// FetchCamp returns the camp or ErrCampNotFound.
	FetchCamp(ctx context.Context, id CampID) (*Camp, error)

	// FetchCamps returns all camps ordered by start date.
	FetchCamps(ctx context.Context) ([]Camp, error)

	// FetchCampers returns the camp's linked campers.
	FetchCampers(ctx context.Context, id CampID) ([]CamperRecord, error)

	// InsertCampers persists accepted records idempotently: a camper whose
	// identity already exists is linked rather than recreated, and an
	// existing camp link is left untouched. Returns (created, linked).
	InsertCampers(ctx context.Context, id CampID, records []CamperRecord) (created, linked int, err error)
}

// =============================================================================
// TOP-UP STORE - Append-only
// =============================================================================

// TopUpStore persists the immutable top-up sequence per camp.
// Appends for a given camp must be linearizable so EffectiveStock is
// never ambiguous; a single-writer transaction per append suffices.
type TopUpStore interface {
	// AppendTopUp persists one top-up. This is the ONLY write operation.
	AppendTopUp(ctx context.Context, topUp StockTopUp) error

	// FetchTopUps returns the camp's top-ups ordered by RecordedAt ascending.
	FetchTopUps(ctx context.Context, id CampID) ([]StockTopUp, error)
}

// =============================================================================
// ASSIGNMENT STORE
// =============================================================================

// AssignmentStore persists leader claims. Ranges are never updated in
// place; changes are delete + recreate so the overlap check always runs.
type AssignmentStore interface {
	// FetchAssignments returns all assignments held by a leader.
	FetchAssignments(ctx context.Context, leaderID LeaderID) ([]Assignment, error)

	// InsertAssignment persists a claim.
	InsertAssignment(ctx context.Context, a Assignment) error

	// DeleteAssignment removes a leader's claim on a camp.
	DeleteAssignment(ctx context.Context, leaderID LeaderID, campID CampID) error
}

// =============================================================================
// LEADER / SETTINGS
// =============================================================================

// LeaderStore resolves leaders.
type LeaderStore interface {
	// FetchLeader returns the leader or ErrLeaderNotFound.
	FetchLeader(ctx context.Context, id LeaderID) (*Leader, error)

	// InsertLeader persists a leader.
	InsertLeader(ctx context.Context, l Leader) error
}

// SettingStore is a small key/value bag for operational settings.
type SettingStore interface {
	GetSetting(ctx context.Context, key string, fallback string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// =============================================================================
// TRANSACTIONAL RUNNER
// =============================================================================

// Stores bundles every interface a transaction body may need.
type Stores interface {
	CampStore
	TopUpStore
	AssignmentStore
	LeaderStore
	SettingStore
}

// TxRunner executes fn atomically: if fn returns an error the writes it
// performed are rolled back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(Stores) error) error
}
