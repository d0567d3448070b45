/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements engine.Stores and engine.TxRunner using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  engine.CampStore:       Camps and their camper rosters
  engine.TopUpStore:      Append-only stock top-up log
  engine.AssignmentStore: Leader-to-camp claims
  engine.LeaderStore:     Leader records
  engine.SettingStore:    Key/value settings
  engine.TxRunner:        Atomic check-then-write units

APPEND-ONLY ENFORCEMENT:
  The store enforces append-only semantics on stock_topups:
  - No UPDATE statements on the stock_topups table
  - No DELETE statements on the stock_topups table
  - Corrections via compensating top-ups only

KEY TABLES:
  camps:              Camp definitions with date range and food baseline
  campers:            One row per real-world camper (identity-deduplicated)
  camp_campers:       Camp-to-camper links with optional food override
  leaders:            Leader records
  leader_assignments: Leader claims on camps (UNIQUE leader+camp)
  stock_topups:       Immutable top-up ledger
  settings:           Key/value bag (daily pay rate lives here)

INDEXES:
  - idx_campers_identity: UNIQUE on (lower(first), lower(last), dob) -
    the database-level backstop for camper identity
  - idx_topups_camp_time: Effective-stock fold (hot path)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/camptrack.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  ledger := engine.NewStockLedger(store, store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/camptrack/engine"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ engine.Stores = (*Store)(nil)
var _ engine.TxRunner = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Camps
	CREATE TABLE IF NOT EXISTS camps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT,
		area TEXT,
		camp_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		base_food_stock TEXT NOT NULL,
		default_food_per_camper TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_camps_start ON camps(start_date);

	-- Campers: one row per real-world camper. The unique identity index is
	-- the database-level backstop for the in-process dedup: even a buggy
	-- caller cannot create two rows for the same (first, last, dob).
	CREATE TABLE IF NOT EXISTS campers (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		emergency_contact TEXT
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_campers_identity
		ON campers(LOWER(first_name), LOWER(last_name), date_of_birth);

	-- Camp-to-camper links with the optional per-camp food override
	CREATE TABLE IF NOT EXISTS camp_campers (
		camp_id TEXT NOT NULL REFERENCES camps(id),
		camper_id TEXT NOT NULL REFERENCES campers(id),
		food_units TEXT,
		UNIQUE(camp_id, camper_id)
	);

	CREATE INDEX IF NOT EXISTS idx_camp_campers_camp ON camp_campers(camp_id);

	-- Leaders
	CREATE TABLE IF NOT EXISTS leaders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	-- Leader assignments: the stored range is the camp's range at claim
	-- time. UNIQUE(leader_id, camp_id) backstops the duplicate-claim check.
	CREATE TABLE IF NOT EXISTS leader_assignments (
		id TEXT PRIMARY KEY,
		leader_id TEXT NOT NULL REFERENCES leaders(id),
		camp_id TEXT NOT NULL REFERENCES camps(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		UNIQUE(leader_id, camp_id)
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_leader
		ON leader_assignments(leader_id);

	-- Stock top-ups (append-only ledger)
	CREATE TABLE IF NOT EXISTS stock_topups (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL REFERENCES camps(id),
		delta TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_topups_camp_time
		ON stock_topups(camp_id, recorded_at);

	-- Settings
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so every query helper can
// run inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// CAMP STORE
// =============================================================================

// SaveCamp inserts or updates a camp.
func (s *Store) SaveCamp(ctx context.Context, camp engine.Camp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO camps (id, name, location, area, camp_type, start_date, end_date,
			base_food_stock, default_food_per_camper)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			area = excluded.area,
			camp_type = excluded.camp_type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			base_food_stock = excluded.base_food_stock,
			default_food_per_camper = excluded.default_food_per_camper
	`

	_, err := s.db.ExecContext(ctx, query,
		string(camp.ID), camp.Name, nullString(camp.Location), nullString(camp.Area),
		string(camp.Type), camp.Range.Start.String(), camp.Range.End.String(),
		camp.BaseFoodStock.String(), camp.DefaultFoodPerCamper.String(),
	)
	return err
}

// FetchCamp returns the camp or engine.ErrCampNotFound.
func (s *Store) FetchCamp(ctx context.Context, id engine.CampID) (*engine.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchCamp(ctx, s.db, id)
}

func fetchCamp(ctx context.Context, q dbtx, id engine.CampID) (*engine.Camp, error) {
	query := `
		SELECT id, name, location, area, camp_type, start_date, end_date,
			base_food_stock, default_food_per_camper
		FROM camps WHERE id = ?
	`
	camp, err := scanCamp(q.QueryRowContext(ctx, query, string(id)))
	if err == sql.ErrNoRows {
		return nil, engine.ErrCampNotFound
	}
	if err != nil {
		return nil, err
	}
	return camp, nil
}

// FetchCamps returns all camps ordered by start date.
func (s *Store) FetchCamps(ctx context.Context) ([]engine.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchCamps(ctx, s.db)
}

func fetchCamps(ctx context.Context, q dbtx) ([]engine.Camp, error) {
	query := `
		SELECT id, name, location, area, camp_type, start_date, end_date,
			base_food_stock, default_food_per_camper
		FROM camps ORDER BY start_date ASC, id ASC
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	var camps []engine.Camp
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, *camp)
	}
	return camps, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCamp(row rowScanner) (*engine.Camp, error) {
	var (
		camp                engine.Camp
		location, area      sql.NullString
		campType            string
		startDate, endDate  string
		baseStock, perChild string
	)
	err := row.Scan(
		&camp.ID, &camp.Name, &location, &area, &campType,
		&startDate, &endDate, &baseStock, &perChild,
	)
	if err != nil {
		return nil, err
	}

	camp.Location = location.String
	camp.Area = area.String
	camp.Type = engine.CampType(campType)
	if camp.Range.Start, err = engine.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("failed to parse camp start: %w", err)
	}
	if camp.Range.End, err = engine.ParseDate(endDate); err != nil {
		return nil, fmt.Errorf("failed to parse camp end: %w", err)
	}
	if camp.BaseFoodStock, err = decimal.NewFromString(baseStock); err != nil {
		return nil, fmt.Errorf("failed to parse base stock: %w", err)
	}
	if camp.DefaultFoodPerCamper, err = decimal.NewFromString(perChild); err != nil {
		return nil, fmt.Errorf("failed to parse food default: %w", err)
	}
	return &camp, nil
}

// FetchCampers returns the camp's linked campers with the per-camp food
// override applied when present.
func (s *Store) FetchCampers(ctx context.Context, id engine.CampID) ([]engine.CamperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchCampers(ctx, s.db, id)
}

func fetchCampers(ctx context.Context, q dbtx, id engine.CampID) ([]engine.CamperRecord, error) {
	if _, err := fetchCamp(ctx, q, id); err != nil {
		return nil, err
	}

	query := `
		SELECT c.id, c.first_name, c.last_name, c.date_of_birth,
			c.emergency_contact, cc.food_units
		FROM camp_campers cc
		JOIN campers c ON c.id = cc.camper_id
		WHERE cc.camp_id = ?
		ORDER BY c.id ASC
	`
	rows, err := q.QueryContext(ctx, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query campers: %w", err)
	}
	defer rows.Close()

	var records []engine.CamperRecord
	for rows.Next() {
		var (
			r                  engine.CamperRecord
			dob                string
			contact, foodUnits sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &dob, &contact, &foodUnits); err != nil {
			return nil, fmt.Errorf("failed to scan camper: %w", err)
		}
		if r.DateOfBirth, err = engine.ParseDate(dob); err != nil {
			return nil, fmt.Errorf("failed to parse date of birth: %w", err)
		}
		r.EmergencyContact = contact.String
		if foodUnits.Valid {
			units, err := decimal.NewFromString(foodUnits.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse food units: %w", err)
			}
			r.FoodUnits = &units
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// InsertCampers persists accepted records idempotently: a camper whose
// identity already exists is linked rather than recreated, and an existing
// camp link is left untouched. The whole batch runs in one transaction.
func (s *Store) InsertCampers(ctx context.Context, id engine.CampID, records []engine.CamperRecord) (created, linked int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	created, linked, err = insertCampers(ctx, sqlTx, id, records)
	if err != nil {
		return 0, 0, err
	}
	return created, linked, sqlTx.Commit()
}

func insertCampers(ctx context.Context, q dbtx, id engine.CampID, records []engine.CamperRecord) (created, linked int, err error) {
	if _, err := fetchCamp(ctx, q, id); err != nil {
		return 0, 0, err
	}

	for _, record := range records {
		key := record.Identity()

		var camperID string
		err := q.QueryRowContext(ctx, `
			SELECT id FROM campers
			WHERE LOWER(first_name) = ? AND LOWER(last_name) = ? AND date_of_birth = ?
		`, key.FirstName, key.LastName, key.DateOfBirth).Scan(&camperID)

		switch {
		case err == sql.ErrNoRows:
			camperID = newID("camper")
			_, err = q.ExecContext(ctx, `
				INSERT INTO campers (id, first_name, last_name, date_of_birth, emergency_contact)
				VALUES (?, ?, ?, ?, ?)
			`, camperID, record.FirstName, record.LastName,
				record.DateOfBirth.String(), nullString(record.EmergencyContact))
			if err != nil {
				return 0, 0, fmt.Errorf("failed to insert camper: %w", err)
			}
			created++
		case err != nil:
			return 0, 0, fmt.Errorf("failed to look up camper identity: %w", err)
		default:
			linked++
		}

		var foodUnits *string
		if record.FoodUnits != nil {
			v := record.FoodUnits.String()
			foodUnits = &v
		}
		_, err = q.ExecContext(ctx, `
			INSERT INTO camp_campers (camp_id, camper_id, food_units)
			VALUES (?, ?, ?)
			ON CONFLICT(camp_id, camper_id) DO NOTHING
		`, string(id), camperID, foodUnits)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to link camper: %w", err)
		}
	}
	return created, linked, nil
}

// =============================================================================
// TOP-UP STORE - Append-only
// =============================================================================

// AppendTopUp persists one immutable top-up. There is no update or delete
// path for stock_topups anywhere in this package.
func (s *Store) AppendTopUp(ctx context.Context, topUp engine.StockTopUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendTopUp(ctx, s.db, topUp)
}

func appendTopUp(ctx context.Context, q dbtx, topUp engine.StockTopUp) error {
	if topUp.ID == "" {
		topUp.ID = newID("topup")
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO stock_topups (id, camp_id, delta, recorded_at)
		VALUES (?, ?, ?, ?)
	`, topUp.ID, string(topUp.CampID), topUp.Delta.String(),
		topUp.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append top-up: %w", err)
	}
	return nil
}

// FetchTopUps returns the camp's top-ups ordered by RecordedAt ascending.
func (s *Store) FetchTopUps(ctx context.Context, id engine.CampID) ([]engine.StockTopUp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchTopUps(ctx, s.db, id)
}

func fetchTopUps(ctx context.Context, q dbtx, id engine.CampID) ([]engine.StockTopUp, error) {
	query := `
		SELECT id, camp_id, delta, recorded_at
		FROM stock_topups
		WHERE camp_id = ?
		ORDER BY recorded_at ASC, id ASC
	`
	rows, err := q.QueryContext(ctx, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query top-ups: %w", err)
	}
	defer rows.Close()

	var topUps []engine.StockTopUp
	for rows.Next() {
		var (
			t          engine.StockTopUp
			delta      string
			recordedAt string
		)
		if err := rows.Scan(&t.ID, &t.CampID, &delta, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan top-up: %w", err)
		}
		if t.Delta, err = decimal.NewFromString(delta); err != nil {
			return nil, fmt.Errorf("failed to parse delta: %w", err)
		}
		if t.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		topUps = append(topUps, t)
	}
	return topUps, rows.Err()
}

// =============================================================================
// ASSIGNMENT STORE
// =============================================================================

// FetchAssignments returns all assignments held by a leader.
func (s *Store) FetchAssignments(ctx context.Context, leaderID engine.LeaderID) ([]engine.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchAssignments(ctx, s.db, leaderID)
}

func fetchAssignments(ctx context.Context, q dbtx, leaderID engine.LeaderID) ([]engine.Assignment, error) {
	query := `
		SELECT id, leader_id, camp_id, start_date, end_date
		FROM leader_assignments
		WHERE leader_id = ?
		ORDER BY start_date ASC, camp_id ASC
	`
	rows, err := q.QueryContext(ctx, query, string(leaderID))
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []engine.Assignment
	for rows.Next() {
		var (
			a                  engine.Assignment
			startDate, endDate string
		)
		if err := rows.Scan(&a.ID, &a.LeaderID, &a.CampID, &startDate, &endDate); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if a.Range.Start, err = engine.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("failed to parse assignment start: %w", err)
		}
		if a.Range.End, err = engine.ParseDate(endDate); err != nil {
			return nil, fmt.Errorf("failed to parse assignment end: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// InsertAssignment persists a claim. The unique (leader_id, camp_id) index
// turns a double claim into engine.ErrDuplicateAssignment.
func (s *Store) InsertAssignment(ctx context.Context, a engine.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertAssignment(ctx, s.db, a)
}

func insertAssignment(ctx context.Context, q dbtx, a engine.Assignment) error {
	if a.ID == "" {
		a.ID = newID("assignment")
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO leader_assignments (id, leader_id, camp_id, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, string(a.LeaderID), string(a.CampID),
		a.Range.Start.String(), a.Range.End.String())
	if isUniqueConstraintError(err) {
		return engine.ErrDuplicateAssignment
	}
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// DeleteAssignment removes a leader's claim on a camp.
func (s *Store) DeleteAssignment(ctx context.Context, leaderID engine.LeaderID, campID engine.CampID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteAssignment(ctx, s.db, leaderID, campID)
}

func deleteAssignment(ctx context.Context, q dbtx, leaderID engine.LeaderID, campID engine.CampID) error {
	_, err := q.ExecContext(ctx,
		"DELETE FROM leader_assignments WHERE leader_id = ? AND camp_id = ?",
		string(leaderID), string(campID))
	return err
}

// =============================================================================
// LEADER / SETTINGS
// =============================================================================

// FetchLeader returns the leader or engine.ErrLeaderNotFound.
func (s *Store) FetchLeader(ctx context.Context, id engine.LeaderID) (*engine.Leader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fetchLeader(ctx, s.db, id)
}

func fetchLeader(ctx context.Context, q dbtx, id engine.LeaderID) (*engine.Leader, error) {
	var leader engine.Leader
	err := q.QueryRowContext(ctx,
		"SELECT id, name FROM leaders WHERE id = ?", string(id),
	).Scan(&leader.ID, &leader.Name)
	if err == sql.ErrNoRows {
		return nil, engine.ErrLeaderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &leader, nil
}

// InsertLeader persists a leader.
func (s *Store) InsertLeader(ctx context.Context, l engine.Leader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertLeader(ctx, s.db, l)
}

func insertLeader(ctx context.Context, q dbtx, l engine.Leader) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO leaders (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, string(l.ID), l.Name)
	return err
}

// GetSetting returns the stored value or the fallback.
func (s *Store) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getSetting(ctx, s.db, key, fallback)
}

func getSetting(ctx context.Context, q dbtx, key, fallback string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores a value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setSetting(ctx, s.db, key, value)
}

func setSetting(ctx context.Context, q dbtx, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// =============================================================================
// TRANSACTIONAL RUNNER (engine.TxRunner)
// =============================================================================

// WithTx executes fn within a database transaction. The store's write lock
// is held for the duration, so tx bodies are serialized.
func (s *Store) WithTx(ctx context.Context, fn func(engine.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txStore is the transaction-scoped view handed to WithTx bodies. It calls
// the same query helpers as Store, bound to the open *sql.Tx, and takes no
// locks (WithTx already holds the write lock).
type txStore struct {
	tx *sql.Tx
}

var _ engine.Stores = (*txStore)(nil)

func (ts *txStore) FetchCamp(ctx context.Context, id engine.CampID) (*engine.Camp, error) {
	return fetchCamp(ctx, ts.tx, id)
}

func (ts *txStore) FetchCamps(ctx context.Context) ([]engine.Camp, error) {
	return fetchCamps(ctx, ts.tx)
}

func (ts *txStore) FetchCampers(ctx context.Context, id engine.CampID) ([]engine.CamperRecord, error) {
	return fetchCampers(ctx, ts.tx, id)
}

func (ts *txStore) InsertCampers(ctx context.Context, id engine.CampID, records []engine.CamperRecord) (int, int, error) {
	return insertCampers(ctx, ts.tx, id, records)
}

func (ts *txStore) AppendTopUp(ctx context.Context, topUp engine.StockTopUp) error {
	return appendTopUp(ctx, ts.tx, topUp)
}

func (ts *txStore) FetchTopUps(ctx context.Context, id engine.CampID) ([]engine.StockTopUp, error) {
	return fetchTopUps(ctx, ts.tx, id)
}

func (ts *txStore) FetchAssignments(ctx context.Context, leaderID engine.LeaderID) ([]engine.Assignment, error) {
	return fetchAssignments(ctx, ts.tx, leaderID)
}

func (ts *txStore) InsertAssignment(ctx context.Context, a engine.Assignment) error {
	return insertAssignment(ctx, ts.tx, a)
}

func (ts *txStore) DeleteAssignment(ctx context.Context, leaderID engine.LeaderID, campID engine.CampID) error {
	return deleteAssignment(ctx, ts.tx, leaderID, campID)
}

func (ts *txStore) FetchLeader(ctx context.Context, id engine.LeaderID) (*engine.Leader, error) {
	return fetchLeader(ctx, ts.tx, id)
}

func (ts *txStore) InsertLeader(ctx context.Context, l engine.Leader) error {
	return insertLeader(ctx, ts.tx, l)
}

func (ts *txStore) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	return getSetting(ctx, ts.tx, key, fallback)
}

func (ts *txStore) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(ctx, ts.tx, key, value)
}

// Helper functions

func newID(prefix string) string {
	var b [8]byte
	rand.Read(b[:])
	return prefix + "-" + hex.EncodeToString(b[:])
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return contains(msg, "UNIQUE constraint failed") || contains(msg, "duplicate key")
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
