// Package store provides an in-memory implementation of the engine's
// storage interfaces, used for tests and development.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/camptrack/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	txMu        sync.Mutex // serializes WithTx bodies; mu still guards individual ops
	camps       map[engine.CampID]engine.Camp
	campOrder   []engine.CampID
	campers     map[engine.CamperID]engine.CamperRecord
	byIdentity  map[engine.IdentityKey]engine.CamperID
	links       map[engine.CampID]map[engine.CamperID]*engine.CamperRecord
	topUps      map[engine.CampID][]engine.StockTopUp
	leaders     map[engine.LeaderID]engine.Leader
	assignments map[engine.LeaderID][]engine.Assignment
	settings    map[string]string
	seq         int
}

func NewMemory() *Memory {
	return &Memory{
		camps:       make(map[engine.CampID]engine.Camp),
		campers:     make(map[engine.CamperID]engine.CamperRecord),
		byIdentity:  make(map[engine.IdentityKey]engine.CamperID),
		links:       make(map[engine.CampID]map[engine.CamperID]*engine.CamperRecord),
		topUps:      make(map[engine.CampID][]engine.StockTopUp),
		leaders:     make(map[engine.LeaderID]engine.Leader),
		assignments: make(map[engine.LeaderID][]engine.Assignment),
		settings:    make(map[string]string),
	}
}

func (m *Memory) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// SaveCamp registers a camp (test setup helper; camps otherwise come from
// the presentation layer through the sqlite store).
func (m *Memory) SaveCamp(camp engine.Camp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.camps[camp.ID]; !ok {
		m.campOrder = append(m.campOrder, camp.ID)
	}
	m.camps[camp.ID] = camp
	if m.links[camp.ID] == nil {
		m.links[camp.ID] = make(map[engine.CamperID]*engine.CamperRecord)
	}
}

// =============================================================================
// CAMP STORE
// =============================================================================

func (m *Memory) FetchCamp(_ context.Context, id engine.CampID) (*engine.Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	camp, ok := m.camps[id]
	if !ok {
		return nil, engine.ErrCampNotFound
	}
	return &camp, nil
}

func (m *Memory) FetchCamps(_ context.Context) ([]engine.Camp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	camps := make([]engine.Camp, 0, len(m.campOrder))
	for _, id := range m.campOrder {
		camps = append(camps, m.camps[id])
	}
	sort.SliceStable(camps, func(i, j int) bool {
		return camps[i].Range.Start.Before(camps[j].Range.Start)
	})
	return camps, nil
}

func (m *Memory) FetchCampers(_ context.Context, id engine.CampID) ([]engine.CamperRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.camps[id]; !ok {
		return nil, engine.ErrCampNotFound
	}
	var records []engine.CamperRecord
	for camperID, stored := range m.links[id] {
		if stored != nil {
			records = append(records, *stored)
			continue
		}
		records = append(records, m.campers[camperID])
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *Memory) InsertCampers(_ context.Context, id engine.CampID, records []engine.CamperRecord) (created, linked int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.camps[id]; !ok {
		return 0, 0, engine.ErrCampNotFound
	}
	if m.links[id] == nil {
		m.links[id] = make(map[engine.CamperID]*engine.CamperRecord)
	}
	for _, record := range records {
		key := record.Identity()
		camperID, exists := m.byIdentity[key]
		if !exists {
			camperID = engine.CamperID(m.nextID("camper"))
			record.ID = camperID
			m.campers[camperID] = record
			m.byIdentity[key] = camperID
			created++
		} else {
			linked++
		}
		if _, alreadyLinked := m.links[id][camperID]; !alreadyLinked {
			stored := record
			stored.ID = camperID
			m.links[id][camperID] = &stored
		}
	}
	return created, linked, nil
}

// =============================================================================
// TOP-UP STORE - Append-only
// =============================================================================

func (m *Memory) AppendTopUp(_ context.Context, topUp engine.StockTopUp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if topUp.ID == "" {
		topUp.ID = m.nextID("topup")
	}
	seq := m.topUps[topUp.CampID]

	// Keep the slice ordered by RecordedAt so reads are cheap.
	i := sort.Search(len(seq), func(i int) bool {
		return seq[i].RecordedAt.After(topUp.RecordedAt)
	})
	seq = append(seq, engine.StockTopUp{})
	copy(seq[i+1:], seq[i:])
	seq[i] = topUp
	m.topUps[topUp.CampID] = seq
	return nil
}

func (m *Memory) FetchTopUps(_ context.Context, id engine.CampID) ([]engine.StockTopUp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]engine.StockTopUp, len(m.topUps[id]))
	copy(result, m.topUps[id])
	return result, nil
}

// =============================================================================
// ASSIGNMENT STORE
// =============================================================================

func (m *Memory) FetchAssignments(_ context.Context, leaderID engine.LeaderID) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]engine.Assignment, len(m.assignments[leaderID]))
	copy(result, m.assignments[leaderID])
	return result, nil
}

func (m *Memory) InsertAssignment(_ context.Context, a engine.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = m.nextID("assignment")
	}
	for _, existing := range m.assignments[a.LeaderID] {
		if existing.CampID == a.CampID {
			return engine.ErrDuplicateAssignment
		}
	}
	m.assignments[a.LeaderID] = append(m.assignments[a.LeaderID], a)
	return nil
}

func (m *Memory) DeleteAssignment(_ context.Context, leaderID engine.LeaderID, campID engine.CampID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.assignments[leaderID][:0]
	for _, a := range m.assignments[leaderID] {
		if a.CampID != campID {
			kept = append(kept, a)
		}
	}
	m.assignments[leaderID] = kept
	return nil
}

// =============================================================================
// LEADER / SETTINGS
// =============================================================================

func (m *Memory) FetchLeader(_ context.Context, id engine.LeaderID) (*engine.Leader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	leader, ok := m.leaders[id]
	if !ok {
		return nil, engine.ErrLeaderNotFound
	}
	return &leader, nil
}

func (m *Memory) InsertLeader(_ context.Context, l engine.Leader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaders[l.ID] = l
	return nil
}

func (m *Memory) GetSetting(_ context.Context, key, fallback string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.settings[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (m *Memory) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

// =============================================================================
// TRANSACTIONAL RUNNER
// =============================================================================

// WithTx simulates a transaction with snapshot + rollback on error. The
// memory store runs fn against itself; concurrent callers serialize on the
// snapshot mutex.
func (m *Memory) WithTx(_ context.Context, fn func(engine.Stores) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snapshot := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

var _ engine.TxRunner = (*Memory)(nil)
var _ engine.Stores = (*Memory)(nil)

func (m *Memory) snapshot() memorySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := memorySnapshot{
		camps:       make(map[engine.CampID]engine.Camp, len(m.camps)),
		campOrder:   append([]engine.CampID{}, m.campOrder...),
		campers:     make(map[engine.CamperID]engine.CamperRecord, len(m.campers)),
		byIdentity:  make(map[engine.IdentityKey]engine.CamperID, len(m.byIdentity)),
		links:       make(map[engine.CampID]map[engine.CamperID]*engine.CamperRecord, len(m.links)),
		topUps:      make(map[engine.CampID][]engine.StockTopUp, len(m.topUps)),
		leaders:     make(map[engine.LeaderID]engine.Leader, len(m.leaders)),
		assignments: make(map[engine.LeaderID][]engine.Assignment, len(m.assignments)),
		settings:    make(map[string]string, len(m.settings)),
		seq:         m.seq,
	}
	for k, v := range m.camps {
		s.camps[k] = v
	}
	for k, v := range m.campers {
		s.campers[k] = v
	}
	for k, v := range m.byIdentity {
		s.byIdentity[k] = v
	}
	for k, v := range m.links {
		inner := make(map[engine.CamperID]*engine.CamperRecord, len(v))
		for ck, cv := range v {
			if cv != nil {
				c := *cv
				inner[ck] = &c
			} else {
				inner[ck] = nil
			}
		}
		s.links[k] = inner
	}
	for k, v := range m.topUps {
		s.topUps[k] = append([]engine.StockTopUp{}, v...)
	}
	for k, v := range m.leaders {
		s.leaders[k] = v
	}
	for k, v := range m.assignments {
		s.assignments[k] = append([]engine.Assignment{}, v...)
	}
	for k, v := range m.settings {
		s.settings[k] = v
	}
	return s
}

func (m *Memory) restore(s memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camps = s.camps
	m.campOrder = s.campOrder
	m.campers = s.campers
	m.byIdentity = s.byIdentity
	m.links = s.links
	m.topUps = s.topUps
	m.leaders = s.leaders
	m.assignments = s.assignments
	m.settings = s.settings
	m.seq = s.seq
}

type memorySnapshot struct {
	camps       map[engine.CampID]engine.Camp
	campOrder   []engine.CampID
	campers     map[engine.CamperID]engine.CamperRecord
	byIdentity  map[engine.IdentityKey]engine.CamperID
	links       map[engine.CampID]map[engine.CamperID]*engine.CamperRecord
	topUps      map[engine.CampID][]engine.StockTopUp
	leaders     map[engine.LeaderID]engine.Leader
	assignments map[engine.LeaderID][]engine.Assignment
	settings    map[string]string
	seq         int
}
