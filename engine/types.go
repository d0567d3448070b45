/*
Package engine provides the camp resource-and-scheduling consistency core.

PURPOSE:
  This package contains the types and algorithms that keep camp data
  consistent: the interval overlap check that stops a leader from holding
  two overlapping camp assignments, the deduplicating camper importer, the
  append-only stock ledger, and the day-by-day shortage projector.

KEY CONCEPTS IN THIS FILE (types.go):
  - Camp: a dated event with a food baseline and a per-camper default
  - CamperRecord: a camper linked to a camp, with optional food override
  - Assignment: a leader's claim on a camp for the camp's date range
  - StockTopUp: an immutable signed adjustment to a camp's food stock
  - ShortageVerdict: one day's required-vs-planned food comparison

DESIGN PRINCIPLES:
  1. Immutability: top-ups are never edited, only compensated
  2. Precision: decimal.Decimal for all food and pay quantities
  3. Type Safety: distinct ID types prevent mixing camps/leaders/campers
  4. Purity: projection and dedup are pure computations over snapshots

SEE ALSO:
  - daterange.go: DateRange and the overlap predicate
  - ledger.go: StockLedger (append-only top-up log)
  - projection.go: ShortageProjector
  - dedupe.go: CSV roster deduplication
*/
package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CampID string
type CamperID string
type LeaderID string

// =============================================================================
// CAMP
// =============================================================================

// Camp is a dated event that must feed its campers every day of its range.
// BaseFoodStock is the planned daily stock before any top-ups;
// DefaultFoodPerCamper applies to campers without a per-camper override.
type Camp struct {
	ID       CampID
	Name     string
	Location string
	Area     string
	Type     CampType
	Range    DateRange

	BaseFoodStock        decimal.Decimal
	DefaultFoodPerCamper decimal.Decimal
}

type CampType string

const (
	CampDay        CampType = "day"
	CampOvernight  CampType = "overnight"
	CampExpedition CampType = "expedition"
)

// =============================================================================
// CAMPER
// =============================================================================

// CamperRecord is a camper as linked to a camp. FoodUnits overrides the
// camp's default daily requirement when non-nil.
type CamperRecord struct {
	ID               CamperID
	FirstName        string
	LastName         string
	DateOfBirth      Date
	EmergencyContact string
	FoodUnits        *decimal.Decimal
}

// DailyFood returns the camper's daily requirement given the camp default.
func (c CamperRecord) DailyFood(campDefault decimal.Decimal) decimal.Decimal {
	if c.FoodUnits != nil {
		return *c.FoodUnits
	}
	return campDefault
}

// IdentityKey is the dedup identity: case-insensitive name pair plus date of
// birth. Two records with the same key are the same camper.
type IdentityKey struct {
	FirstName   string
	LastName    string
	DateOfBirth string
}

// Identity computes the camper's IdentityKey.
func (c CamperRecord) Identity() IdentityKey {
	return IdentityKey{
		FirstName:   strings.ToLower(strings.TrimSpace(c.FirstName)),
		LastName:    strings.ToLower(strings.TrimSpace(c.LastName)),
		DateOfBirth: c.DateOfBirth.String(),
	}
}

// =============================================================================
// ASSIGNMENT - Leader's claim on a camp
// =============================================================================

// Assignment links a leader to a camp for the camp's date range.
// Assignments are never mutated in place: a range change is modeled as
// delete + recreate, so the overlap invariant is re-checked on the way in.
type Assignment struct {
	ID       string
	LeaderID LeaderID
	CampID   CampID
	Range    DateRange
}

// Leader is a user who can claim camps.
type Leader struct {
	ID   LeaderID
	Name string
}

// =============================================================================
// STOCK TOP-UP - Immutable signed stock adjustment
// =============================================================================

// StockTopUp is one append-only entry in a camp's stock ledger. Delta is
// signed; corrections are new top-ups with compensating deltas, never edits.
type StockTopUp struct {
	ID         string
	CampID     CampID
	Delta      decimal.Decimal
	RecordedAt time.Time
}

// =============================================================================
// SHORTAGE VERDICT - One day's food comparison
// =============================================================================

// ShortageVerdict is the projector's output for a single calendar day.
// Shortfall is max(Required - Planned, 0); a zero shortfall with
// Planned > Required is a surplus day.
type ShortageVerdict struct {
	Date      Date
	Required  decimal.Decimal
	Planned   decimal.Decimal
	Shortfall decimal.Decimal
}

// IsShort reports whether the day runs out of food.
func (v ShortageVerdict) IsShort() bool { return v.Shortfall.IsPositive() }
