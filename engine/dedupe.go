/*
dedupe.go - Roster CSV parsing and batch deduplication

PURPOSE:
  Bulk camper ingestion arrives as CSV. Before any row touches storage it
  passes through here: header validation, per-row field validation, and
  identity-based deduplication. The transform is pure - no storage, no
  network - so an import can be re-run safely and tested trivially.

PROCESSING ORDER (stable):
  1. Validate the header (exact field set). A bad header fails the whole
     file with MalformedHeaderError before any row is considered.
  2. Per row, in input order:
     - required fields present and date_of_birth parses -> else Malformed
     - food_units, when non-empty, parses as a non-negative number -> else
       Malformed
     - first occurrence of identity key (lower(first), lower(last), dob)
       -> Accepted; every later occurrence -> Duplicates
  First occurrence wins field values: a duplicate row never amends the
  accepted record.

SEE ALSO:
  - camps/import.go: Persists Accepted idempotently and reports counts
  - types.go: CamperRecord.Identity()
*/
package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW ROWS - String-keyed CSV rows
// =============================================================================

// Roster CSV header, fixed by contract with the import collaborator.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldFoodUnits   = "food_units"
)

var rosterHeader = []string{FieldFirstName, FieldLastName, FieldDateOfBirth, FieldFoodUnits}

// RawRow is one CSV row keyed by header field name, untouched by validation.
type RawRow map[string]string

// RejectedRow is a malformed row kept in the import result with the reason
// it was rejected. Rejection never aborts the batch.
type RejectedRow struct {
	Row    RawRow
	Reason string
}

// =============================================================================
// CSV PARSING - Header validation, then raw rows
// =============================================================================

// ParseRoster reads a roster CSV and returns its rows in input order.
// The header must be exactly first_name,last_name,date_of_birth,food_units
// (any order); anything else is a MalformedHeaderError.
func ParseRoster(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &MalformedHeaderError{Got: nil, Want: rosterHeader}
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}
	if !sameFieldSet(header, rosterHeader) {
		return nil, &MalformedHeaderError{Got: header, Want: rosterHeader}
	}

	var rows []RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster csv: %w", err)
		}
		row := RawRow{}
		for i, field := range header {
			if i < len(record) {
				row[field] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sameFieldSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(got))
	for _, f := range got {
		if seen[f] {
			return false
		}
		seen[f] = true
	}
	for _, f := range want {
		if !seen[f] {
			return false
		}
	}
	return true
}

// =============================================================================
// DEDUPLICATION - Pure batch transform
// =============================================================================

// DedupeResult partitions a batch: every input row lands in exactly one of
// Accepted (as a converted CamperRecord), Duplicates, or Malformed.
type DedupeResult struct {
	Accepted   []CamperRecord
	Duplicates []RawRow
	Malformed  []RejectedRow
}

// Dedupe validates and deduplicates roster rows in input order. Later
// duplicates are reported as duplicates of the first-seen record, never the
// other way around.
func Dedupe(rows []RawRow) DedupeResult {
	var result DedupeResult
	seen := make(map[IdentityKey]bool)

	for _, row := range rows {
		record, reason := convertRow(row)
		if reason != "" {
			result.Malformed = append(result.Malformed, RejectedRow{Row: row, Reason: reason})
			continue
		}

		key := record.Identity()
		if seen[key] {
			result.Duplicates = append(result.Duplicates, row)
			continue
		}
		seen[key] = true
		result.Accepted = append(result.Accepted, record)
	}
	return result
}

// convertRow validates one row and builds its CamperRecord.
// Returns a non-empty reason when the row is malformed.
func convertRow(row RawRow) (CamperRecord, string) {
	first := strings.TrimSpace(row[FieldFirstName])
	last := strings.TrimSpace(row[FieldLastName])
	dobRaw := strings.TrimSpace(row[FieldDateOfBirth])

	if first == "" || last == "" || dobRaw == "" {
		return CamperRecord{}, "missing required field"
	}

	dob, err := ParseDate(dobRaw)
	if err != nil {
		return CamperRecord{}, fmt.Sprintf("invalid date_of_birth %q", dobRaw)
	}

	record := CamperRecord{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: dob,
	}

	if raw := strings.TrimSpace(row[FieldFoodUnits]); raw != "" {
		units, err := decimal.NewFromString(raw)
		if err != nil {
			return CamperRecord{}, fmt.Sprintf("invalid food_units %q", raw)
		}
		if units.IsNegative() {
			return CamperRecord{}, fmt.Sprintf("negative food_units %q", raw)
		}
		record.FoodUnits = &units
	}

	return record, ""
}
