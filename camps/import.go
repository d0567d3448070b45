/*
import.go - Roster CSV import service

PURPOSE:
  Drives a bulk camper import end to end: resolve the camp, validate the
  CSV header, dedupe the batch (engine.Dedupe), then persist the accepted
  records idempotently. Persistence is "insert, or link if the identity
  already exists; skip if already linked", so re-running the same file is
  harmless.

PROPAGATION POLICY:
  A bad header fails the whole import before any row is read. Bad ROWS do
  not: they are collected into the summary alongside duplicate counts, and
  the remaining rows still land. Nothing is silently swallowed - every
  malformed and duplicate row comes back in the result.

SEE ALSO:
  - engine/dedupe.go: Header validation and the pure dedup transform
  - store/sqlite: The idempotent InsertCampers implementation
*/
package camps

import (
	"context"
	"io"

	"github.com/warp/camptrack/engine"
)

// =============================================================================
// IMPORT SERVICE
// =============================================================================

// ImportService ingests roster CSVs for a camp.
type ImportService struct {
	Store engine.CampStore
}

func NewImportService(store engine.CampStore) *ImportService {
	return &ImportService{Store: store}
}

// ImportSummary reports the outcome of one roster import. Created+Linked
// equals the number of accepted records.
type ImportSummary struct {
	Created    int
	Linked     int
	Accepted   []engine.CamperRecord
	Duplicates []engine.RawRow
	Malformed  []engine.RejectedRow
}

// ImportRoster parses, dedupes, and persists a roster CSV for the camp.
// Fails fast on an unknown camp or a malformed header; individual bad rows
// are reported in the summary, never aborted on.
func (s *ImportService) ImportRoster(ctx context.Context, campID engine.CampID, r io.Reader) (*ImportSummary, error) {
	if _, err := s.Store.FetchCamp(ctx, campID); err != nil {
		return nil, err
	}

	rows, err := engine.ParseRoster(r)
	if err != nil {
		return nil, err
	}

	result := engine.Dedupe(rows)

	created, linked, err := s.Store.InsertCampers(ctx, campID, result.Accepted)
	if err != nil {
		return nil, err
	}

	return &ImportSummary{
		Created:    created,
		Linked:     linked,
		Accepted:   result.Accepted,
		Duplicates: result.Duplicates,
		Malformed:  result.Malformed,
	}, nil
}
