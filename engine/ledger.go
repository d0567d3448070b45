/*
ledger.go - Append-only stock ledger

PURPOSE:
  The StockLedger is the sole writer of a camp's food stock. The "current"
  stock is never stored: it is always base + fold(top-up deltas), computed
  on demand. That makes the ledger event-sourced and eliminates the whole
  class of stock-drift bugs where a running total disagrees with its
  history.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No update, no delete. Ever.
  2. IMMUTABLE: Once written, a top-up cannot be modified.
  3. DERIVED: EffectiveStock is recomputed from the log every time.

CORRECTIONS:
  A mistaken top-up is not edited. Record a compensating top-up with the
  opposite delta; both remain in the history for audit display.

EXAMPLE:
  Camp base stock 100, top-ups +10 then -3:
    EffectiveStock == 107
  Appending a zero delta fails with ErrInvalidDelta - it is a no-op that
  would only pollute the audit trail.

SEE ALSO:
  - store.go: TopUpStore (persistence)
  - projection.go: Layered ABOVE the ledger; the ledger does no shortage math
*/
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STOCK LEDGER
// =============================================================================

// StockLedger owns the top-up sequence for every camp. Shortage logic is
// deliberately layered above, not folded in, so the ledger stays a minimal
// auditable source of truth.
type StockLedger struct {
	Camps  CampStore
	TopUps TopUpStore
}

// NewStockLedger wires a ledger over the given stores.
func NewStockLedger(camps CampStore, topUps TopUpStore) *StockLedger {
	return &StockLedger{Camps: camps, TopUps: topUps}
}

// Append records one immutable top-up for the camp. Any signed non-zero
// delta is accepted (negative deltas are corrections); a zero delta is
// rejected with ErrInvalidDelta. Unknown camps fail with ErrCampNotFound.
func (l *StockLedger) Append(ctx context.Context, campID CampID, delta decimal.Decimal, at time.Time) error {
	if delta.IsZero() {
		return ErrInvalidDelta
	}
	if _, err := l.Camps.FetchCamp(ctx, campID); err != nil {
		return err
	}
	return l.TopUps.AppendTopUp(ctx, StockTopUp{
		CampID:     campID,
		Delta:      delta,
		RecordedAt: at.UTC(),
	})
}

// EffectiveStock returns base + sum(deltas with RecordedAt <= asOf).
// A nil asOf sums every top-up recorded so far.
func (l *StockLedger) EffectiveStock(ctx context.Context, campID CampID, asOf *time.Time) (decimal.Decimal, error) {
	camp, err := l.Camps.FetchCamp(ctx, campID)
	if err != nil {
		return decimal.Zero, err
	}
	topUps, err := l.TopUps.FetchTopUps(ctx, campID)
	if err != nil {
		return decimal.Zero, err
	}

	stock := camp.BaseFoodStock
	for _, t := range topUps {
		if asOf != nil && t.RecordedAt.After(*asOf) {
			continue
		}
		stock = stock.Add(t.Delta)
	}
	return stock, nil
}

// History returns the camp's top-ups sorted by RecordedAt ascending, for
// audit display.
func (l *StockLedger) History(ctx context.Context, campID CampID) ([]StockTopUp, error) {
	if _, err := l.Camps.FetchCamp(ctx, campID); err != nil {
		return nil, err
	}
	topUps, err := l.TopUps.FetchTopUps(ctx, campID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(topUps, func(i, j int) bool {
		return topUps[i].RecordedAt.Before(topUps[j].RecordedAt)
	})
	return topUps, nil
}
