/*
projection.go - Day-by-day food shortage projection

PURPOSE:
  Answers, for every calendar day of a camp, "will planned stock cover the
  campers present that day?". The evaluation is strictly per-day, never
  averaged: a camp can be within budget on average yet run out on one day
  because a top-up arrived late relative to camper load. An averaged or
  duration-total comparison would mask exactly those single-day spikes.

ALGORITHM (per day d in [range.Start, range.End] inclusive):
  required(d) = sum over present campers of (override or camp default)
  planned(d)  = base stock + sum of top-up deltas recorded <= end-of-day(d)
  shortfall   = max(required - planned, 0)

  Top-ups recorded after day d do not retroactively cover d - a top-up
  arrives at a point in time, it is not pre-allocated across the camp.
  A top-up recorded on the final day still counts toward that day.

PRESENCE:
  Absent finer attendance data, every linked camper is present every day.
  A PresenceSource substitutes a per-day subset; the projection algorithm
  itself is agnostic to where presence comes from.

PURITY:
  The projector owns no state and mutates nothing. Same inputs, same
  output, every time.

SEE ALSO:
  - ledger.go: Owns the top-up log this projector reads
  - camps/reports.go: Aggregates per-camp reports into cross-camp alerts
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRESENCE SOURCE - Extension point for per-day attendance
// =============================================================================

// PresenceSource yields the campers counted as present on a given day.
// The default (nil) source treats the full roster as present every day.
type PresenceSource interface {
	Present(day Date, roster []CamperRecord) []CamperRecord
}

// FullRoster is the default presence source: everyone, every day.
type FullRoster struct{}

func (FullRoster) Present(_ Date, roster []CamperRecord) []CamperRecord { return roster }

// =============================================================================
// SHORTAGE PROJECTOR
// =============================================================================

// ShortageProjector computes one ShortageVerdict per calendar day of a
// camp's range. It is a pure computation over the snapshots handed to it.
type ShortageProjector struct {
	// Presence overrides the present-camper set per day; nil means the
	// full roster is present every day.
	Presence PresenceSource
}

// Project returns verdicts for every day of camp.Range, ascending. A valid
// single-day camp yields exactly one verdict.
func (p *ShortageProjector) Project(camp Camp, campers []CamperRecord, topUps []StockTopUp) []ShortageVerdict {
	presence := p.Presence
	if presence == nil {
		presence = FullRoster{}
	}

	days := camp.Range.Days()
	verdicts := make([]ShortageVerdict, 0, len(days))

	for _, day := range days {
		required := decimal.Zero
		for _, camper := range presence.Present(day, campers) {
			required = required.Add(camper.DailyFood(camp.DefaultFoodPerCamper))
		}

		planned := camp.BaseFoodStock
		cutoff := day.EndOfDay()
		for _, t := range topUps {
			if !t.RecordedAt.After(cutoff) {
				planned = planned.Add(t.Delta)
			}
		}

		shortfall := required.Sub(planned)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}

		verdicts = append(verdicts, ShortageVerdict{
			Date:      day,
			Required:  required,
			Planned:   planned,
			Shortfall: shortfall,
		})
	}
	return verdicts
}
