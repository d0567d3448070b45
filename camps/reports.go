/*
reports.go - Shortage reports, cross-camp alerts, summaries, leader pay

PURPOSE:
  Read-only reporting over the engine. Loads snapshots (camp, roster,
  top-ups) from storage and hands them to the pure ShortageProjector;
  aggregates the per-camp reports into cross-camp alerts. Nothing here
  mutates anything.

REPORTS:
  ShortageReport:  one verdict per day of one camp
  ShortageAlerts:  camps with at least one shortfall day, shortfall days only
  CampSummaries:   per camp - roster size, required daily food, effective
                   stock, gap
  LeaderPay:       inclusive assignment day counts x the daily pay rate

PAY RATE:
  The daily rate lives in the settings store under "daily_pay_rate" and is
  parsed as a decimal. An absent or blank rate means zero pay.

SEE ALSO:
  - engine/projection.go: The per-day algorithm
  - engine/ledger.go: Effective stock fold
*/
package camps

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/warp/camptrack/engine"
)

// DailyPayRateKey is the settings key holding the leader daily pay rate.
const DailyPayRateKey = "daily_pay_rate"

// =============================================================================
// REPORT SERVICE
// =============================================================================

// ReportService produces read-only reports. It owns no state.
type ReportService struct {
	Store     engine.Stores
	Projector *engine.ShortageProjector
}

func NewReportService(store engine.Stores) *ReportService {
	return &ReportService{Store: store, Projector: &engine.ShortageProjector{}}
}

// ShortageReport returns the day-by-day verdicts for one camp.
func (s *ReportService) ShortageReport(ctx context.Context, campID engine.CampID) ([]engine.ShortageVerdict, error) {
	camp, err := s.Store.FetchCamp(ctx, campID)
	if err != nil {
		return nil, err
	}
	campers, err := s.Store.FetchCampers(ctx, campID)
	if err != nil {
		return nil, err
	}
	topUps, err := s.Store.FetchTopUps(ctx, campID)
	if err != nil {
		return nil, err
	}
	return s.Projector.Project(*camp, campers, topUps), nil
}

// CampAlert flags a camp that runs short on at least one day. Shortages
// holds only the shortfall days, not the full report.
type CampAlert struct {
	CampID    engine.CampID
	CampName  string
	Shortages []engine.ShortageVerdict
}

// ShortageAlerts projects every camp and returns those with shortfall days.
func (s *ReportService) ShortageAlerts(ctx context.Context) ([]CampAlert, error) {
	allCamps, err := s.Store.FetchCamps(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []CampAlert
	for _, camp := range allCamps {
		verdicts, err := s.ShortageReport(ctx, camp.ID)
		if err != nil {
			return nil, err
		}
		var short []engine.ShortageVerdict
		for _, v := range verdicts {
			if v.IsShort() {
				short = append(short, v)
			}
		}
		if len(short) > 0 {
			alerts = append(alerts, CampAlert{CampID: camp.ID, CampName: camp.Name, Shortages: short})
		}
	}
	return alerts, nil
}

// =============================================================================
// CAMP SUMMARIES
// =============================================================================

// CampSummary is the coordinator's one-line view of a camp: how much food
// each day needs versus how much is effectively planned right now.
type CampSummary struct {
	Camp           engine.Camp
	CamperCount    int
	RequiredDaily  decimal.Decimal
	EffectiveStock decimal.Decimal
	Gap            decimal.Decimal
}

// CampSummaries builds a summary per camp, ordered by start date.
func (s *ReportService) CampSummaries(ctx context.Context) ([]CampSummary, error) {
	allCamps, err := s.Store.FetchCamps(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]CampSummary, 0, len(allCamps))
	for _, camp := range allCamps {
		campers, err := s.Store.FetchCampers(ctx, camp.ID)
		if err != nil {
			return nil, err
		}
		topUps, err := s.Store.FetchTopUps(ctx, camp.ID)
		if err != nil {
			return nil, err
		}

		required := decimal.Zero
		for _, c := range campers {
			required = required.Add(c.DailyFood(camp.DefaultFoodPerCamper))
		}
		effective := camp.BaseFoodStock
		for _, t := range topUps {
			effective = effective.Add(t.Delta)
		}

		summaries = append(summaries, CampSummary{
			Camp:           camp,
			CamperCount:    len(campers),
			RequiredDaily:  required,
			EffectiveStock: effective,
			Gap:            effective.Sub(required),
		})
	}
	return summaries, nil
}

// =============================================================================
// LEADER PAY
// =============================================================================

// CampPay is one assignment's pay line.
type CampPay struct {
	CampID   engine.CampID
	CampName string
	Days     int
	Pay      decimal.Decimal
}

// PayReport is a leader's pay across all held assignments.
type PayReport struct {
	LeaderID  engine.LeaderID
	DailyRate decimal.Decimal
	Total     decimal.Decimal
	PerCamp   []CampPay
}

// LeaderPay computes pay as inclusive assignment days times the daily rate.
func (s *ReportService) LeaderPay(ctx context.Context, leaderID engine.LeaderID) (*PayReport, error) {
	if _, err := s.Store.FetchLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	assignments, err := s.Store.FetchAssignments(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	rate, err := s.DailyPayRate(ctx)
	if err != nil {
		return nil, err
	}

	report := &PayReport{LeaderID: leaderID, DailyRate: rate, Total: decimal.Zero}
	for _, a := range assignments {
		name := string(a.CampID)
		if camp, err := s.Store.FetchCamp(ctx, a.CampID); err == nil {
			name = camp.Name
		}
		days := a.Range.Len()
		pay := rate.Mul(decimal.NewFromInt(int64(days)))
		report.Total = report.Total.Add(pay)
		report.PerCamp = append(report.PerCamp, CampPay{
			CampID:   a.CampID,
			CampName: name,
			Days:     days,
			Pay:      pay,
		})
	}
	return report, nil
}

// DailyPayRate reads the configured rate; absent or blank means zero.
func (s *ReportService) DailyPayRate(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.Store.GetSetting(ctx, DailyPayRateKey, "0")
	if err != nil {
		return decimal.Zero, err
	}
	if raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	return rate, nil
}

// SetDailyPayRate stores the rate.
func (s *ReportService) SetDailyPayRate(ctx context.Context, rate decimal.Decimal) error {
	return s.Store.SetSetting(ctx, DailyPayRateKey, rate.String())
}
