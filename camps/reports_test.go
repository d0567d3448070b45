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

func seedCampers(t *testing.T, store *sqlite.Store, campID string, n int) {
	t.Helper()
	records := make([]engine.CamperRecord, 0, n)
	names := []string{"Ada", "Bob", "Eve", "Dan", "Fay"}
	for i := 0; i < n; i++ {
		records = append(records, engine.CamperRecord{
			FirstName:   names[i],
			LastName:    "Roster" + campID,
			DateOfBirth: engine.NewDate(2012, time.March, 1+i),
		})
	}
	_, _, err := store.InsertCampers(context.Background(), engine.CampID(campID), records)
	require.NoError(t, err)
}

// =============================================================================
// SHORTAGE REPORT TESTS
// =============================================================================

func TestShortageReport_EndToEnd(t *testing.T) {
	// GIVEN: 3-day camp, base 10, default 4, 3 campers, +2 top-up on day 2
	// THEN: Day 1 is short by 2; the top-up covers days 2 and 3

	store := newTestStore(t)
	svc := camps.NewReportService(store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 3)
	seedCampers(t, store, "camp-1", 3)
	require.NoError(t, store.AppendTopUp(ctx, engine.StockTopUp{
		CampID:     "camp-1",
		Delta:      decimalInt(2),
		RecordedAt: time.Date(2025, time.July, 2, 8, 0, 0, 0, time.UTC),
	}))

	verdicts, err := svc.ShortageReport(ctx, "camp-1")
	require.NoError(t, err)
	require.Len(t, verdicts, 3)

	assert.True(t, verdicts[0].Shortfall.Equal(decimalInt(2)), "day 1 short by 2, got %v", verdicts[0].Shortfall)
	assert.True(t, verdicts[1].Shortfall.IsZero())
	assert.True(t, verdicts[2].Shortfall.IsZero())
	assert.True(t, verdicts[0].IsShort())
	assert.False(t, verdicts[1].IsShort())
}

func TestShortageReport_UnknownCamp(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewReportService(store)

	_, err := svc.ShortageReport(context.Background(), "ghost")
	assert.True(t, errors.Is(err, engine.ErrCampNotFound))
}

func TestShortageAlerts_OnlyShortCamps(t *testing.T) {
	// camp-short: base 10, 3 campers x 4 = 12 required, no top-ups
	// camp-fine:  base 10, 2 campers x 4 = 8 required

	store := newTestStore(t)
	svc := camps.NewReportService(store)
	ctx := context.Background()

	seedCamp(t, store, "camp-short", 1, 3)
	seedCampers(t, store, "camp-short", 3)
	seedCamp(t, store, "camp-fine", 10, 12)
	seedCampers(t, store, "camp-fine", 2)

	alerts, err := svc.ShortageAlerts(ctx)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, engine.CampID("camp-short"), alerts[0].CampID)
	assert.Len(t, alerts[0].Shortages, 3, "every day of the short camp is short")
	for _, v := range alerts[0].Shortages {
		assert.True(t, v.IsShort())
	}
}

// =============================================================================
// CAMP SUMMARY TESTS
// =============================================================================

func TestCampSummaries_GapComputation(t *testing.T) {
	store := newTestStore(t)
	svc := camps.NewReportService(store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 3)
	seedCampers(t, store, "camp-1", 3)
	require.NoError(t, store.AppendTopUp(ctx, engine.StockTopUp{
		CampID:     "camp-1",
		Delta:      decimalInt(5),
		RecordedAt: time.Date(2025, time.June, 20, 8, 0, 0, 0, time.UTC),
	}))

	summaries, err := svc.CampSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 3, s.CamperCount)
	assert.True(t, s.RequiredDaily.Equal(decimalInt(12)))
	assert.True(t, s.EffectiveStock.Equal(decimalInt(15)), "base 10 + top-up 5")
	assert.True(t, s.Gap.Equal(decimalInt(3)))
}

// =============================================================================
// LEADER PAY TESTS
// =============================================================================

func TestLeaderPay_DaysTimesRate(t *testing.T) {
	// GIVEN: Rate 3.5/day, a 5-day camp and a separate 3-day camp
	// THEN: Total pay = (5 + 3) x 3.5 = 28

	store := newTestStore(t)
	reports := camps.NewReportService(store)
	assignments := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedCamp(t, store, "camp-2", 10, 12)
	seedLeader(t, store, "lead-1", "Sam")
	require.NoError(t, reports.SetDailyPayRate(ctx, decimal.RequireFromString("3.5")))

	_, err := assignments.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)
	_, err = assignments.Claim(ctx, "lead-1", "camp-2")
	require.NoError(t, err)

	report, err := reports.LeaderPay(ctx, "lead-1")
	require.NoError(t, err)

	assert.True(t, report.Total.Equal(decimal.RequireFromString("28")), "got %v", report.Total)
	require.Len(t, report.PerCamp, 2)
	assert.Equal(t, 5, report.PerCamp[0].Days, "day counts are inclusive")
	assert.True(t, report.PerCamp[0].Pay.Equal(decimal.RequireFromString("17.5")))
}

func TestLeaderPay_NoRateConfigured_Zero(t *testing.T) {
	store := newTestStore(t)
	reports := camps.NewReportService(store)
	assignments := camps.NewAssignmentService(store, store)
	ctx := context.Background()

	seedCamp(t, store, "camp-1", 1, 5)
	seedLeader(t, store, "lead-1", "Sam")
	_, err := assignments.Claim(ctx, "lead-1", "camp-1")
	require.NoError(t, err)

	report, err := reports.LeaderPay(ctx, "lead-1")
	require.NoError(t, err)
	assert.True(t, report.Total.IsZero())
}

func TestLeaderPay_UnknownLeader(t *testing.T) {
	store := newTestStore(t)
	reports := camps.NewReportService(store)

	_, err := reports.LeaderPay(context.Background(), "ghost")
	assert.True(t, errors.Is(err, engine.ErrLeaderNotFound))
}
