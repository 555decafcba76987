package cost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tariffsched/internal/model"
	"tariffsched/internal/tariff"
)

func flatSeasonFor(time.Time) tariff.Season { return tariff.SeasonNone }

func TestEvaluate_FlatRateIsLinearInEnergy(t *testing.T) {
	scheme := &tariff.Scheme{Name: "flat", Flat: true, FlatRate: 0.30} // $/kWh
	profile := []float64{1000, 1000, 1000}                            // 3 minutes at 1000W
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	total := Evaluate(profile, start, scheme, flatSeasonFor)
	// 1000W for 3 minutes = 3000 Wmin = 0.05 kWh, at $0.30/kWh = $0.015
	assert.InDelta(t, 0.015, total, 1e-9)
}

func TestEvaluate_CrossesRateBoundaryMidEvent(t *testing.T) {
	scheme := &tariff.Scheme{
		Name: "tou",
		Periods: []tariff.Period{
			{StartMin: 0, EndMin: 1, Rate: 0.10},
			{StartMin: 1, EndMin: 1440, Rate: 0.50},
		},
	}
	profile := []float64{600, 600} // two minutes at 600W
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	total := Evaluate(profile, start, scheme, flatSeasonFor)
	// minute 0 at 0.10, minute 1 at 0.50; each minute is 10 Wh = 0.01 kWh
	expected := 0.01*0.10 + 0.01*0.50
	assert.InDelta(t, expected, total, 1e-9)
}

func TestEvaluateEvent_UnscheduledHasEqualCosts(t *testing.T) {
	scheme := &tariff.Scheme{Name: "flat", Flat: true, FlatRate: 0.20}
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	e := model.Event{EventID: "e1", StartTime: start, PowerProfile: []float64{500, 500}}

	ec := EvaluateEvent(e, e.StartTime, scheme, flatSeasonFor)
	assert.Equal(t, ec.OrigTotalCost, ec.SchedTotalCost)
}

func TestSummarizeHouse_UnscheduledEventsKeepOriginalCost(t *testing.T) {
	costs := []EventCost{
		{EventID: "a", OrigTotalCost: 1.0, SchedTotalCost: 0.5},
		{EventID: "b", OrigTotalCost: 2.0, SchedTotalCost: 1.8},
	}
	statuses := map[string]model.ScheduleStatus{
		"a": model.StatusSuccess,
		"b": model.StatusFailed,
	}
	summary := SummarizeHouse("Economy_7", costs, statuses)
	assert.Equal(t, 3.0, summary.TotalOrigCost)
	// a contributes its scheduled cost (0.5), b keeps its original (2.0)
	assert.Equal(t, 2.5, summary.TotalSchedCost)
	assert.Equal(t, 1, summary.ScheduledCount)
}

func TestHouseSummary_SavingsFraction(t *testing.T) {
	s := HouseSummary{TotalOrigCost: 10, TotalSchedCost: 8}
	assert.InDelta(t, 0.2, s.SavingsFraction(), 1e-9)

	zero := HouseSummary{}
	assert.Equal(t, 0.0, zero.SavingsFraction())
}
