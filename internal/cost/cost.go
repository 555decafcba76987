// Package cost implements C8: minute-integrated electricity cost of a
// (power-profile, placement, tariff) triple, and per-event/per-house
// cost summaries.
package cost

import (
	"time"

	"tariffsched/internal/model"
	"tariffsched/internal/tariff"
)

// EventCost bundles a scheduled/unscheduled event's original and
// post-scheduling cost under one tariff.
type EventCost struct {
	EventID        string
	OrigTotalCost  float64
	SchedTotalCost float64
}

// Evaluate computes the Riemann-sum cost of running powerProfile
// starting at placementStart (an absolute timestamp), one minute-bin
// at a time. seasonFor resolves the season for a
// given calendar date; pass a function returning tariff.SeasonNone for
// non-seasonal schemes.
func Evaluate(powerProfile []float64, placementStart time.Time, scheme *tariff.Scheme, seasonFor func(time.Time) tariff.Season) float64 {
	var total float64
	for i, watts := range powerProfile {
		minute := placementStart.Add(time.Duration(i) * time.Minute)
		minuteOfDay := minute.Hour()*60 + minute.Minute()
		season := seasonFor(minute)
		rate := scheme.RateAt(minuteOfDay, season)
		total += (watts / 60.0 / 1000.0) * rate
	}
	return total
}

// EvaluateEvent computes both the original and scheduled cost of one
// event. If the event was never scheduled (FAILED or not
// reschedulable), scheduledStart should equal the event's original
// start so SchedTotalCost == OrigTotalCost.
func EvaluateEvent(e model.Event, scheduledStart time.Time, scheme *tariff.Scheme, seasonFor func(time.Time) tariff.Season) EventCost {
	return EventCost{
		EventID:        e.EventID,
		OrigTotalCost:  Evaluate(e.PowerProfile, e.StartTime, scheme, seasonFor),
		SchedTotalCost: Evaluate(e.PowerProfile, scheduledStart, scheme, seasonFor),
	}
}

// HouseSummary is the per-house/per-tariff cost rollup.
type HouseSummary struct {
	TariffName       string
	TotalOrigCost    float64
	TotalSchedCost   float64
	EventCount       int
	ScheduledCount   int
}

// SavingsFraction returns the fraction of original cost saved by
// scheduling, or 0 if there was no original cost to save.
func (h HouseSummary) SavingsFraction() float64 {
	if h.TotalOrigCost == 0 {
		return 0
	}
	return (h.TotalOrigCost - h.TotalSchedCost) / h.TotalOrigCost
}

// SummarizeHouse rolls up per-event costs into a house/tariff total.
// Scheduled events contribute SchedTotalCost; unscheduled events
// contribute their OrigTotalCost (status-FAILED events and Base/
// NonShiftable events are unchanged from their original placement).
func SummarizeHouse(tariffName string, costs []EventCost, statuses map[string]model.ScheduleStatus) HouseSummary {
	summary := HouseSummary{TariffName: tariffName, EventCount: len(costs)}
	for _, c := range costs {
		summary.TotalOrigCost += c.OrigTotalCost
		if statuses[c.EventID] == model.StatusSuccess {
			summary.TotalSchedCost += c.SchedTotalCost
			summary.ScheduledCount++
		} else {
			summary.TotalSchedCost += c.OrigTotalCost
		}
	}
	return summary
}
