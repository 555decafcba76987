// Package filter implements C5: two idempotent passes over Shiftable
// events that select which ones are actually worth rescheduling.
package filter

import (
	"tariffsched/internal/constraint"
	"tariffsched/internal/model"
	"tariffsched/internal/tariff"
)

// MinExpensiveMinutes is the Pass B threshold below which an event has
// no meaningful TOU savings potential.
const MinExpensiveMinutes = 5

// PassA applies the minimum-duration filter in place: events shorter
// than their appliance's min_duration are marked non-reschedulable.
// Events for unknown appliances are left non-reschedulable.
func PassA(events []model.Event, store *constraint.Store) {
	for i := range events {
		e := &events[i]
		if e.Shiftability != model.Shiftable || !e.IsReschedulable {
			continue
		}
		c, ok := store.Get(e.ApplianceName)
		if !ok {
			e.IsReschedulable = false
			continue
		}
		if e.DurationMin < c.MinDurationMin {
			e.IsReschedulable = false
		}
	}
}

// PassB applies the TOU-optimization-potential filter in place and
// records PrimaryPriceLevel for every event still tagged Shiftable,
// whether or not it survives rescheduling consideration.
func PassB(events []model.Event, scheme *tariff.Scheme, season tariff.Season) {
	for i := range events {
		e := &events[i]
		if e.Shiftability != model.Shiftable {
			continue
		}

		expensive := 0
		levelCounts := make(map[int]int, 4)
		for offset := 0; offset < e.DurationMin; offset++ {
			minuteOfDay := (e.OriginalStartMinuteOfDay() + offset) % 1440
			lvl := scheme.LevelAt(minuteOfDay, season)
			levelCounts[lvl]++
			if lvl > 0 {
				expensive++
			}
		}
		e.PrimaryPriceLevel = majorityLevel(levelCounts)

		if !e.IsReschedulable {
			continue
		}
		if expensive < MinExpensiveMinutes {
			e.IsReschedulable = false
		}
	}
}

func majorityLevel(counts map[int]int) int {
	best, bestCount := 0, -1
	// deterministic iteration: scan ascending level so ties favor the
	// cheaper level, matching "dominates the event's original minutes"
	maxLevel := 0
	for lvl := range counts {
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	for lvl := 0; lvl <= maxLevel; lvl++ {
		if c, ok := counts[lvl]; ok && c > bestCount {
			best, bestCount = lvl, c
		}
	}
	return best
}
