// Package space implements C4: the per-appliance working-space
// builder, partitioning the legal 48h horizon by tariff price level.
package space

import (
	"tariffsched/internal/constraint"
	"tariffsched/internal/interval"
	"tariffsched/internal/model"
	"tariffsched/internal/tariff"
)

// ProbeStepMin is the fixed 15-minute quantum used to sample price
// levels across an available interval.
const ProbeStepMin = 15

// Build constructs the WorkingSpace for one appliance under one
// tariff scheme and season.
func Build(c model.ApplianceConstraint, scheme *tariff.Scheme, season tariff.Season) model.WorkingSpace {
	forbidden := constraint.ForbiddenIntervalsIn48h(c)
	available := interval.Subtract([]interval.Range{{Start: 0, End: c.LatestFinishMin}}, forbidden)

	levels := make(map[int][]interval.Range)
	for _, run := range available {
		appendLevelRuns(levels, run, scheme, season)
	}
	for lvl, ranges := range levels {
		levels[lvl] = interval.Normalize(ranges)
	}

	return model.WorkingSpace{
		ApplianceName:       c.ApplianceName,
		HorizonMin:          c.LatestFinishMin,
		ForbiddenIntervals:  forbidden,
		AvailableIntervals:  available,
		PriceLevelIntervals: levels,
	}
}

// appendLevelRuns walks run in ProbeStepMin steps, grouping maximal
// constant-level sub-runs and appending them to levels. Consecutive
// same-level runs produced within the same available interval are
// merged by virtue of appending adjacent ranges (Normalize merges
// adjacency later).
func appendLevelRuns(levels map[int][]interval.Range, run interval.Range, scheme *tariff.Scheme, season tariff.Season) {
	current := run.Start
	for current < run.End {
		lvl := scheme.LevelAt(current%1440, season)
		runStart := current
		for current < run.End && scheme.LevelAt(current%1440, season) == lvl {
			current += ProbeStepMin
		}
		runEnd := current
		if runEnd > run.End {
			runEnd = run.End
		}
		levels[lvl] = appendMergingTail(levels[lvl], interval.Range{Start: runStart, End: runEnd})
	}
}

func appendMergingTail(ranges []interval.Range, r interval.Range) []interval.Range {
	if n := len(ranges); n > 0 && ranges[n-1].End == r.Start {
		ranges[n-1].End = r.End
		return ranges
	}
	return append(ranges, r)
}
