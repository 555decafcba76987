// Package collision implements C7: a global reconciliation pass over
// scheduled events, repairing any residual overlap the per-appliance
// scheduler should not have produced but the tail-relaxation rule
// makes theoretically possible.
package collision

import (
	"sort"

	"tariffsched/internal/interval"
	"tariffsched/internal/model"
	"tariffsched/internal/scheduler"
)

// Placement bundles a scheduled event's identity with the inputs
// needed to re-run the scheduler on it.
type Placement struct {
	Event       *model.Event
	Constraint  model.ApplianceConstraint
	Space       *model.WorkingSpace
	OriginalIdx int // index into the caller's decisions slice
}

// Resolve scans decisions for residual overlaps (grouped by
// appliance, since cross-appliance overlap is permitted - only a
// single appliance can physically run one event at a time) and
// attempts to re-solve every trailing member of an overlapping group
// via the scheduler, in original_start order. Placements that cannot
// be repaired are downgraded to FAILED/CollisionUnresolved and
// reverted to their original times.
func Resolve(decisions []model.ScheduleDecision, placements []Placement) {
	byAppliance := make(map[string][]int) // applianceID -> indices into decisions
	for i, p := range placements {
		if decisions[i].Status != model.StatusSuccess || p.Event == nil {
			continue
		}
		byAppliance[p.Event.ApplianceID] = append(byAppliance[p.Event.ApplianceID], i)
	}

	for _, idxs := range byAppliance {
		sort.Slice(idxs, func(a, b int) bool {
			return decisions[idxs[a]].OriginalStart < decisions[idxs[b]].OriginalStart
		})

		var placed []interval.Range
		for _, idx := range idxs {
			d := &decisions[idx]
			cur := interval.Range{Start: d.ScheduledStart, End: d.ScheduledEnd}
			if !overlapsAny(cur, placed) {
				placed = append(placed, cur)
				continue
			}

			p := placements[idx]
			retried := scheduler.ScheduleEvent(p.Event, p.Space, p.Constraint, placed)
			if retried.Status == model.StatusSuccess {
				*d = retried
				placed = append(placed, interval.Range{Start: d.ScheduledStart, End: d.ScheduledEnd})
				continue
			}

			d.Status = model.StatusFailed
			d.FailureReason = model.FailureCollisionUnresolved
			d.ScheduledStart = d.OriginalStart
			d.ScheduledEnd = d.OriginalEnd
			d.ScheduledLevel = d.OriginalLevel
			d.ShiftMinutes = 0
			d.OptimizationScore = 0
		}
	}
}

func overlapsAny(r interval.Range, placed []interval.Range) bool {
	for _, p := range placed {
		if r.Start < p.End && r.End > p.Start {
			return true
		}
	}
	return false
}
