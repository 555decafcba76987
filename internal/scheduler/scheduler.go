// Package scheduler implements C6: choosing a new start minute for
// one reschedulable event within its appliance's working space,
// respecting constraints, the shift rule, and already-placed events.
package scheduler

import (
	"tariffsched/internal/interval"
	"tariffsched/internal/model"
)

// MandatoryDelayMin is the minimum delay enforced by the only_delay
// shift rule
const MandatoryDelayMin = 5

// ProbeStepMin mirrors space.ProbeStepMin; duplicated here (rather
// than imported) to keep scheduler decoupled from the space package's
// build-time concerns - it only needs the quantum, not the builder.
const ProbeStepMin = 15

// Scheduler is a stateless handle with no methods; placement is done
// by ScheduleEvent, and callers keep the per-appliance placed-interval
// list themselves.
type Scheduler struct{}

func New() *Scheduler { return &Scheduler{} }

// candidate is one (level, start) pair under consideration.
type candidate struct {
	level int
	start int
}

// ScheduleEvent finds the cheapest legal placement for one event
// within ws, given the already-scheduled intervals for the same
// appliance (placed) and the appliance's constraint. placed is read
// only; the caller is responsible for appending the accepted interval
// on success.
func ScheduleEvent(e *model.Event, ws *model.WorkingSpace, c model.ApplianceConstraint, placed []interval.Range) model.ScheduleDecision {
	originalStart := e.OriginalStartMinuteOfDay()
	originalEnd := originalStart + e.DurationMin
	decision := model.ScheduleDecision{
		EventID:       e.EventID,
		OriginalStart: originalStart,
		OriginalEnd:   originalEnd,
		OriginalLevel: e.PrimaryPriceLevel,
	}

	if ws == nil {
		decision.Status = model.StatusFailed
		decision.FailureReason = model.FailureNoWorkingSpace
		return decision
	}

	if e.DurationMin < c.MinDurationMin {
		decision.Status = model.StatusFailed
		decision.FailureReason = model.FailureDurationBelowMin
		return decision
	}

	// Geometry-only candidates: shift rule + horizon, ignoring
	// forbidden intervals and already-placed events. Used both to
	// enumerate real candidates and to diagnose failure reasons.
	geometry := geometryCandidates(ws, c.ShiftRule, originalStart, e.DurationMin)
	if len(geometry) == 0 {
		decision.Status = model.StatusFailed
		decision.FailureReason = diagnoseNoGeometry(c, originalStart, e.DurationMin, ws.HorizonMin)
		return decision
	}

	forbiddenOK := make([]candidate, 0, len(geometry))
	for _, cand := range geometry {
		if !violatesForbidden(cand.start, cand.start+e.DurationMin, ws.ForbiddenIntervals) {
			forbiddenOK = append(forbiddenOK, cand)
		}
	}
	if len(forbiddenOK) == 0 {
		decision.Status = model.StatusFailed
		decision.FailureReason = model.FailureForbiddenOverlap
		return decision
	}

	best, ok := firstLegal(forbiddenOK, e.DurationMin, placed)
	if !ok {
		decision.Status = model.StatusFailed
		decision.FailureReason = model.FailureNoValidCandidate
		return decision
	}

	decision.Status = model.StatusSuccess
	decision.ScheduledStart = best.start
	decision.ScheduledEnd = best.start + e.DurationMin
	decision.ScheduledLevel = best.level
	decision.ShiftMinutes = best.start - originalStart
	decision.OptimizationScore = optimizationScore(e.PrimaryPriceLevel, best.level)
	return decision
}

func optimizationScore(originalLevel, scheduledLevel int) float64 {
	if scheduledLevel < originalLevel {
		return float64(originalLevel - scheduledLevel)
	}
	return 0.1
}

// geometryCandidates enumerates every ProbeStepMin-spaced start within
// each price-level interval that passes the shift rule and horizon, in
// ascending (level, start) order, ignoring forbidden overlap and
// placed-interval overlap (those are applied afterward).
func geometryCandidates(ws *model.WorkingSpace, rule model.ShiftRule, originalStart, duration int) []candidate {
	var out []candidate
	for _, level := range ws.SortedLevels() {
		for _, r := range ws.PriceLevelIntervals[level] {
			for s := r.Start; s < r.End; s += ProbeStepMin {
				if s+duration > ws.HorizonMin {
					break
				}
				switch rule {
				case model.OnlyDelay:
					if s < originalStart+MandatoryDelayMin {
						continue
					}
				case model.OnlyAdvance:
					if s+duration > originalStart {
						continue
					}
				}
				out = append(out, candidate{level: level, start: s})
			}
		}
	}
	return out
}

// firstLegal returns the first candidate (already in ascending
// (level, start) order) whose placement does not overlap any interval
// in placed.
func firstLegal(candidates []candidate, duration int, placed []interval.Range) (candidate, bool) {
	for _, cand := range candidates {
		if !overlapsAny(cand.start, cand.start+duration, placed) {
			return cand, true
		}
	}
	return candidate{}, false
}

func overlapsAny(start, end int, placed []interval.Range) bool {
	for _, p := range placed {
		if start < p.End && end > p.Start {
			return true
		}
	}
	return false
}

// violatesForbidden applies the tail-relaxation rule:
// a placement is illegal only if one of its endpoints lies inside a
// forbidden interval, or a forbidden interval is fully contained
// within the placement.
func violatesForbidden(start, end int, forbidden []interval.Range) bool {
	for _, f := range forbidden {
		if pointInside(start, f) || pointInside(end, f) {
			return true
		}
		if f.Start >= start && f.End <= end {
			return true
		}
	}
	return false
}

func pointInside(p int, f interval.Range) bool {
	return p >= f.Start && p < f.End
}

// diagnoseNoGeometry distinguishes a shift-rule dead end from a
// deadline that cannot be met, since both present as "zero geometry
// candidates" but warrant different failure reasons.
func diagnoseNoGeometry(c model.ApplianceConstraint, originalStart, duration, horizon int) model.FailureReason {
	switch c.ShiftRule {
	case model.OnlyDelay:
		if originalStart+MandatoryDelayMin+duration > horizon {
			return model.FailureDeadlineUnreachable
		}
	case model.OnlyAdvance:
		if duration > originalStart {
			return model.FailureShiftRuleViolated
		}
	}
	return model.FailureNoValidCandidate
}
