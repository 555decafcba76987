// Package constraint implements C3: per-appliance behavioral
// constraints and their materialization into a 48-hour forbidden-time
// interval set.
package constraint

import (
	"tariffsched/internal/interval"
	"tariffsched/internal/model"
)

// Store holds constraint records keyed by appliance name, read-only
// once constructed and shared by reference across the pipeline.
type Store struct {
	byName map[string]model.ApplianceConstraint
}

// NewStore builds a Store from a slice of constraint records.
func NewStore(constraints []model.ApplianceConstraint) *Store {
	s := &Store{byName: make(map[string]model.ApplianceConstraint, len(constraints))}
	for _, c := range constraints {
		s.byName[c.ApplianceName] = c
	}
	return s
}

// Get returns the constraint for an appliance and whether it exists.
// A missing constraint means the caller must leave the event
// non-reschedulable rather than fail the pipeline.
func (s *Store) Get(applianceName string) (model.ApplianceConstraint, bool) {
	c, ok := s.byName[applianceName]
	return c, ok
}

// ForbiddenIntervalsIn48h materializes c.ForbiddenTime into a sorted,
// disjoint minute-range list over [0, c.LatestFinishMin), including
// wrap and next-day replicas when LatestFinishMin > 1440.
func ForbiddenIntervalsIn48h(c model.ApplianceConstraint) []interval.Range {
	var raw []interval.Range
	for _, w := range c.ForbiddenTime {
		if w.EndMin <= w.StartMin {
			raw = append(raw, interval.Range{Start: w.StartMin, End: 1440})
			if c.LatestFinishMin > 1440 {
				raw = append(raw, interval.Range{Start: 1440, End: min(1440+w.EndMin, c.LatestFinishMin)})
			}
		} else {
			raw = append(raw, interval.Range{Start: w.StartMin, End: w.EndMin})
			if c.LatestFinishMin > 1440 {
				raw = append(raw, interval.Range{
					Start: 1440 + w.StartMin,
					End:   min(1440+w.EndMin, c.LatestFinishMin),
				})
			}
		}
	}
	merged := interval.Normalize(raw)
	return interval.Clip(merged, 0, c.LatestFinishMin)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
