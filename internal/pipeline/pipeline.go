// Package pipeline wires C2 through C8 into a single run over one
// house under one tariff: segment, filter, build working spaces,
// schedule, resolve collisions, and cost the result.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tariffsched/internal/collision"
	"tariffsched/internal/constraint"
	"tariffsched/internal/cost"
	"tariffsched/internal/filter"
	"tariffsched/internal/interval"
	"tariffsched/internal/model"
	"tariffsched/internal/scheduler"
	"tariffsched/internal/segment"
	"tariffsched/internal/space"
	"tariffsched/internal/tariff"
)

// Context carries per-run bookkeeping that must not leak across
// concurrent runs - most importantly the set of mapping-message
// warnings already emitted, so a repeated resolver fallback for the
// same appliance name is not logged twice within one run.
type Context struct {
	RunID        string
	warnedNames  map[string]bool
}

// NewContext creates a fresh per-pipeline Context with a generated
// run ID.
func NewContext() *Context {
	return &Context{
		RunID:       uuid.NewString(),
		warnedNames: make(map[string]bool),
	}
}

// warnOnce reports whether a mapping warning for name has already
// been emitted in this run, marking it emitted if not.
func (c *Context) warnOnce(name string) bool {
	if c.warnedNames[name] {
		return true
	}
	c.warnedNames[name] = true
	return false
}

// Result bundles every artifact a full C2-C8 run produces for one
// house under one tariff.
type Result struct {
	RunID       string
	Events      []model.Event
	Spaces      []model.WorkingSpace
	Decisions   []model.ScheduleDecision
	EventCosts  []cost.EventCost
	HouseSummary cost.HouseSummary
}

// Input bundles the raw per-house inputs a Run needs.
type Input struct {
	House           string
	Matrix          model.PowerMatrix
	Labels          []model.ApplianceLabel
	Constraints     []model.ApplianceConstraint
	Scheme          *tariff.Scheme
	TariffName      string
	SeasonFor       func(time.Time) tariff.Season
}

// Run executes the full pipeline for one house against one tariff
// scheme: segment, filter, build working spaces, schedule, resolve
// collisions, and cost the result.
func Run(ctx *Context, in Input) (*Result, error) {
	if in.Scheme == nil {
		return nil, fmt.Errorf("pipeline: tariff scheme is nil")
	}
	if in.SeasonFor == nil {
		in.SeasonFor = func(time.Time) tariff.Season { return tariff.SeasonNone }
	}

	seg := segment.NewSegmenter()
	events := seg.Segment(in.Matrix, in.Labels)

	store := constraint.NewStore(in.Constraints)

	names := make([]string, 0, len(in.Constraints))
	for _, c := range in.Constraints {
		names = append(names, c.ApplianceName)
	}
	resolver := scheduler.NewNameResolver(names)

	// PassA looks constraints up by exact name, so register each event
	// appliance name under the constraint the resolver maps it to.
	aliased := append([]model.ApplianceConstraint(nil), in.Constraints...)
	for _, e := range events {
		if k, ok := resolver.Resolve(e.ApplianceName); ok && k != e.ApplianceName {
			c, _ := store.Get(k)
			c.ApplianceName = e.ApplianceName
			aliased = append(aliased, c)
		}
	}
	filter.PassA(events, constraint.NewStore(aliased))
	filter.PassB(events, in.Scheme, in.SeasonFor(firstTimestamp(in.Matrix)))

	spaces := make([]model.WorkingSpace, 0, len(in.Constraints))
	spaceByName := make(map[string]*model.WorkingSpace, len(in.Constraints))
	for i := range in.Constraints {
		c := in.Constraints[i]
		season := in.SeasonFor(firstTimestamp(in.Matrix))
		ws := space.Build(c, in.Scheme, season)
		spaces = append(spaces, ws)
		spaceByName[c.ApplianceName] = &spaces[len(spaces)-1]
	}

	decisions := make([]model.ScheduleDecision, len(events))
	placements := make([]collision.Placement, len(events))
	placedByAppliance := make(map[string][]interval.Range)

	for i := range events {
		e := &events[i]
		if e.Shiftability != model.Shiftable {
			decisions[i] = passthroughDecision(e)
			continue
		}

		resolvedName, ok := resolver.Resolve(e.ApplianceName)
		if !ok {
			// No constraint found for a Shiftable event; treat as
			// unschedulable rather than guessing. Only log once per
			// appliance name per run.
			if !ctx.warnOnce("unresolved:" + e.ApplianceName) {
				log.Printf("pipeline: no constraint found for appliance %q", e.ApplianceName)
			}
			decisions[i] = model.ScheduleDecision{
				EventID:       e.EventID,
				OriginalStart: e.OriginalStartMinuteOfDay(),
				OriginalEnd:   e.OriginalStartMinuteOfDay() + e.DurationMin,
				OriginalLevel: e.PrimaryPriceLevel,
				Status:        model.StatusFailed,
				FailureReason: model.FailureNoWorkingSpace,
			}
			continue
		}
		if !e.IsReschedulable {
			decisions[i] = passthroughDecision(e)
			continue
		}

		c, _ := store.Get(resolvedName)
		ws := spaceByName[resolvedName]
		placed := placedByAppliance[e.ApplianceID]

		decisions[i] = scheduler.ScheduleEvent(e, ws, c, placed)
		placements[i] = collision.Placement{
			Event:       e,
			Constraint:  c,
			Space:       ws,
			OriginalIdx: i,
		}
		if decisions[i].Status == model.StatusSuccess {
			placedByAppliance[e.ApplianceID] = append(placedByAppliance[e.ApplianceID],
				interval.Range{Start: decisions[i].ScheduledStart, End: decisions[i].ScheduledEnd})
		}
	}

	collision.Resolve(decisions, placements)

	costs := make([]cost.EventCost, len(events))
	statuses := make(map[string]model.ScheduleStatus, len(events))
	for i := range events {
		e := events[i]
		d := decisions[i]
		statuses[e.EventID] = d.Status

		scheduledStart := e.StartTime
		if d.Status == model.StatusSuccess {
			scheduledStart = minutesToAbsolute(e.StartTime, d.ScheduledStart-d.OriginalStart)
		}
		costs[i] = cost.EvaluateEvent(e, scheduledStart, in.Scheme, in.SeasonFor)
	}

	summary := cost.SummarizeHouse(in.TariffName, costs, statuses)

	return &Result{
		RunID:        ctx.RunID,
		Events:       events,
		Spaces:       spaces,
		Decisions:    decisions,
		EventCosts:   costs,
		HouseSummary: summary,
	}, nil
}

// passthroughDecision produces a no-op SUCCESS decision for events
// that were never candidates for rescheduling (Base/NonShiftable, or
// Shiftable events the filter pass marked non-reschedulable).
func passthroughDecision(e *model.Event) model.ScheduleDecision {
	start := e.OriginalStartMinuteOfDay()
	end := start + e.DurationMin
	return model.ScheduleDecision{
		EventID:           e.EventID,
		OriginalStart:     start,
		OriginalEnd:       end,
		OriginalLevel:     e.PrimaryPriceLevel,
		ScheduledStart:    start,
		ScheduledEnd:      end,
		ScheduledLevel:    e.PrimaryPriceLevel,
		Status:            model.StatusSuccess,
		FailureReason:     model.FailureNone,
		ShiftMinutes:      0,
		OptimizationScore: 0,
	}
}

func firstTimestamp(m model.PowerMatrix) time.Time {
	if len(m.Timestamps) == 0 {
		return time.Time{}
	}
	return m.Timestamps[0]
}

func minutesToAbsolute(original time.Time, deltaMin int) time.Time {
	return original.Add(time.Duration(deltaMin) * time.Minute)
}
