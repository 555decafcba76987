package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariffsched/internal/interval"
	"tariffsched/internal/model"
)

func TestResolve_LeavesNonOverlappingDecisionsUntouched(t *testing.T) {
	decisions := []model.ScheduleDecision{
		{EventID: "a", Status: model.StatusSuccess, ScheduledStart: 0, ScheduledEnd: 30, OriginalStart: 0},
		{EventID: "b", Status: model.StatusSuccess, ScheduledStart: 30, ScheduledEnd: 60, OriginalStart: 30},
	}
	placements := []Placement{
		{Event: &model.Event{ApplianceID: "dishwasher"}, OriginalIdx: 0},
		{Event: &model.Event{ApplianceID: "dishwasher"}, OriginalIdx: 1},
	}
	Resolve(decisions, placements)
	assert.Equal(t, model.StatusSuccess, decisions[0].Status)
	assert.Equal(t, model.StatusSuccess, decisions[1].Status)
}

func TestResolve_RetriesTrailingOverlapThenRevertsIfUnrepairable(t *testing.T) {
	ws := &model.WorkingSpace{
		HorizonMin: 100,
		PriceLevelIntervals: map[int][]interval.Range{
			0: {{Start: 0, End: 30}},
		},
	}
	c := model.ApplianceConstraint{ApplianceName: "Dishwasher", ShiftRule: model.Both, MinDurationMin: 10}
	decisions := []model.ScheduleDecision{
		{EventID: "a", Status: model.StatusSuccess, ScheduledStart: 0, ScheduledEnd: 20, OriginalStart: 0, OriginalEnd: 20},
		{EventID: "b", Status: model.StatusSuccess, ScheduledStart: 10, ScheduledEnd: 30, OriginalStart: 10, OriginalEnd: 30},
	}
	placements := []Placement{
		{Event: &model.Event{EventID: "a", ApplianceID: "dishwasher", DurationMin: 20}, Constraint: c, Space: ws, OriginalIdx: 0},
		{Event: &model.Event{EventID: "b", ApplianceID: "dishwasher", DurationMin: 20}, Constraint: c, Space: ws, OriginalIdx: 1},
	}

	Resolve(decisions, placements)

	// "a" (earlier original start) keeps its slot; "b"'s only candidate
	// starts in the level-0 interval are the 15-minute probes 0 and 15,
	// and both 20-minute placements overlap "a", so it reverts to FAILED.
	assert.Equal(t, model.StatusSuccess, decisions[0].Status)
	require.Equal(t, model.StatusFailed, decisions[1].Status)
	assert.Equal(t, model.FailureCollisionUnresolved, decisions[1].FailureReason)
	assert.Equal(t, decisions[1].OriginalStart, decisions[1].ScheduledStart)
}
