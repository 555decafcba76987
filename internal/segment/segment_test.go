package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariffsched/internal/model"
)

func minuteTimestamps(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.Add(time.Duration(i) * time.Minute)
	}
	return out
}

func TestSegment_SplitsRunAboveThreshold(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matrix := model.PowerMatrix{
		Timestamps: minuteTimestamps(start, 10),
		Appliances: []string{"Dishwasher"},
		Columns:    [][]float64{{0, 0, 500, 500, 500, 500, 0, 0, 0, 0}},
	}
	labels := []model.ApplianceLabel{
		{ApplianceID: "dw", ApplianceName: "Dishwasher", Shiftability: model.Shiftable, Pmin: 100, Tmin: 3},
	}

	events := NewSegmenter().Segment(matrix, labels)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, 4, e.DurationMin)
	assert.Equal(t, start.Add(2*time.Minute), e.StartTime)
	assert.True(t, e.IsReschedulable)
	assert.Equal(t, 2000.0, e.EnergyWMin)
}

func TestSegment_DropsRunShorterThanMinDuration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matrix := model.PowerMatrix{
		Timestamps: minuteTimestamps(start, 5),
		Appliances: []string{"Kettle"},
		Columns:    [][]float64{{0, 500, 500, 0, 0}},
	}
	labels := []model.ApplianceLabel{
		{ApplianceID: "k", ApplianceName: "Kettle", Shiftability: model.NonShiftable, Pmin: 100, Tmin: 5},
	}

	events := NewSegmenter().Segment(matrix, labels)
	assert.Empty(t, events)
}

func TestSegment_UnlabeledColumnDefaultsToNonShiftable(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matrix := model.PowerMatrix{
		Timestamps: minuteTimestamps(start, 20),
		Appliances: []string{"Mystery Load"},
		Columns:    [][]float64{make([]float64, 20)},
	}
	for i := 0; i < 20; i++ {
		matrix.Columns[0][i] = 50
	}

	events := NewSegmenter().Segment(matrix, nil)
	require.Len(t, events, 1)
	assert.Equal(t, model.NonShiftable, events[0].Shiftability)
	assert.False(t, events[0].IsReschedulable)
}

func TestSegment_SkipsColumnWithLengthMismatch(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matrix := model.PowerMatrix{
		Timestamps: minuteTimestamps(start, 10),
		Appliances: []string{"Broken"},
		Columns:    [][]float64{{1, 2, 3}}, // shorter than Timestamps
	}
	events := NewSegmenter().Segment(matrix, nil)
	assert.Empty(t, events)
}

func TestSegment_EventIDsAreOrdinalPerApplianceAndDay(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	matrix := model.PowerMatrix{
		Timestamps: minuteTimestamps(start, 20),
		Appliances: []string{"Kettle"},
		Columns:    [][]float64{{500, 500, 500, 0, 0, 0, 500, 500, 500, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	labels := []model.ApplianceLabel{
		{ApplianceID: "k", ApplianceName: "Kettle", Shiftability: model.Shiftable, Pmin: 100, Tmin: 2},
	}

	events := NewSegmenter().Segment(matrix, labels)
	require.Len(t, events, 2)
	assert.Equal(t, "Kettle_2026-01-01_01", events[0].EventID)
	assert.Equal(t, "Kettle_2026-01-01_02", events[1].EventID)
}
