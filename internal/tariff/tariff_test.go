package tariff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWrap_NonWrapping(t *testing.T) {
	out := SplitWrap(60, 120, 0.30)
	assert.Equal(t, []Period{{StartMin: 60, EndMin: 120, Rate: 0.30}}, out)
}

func TestSplitWrap_AcrossMidnight(t *testing.T) {
	out := SplitWrap(1380, 60, 0.10) // 23:00 -> 01:00
	assert.Equal(t, []Period{
		{StartMin: 1380, EndMin: 1440, Rate: 0.10},
		{StartMin: 0, EndMin: 60, Rate: 0.10},
	}, out)
}

func TestSplitWrap_EndAtMidnightExactly(t *testing.T) {
	out := SplitWrap(1380, 0, 0.10)
	assert.Equal(t, []Period{{StartMin: 1380, EndMin: 1440, Rate: 0.10}}, out)
}

func flatScheme(rate float64) *Scheme {
	return &Scheme{Name: "flat", Flat: true, FlatRate: rate}
}

func touScheme() *Scheme {
	return &Scheme{
		Name: "tou",
		Periods: []Period{
			{StartMin: 0, EndMin: 420, Rate: 0.10},   // night
			{StartMin: 420, EndMin: 960, Rate: 0.20}, // day
			{StartMin: 960, EndMin: 1440, Rate: 0.35}, // peak
		},
	}
}

func TestRateAt_Flat(t *testing.T) {
	s := flatScheme(0.18)
	assert.Equal(t, 0.18, s.RateAt(0, SeasonNone))
	assert.Equal(t, 0.18, s.RateAt(1439, SeasonNone))
}

func TestRateAt_TOUBoundaries(t *testing.T) {
	s := touScheme()
	assert.Equal(t, 0.10, s.RateAt(0, SeasonNone))
	assert.Equal(t, 0.10, s.RateAt(419, SeasonNone))
	assert.Equal(t, 0.20, s.RateAt(420, SeasonNone))
	assert.Equal(t, 0.35, s.RateAt(960, SeasonNone))
	assert.Equal(t, 0.35, s.RateAt(1439, SeasonNone))
}

func TestLevelAt_OrdersByAscendingRate(t *testing.T) {
	s := touScheme()
	assert.Equal(t, 0, s.LevelAt(0, SeasonNone))
	assert.Equal(t, 1, s.LevelAt(420, SeasonNone))
	assert.Equal(t, 2, s.LevelAt(960, SeasonNone))
}

func TestSeasonal_SummerAndWinterDiffer(t *testing.T) {
	s := &Scheme{
		Name:     "seasonal",
		Seasonal: true,
		SummerPeriods: []Period{{StartMin: 0, EndMin: 1440, Rate: 0.40}},
		WinterPeriods: []Period{{StartMin: 0, EndMin: 1440, Rate: 0.15}},
	}
	assert.Equal(t, 0.40, s.RateAt(600, SeasonSummer))
	assert.Equal(t, 0.15, s.RateAt(600, SeasonWinter))
}

func TestSeasonForMonth_DefaultSplit(t *testing.T) {
	assert.Equal(t, SeasonSummer, SeasonForMonth(5))
	assert.Equal(t, SeasonSummer, SeasonForMonth(10))
	assert.Equal(t, SeasonWinter, SeasonForMonth(11))
	assert.Equal(t, SeasonWinter, SeasonForMonth(4))
	assert.Equal(t, SeasonWinter, SeasonForMonth(1))
}

func TestDistinctRates_SortedAscending(t *testing.T) {
	s := touScheme()
	assert.Equal(t, []float64{0.10, 0.20, 0.35}, s.DistinctRates(SeasonNone))
}
