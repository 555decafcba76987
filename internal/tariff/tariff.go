// Package tariff implements C1: mapping minute-of-day (and season) to
// a rate and to an integer price level, 0 = cheapest.
package tariff

import "sort"

// Season selects between a seasonal scheme's rate variants. The zero
// value, SeasonNone, is used by non-seasonal schemes.
type Season string

const (
	SeasonNone   Season = ""
	SeasonSummer Season = "summer"
	SeasonWinter Season = "winter"
)

// SeasonForMonth applies the default May-October/November-April split
// used by the TOU_D-style schemes in the source material. Schemes with
// their own month sets should not call this.
func SeasonForMonth(month int) Season {
	if month >= 5 && month <= 10 {
		return SeasonSummer
	}
	return SeasonWinter
}

// Period is a half-open [StartMin, EndMin) window of the 24h day
// (0..1440) at a fixed rate. Wrap-around periods (EndMin <= StartMin)
// must be pre-split before being stored here; Scheme.periodsFor always
// returns pre-split periods.
type Period struct {
	StartMin int
	EndMin   int
	Rate     float64
}

// Scheme is a named tariff. It may be flat, piecewise-constant over
// the day, or seasonal (two independent piecewise-constant variants
// selected by month).
type Scheme struct {
	Name string

	// Flat, when true, ignores Periods/Seasonal and always returns FlatRate.
	Flat     bool
	FlatRate float64

	// Periods is used when the scheme is not seasonal.
	Periods []Period

	// Seasonal, when true, selects SummerPeriods/WinterPeriods by the
	// Season argument to RateAt/LevelAt/DistinctRates.
	Seasonal      bool
	SummerPeriods []Period
	WinterPeriods []Period

	// cached sorted distinct rates, lazily built per season.
	sortedRatesFlat   []float64
	sortedRatesSummer []float64
	sortedRatesWinter []float64
}

// SplitWrap splits a [start, end) window that wraps past midnight
// (end <= start) into one or two non-wrapping [start,1440) / [0,end)
// pieces, both carrying rate.
func SplitWrap(startMin, endMin int, rate float64) []Period {
	if endMin > startMin {
		return []Period{{StartMin: startMin, EndMin: endMin, Rate: rate}}
	}
	out := []Period{{StartMin: startMin, EndMin: 1440, Rate: rate}}
	if endMin > 0 {
		out = append(out, Period{StartMin: 0, EndMin: endMin, Rate: rate})
	}
	return out
}

func (s *Scheme) periodsFor(season Season) []Period {
	if s.Flat {
		return nil
	}
	if s.Seasonal {
		if season == SeasonWinter {
			return s.WinterPeriods
		}
		return s.SummerPeriods
	}
	return s.Periods
}

// sortedPeriods returns periods sorted by StartMin, used for O(log n)
// lookup via binary search.
func sortedPeriods(periods []Period) []Period {
	out := make([]Period, len(periods))
	copy(out, periods)
	sort.Slice(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
	return out
}

// RateAt returns the rate in effect at minute-of-day m (0..1439).
func (s *Scheme) RateAt(minuteOfDay int, season Season) float64 {
	if s.Flat {
		return s.FlatRate
	}
	periods := sortedPeriods(s.periodsFor(season))
	// binary search for the last period with StartMin <= m
	lo, hi := 0, len(periods)-1
	idx := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if periods[mid].StartMin <= minuteOfDay {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if idx >= 0 && minuteOfDay < periods[idx].EndMin {
		return periods[idx].Rate
	}
	// fall back to linear scan across wrap-adjacent pieces (rare: gaps
	// at the day boundary introduced by SplitWrap)
	for _, p := range periods {
		if minuteOfDay >= p.StartMin && minuteOfDay < p.EndMin {
			return p.Rate
		}
	}
	return 0
}

// DistinctRates returns the sorted ascending set of distinct rates for
// the given season (ignored for flat/non-seasonal schemes as
// applicable).
func (s *Scheme) DistinctRates(season Season) []float64 {
	if s.Flat {
		return []float64{s.FlatRate}
	}
	switch {
	case s.Seasonal && season == SeasonWinter:
		if s.sortedRatesWinter == nil {
			s.sortedRatesWinter = distinctSorted(s.WinterPeriods)
		}
		return s.sortedRatesWinter
	case s.Seasonal:
		if s.sortedRatesSummer == nil {
			s.sortedRatesSummer = distinctSorted(s.SummerPeriods)
		}
		return s.sortedRatesSummer
	default:
		if s.sortedRatesFlat == nil {
			s.sortedRatesFlat = distinctSorted(s.Periods)
		}
		return s.sortedRatesFlat
	}
}

func distinctSorted(periods []Period) []float64 {
	seen := map[float64]bool{}
	var rates []float64
	for _, p := range periods {
		if !seen[p.Rate] {
			seen[p.Rate] = true
			rates = append(rates, p.Rate)
		}
	}
	sort.Float64s(rates)
	return rates
}

// LevelAt returns the integer price level (0 = cheapest) of the rate
// in effect at minute-of-day m, within the given season's rate set.
func (s *Scheme) LevelAt(minuteOfDay int, season Season) int {
	rate := s.RateAt(minuteOfDay, season)
	rates := s.DistinctRates(season)
	// linear scan: distinct rate sets are small (<= a handful of tiers)
	for i, r := range rates {
		if r == rate {
			return i
		}
	}
	return 0
}
