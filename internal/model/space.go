package model

import "tariffsched/internal/interval"

// WorkingSpace is the 48-hour, minute-indexed legal domain of one
// appliance under one tariff (and season, if applicable).
type WorkingSpace struct {
	ApplianceName string
	HorizonMin    int // latest_finish in minutes, <= 2880

	ForbiddenIntervals []interval.Range
	AvailableIntervals []interval.Range

	// PriceLevelIntervals maps level -> sorted disjoint intervals.
	PriceLevelIntervals map[int][]interval.Range
}

// SortedLevels returns the distinct levels present in ascending order.
func (w *WorkingSpace) SortedLevels() []int {
	levels := make([]int, 0, len(w.PriceLevelIntervals))
	for l := range w.PriceLevelIntervals {
		levels = append(levels, l)
	}
	// insertion sort is fine; level counts are tiny (<16 typically)
	for i := 1; i < len(levels); i++ {
		for j := i; j > 0 && levels[j-1] > levels[j]; j-- {
			levels[j-1], levels[j] = levels[j], levels[j-1]
		}
	}
	return levels
}
