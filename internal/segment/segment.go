// Package segment implements C2: turning a per-minute power matrix
// into typed Event records, one appliance column at a time.
package segment

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"tariffsched/internal/model"
)

var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

func sanitize(name string) string {
	s := sanitizeRe.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.Trim(s, "_")
}

// Segmenter turns one appliance's minute series into events. It keeps
// no state across calls beyond the per-day ordinal counters needed for
// deterministic event IDs.
type Segmenter struct {
	dayCounters map[string]map[string]int // applianceID -> YYYY-MM-DD -> count
}

func NewSegmenter() *Segmenter {
	return &Segmenter{dayCounters: make(map[string]map[string]int)}
}

// Segment runs C2 over the full matrix, applying labels per appliance
// column. Columns with no matching label use the generic defaults.
// Malformed columns (length mismatch with Timestamps) are skipped with
// a logged warning.
func (s *Segmenter) Segment(matrix model.PowerMatrix, labels []model.ApplianceLabel) []model.Event {
	labelByName := make(map[string]model.ApplianceLabel, len(labels))
	for _, l := range labels {
		labelByName[l.ApplianceName] = l
	}

	var events []model.Event
	for col, name := range matrix.Appliances {
		if col >= len(matrix.Columns) {
			log.Printf("segment: missing power column for appliance %q, skipping", name)
			continue
		}
		watts := matrix.Columns[col]
		if len(watts) != len(matrix.Timestamps) {
			log.Printf("segment: appliance %q column length %d does not match timestamp count %d, skipping", name, len(watts), len(matrix.Timestamps))
			continue
		}

		label, ok := labelByName[name]
		if !ok {
			label = model.ApplianceLabel{
				ApplianceID:   name,
				ApplianceName: name,
				Shiftability:  model.NonShiftable,
			}
		}
		pmin, tmin := label.Pmin, label.Tmin
		if pmin <= 0 {
			pmin, _ = model.DefaultThresholds(label.Shiftability)
		}
		if tmin <= 0 {
			_, tmin = model.DefaultThresholds(label.Shiftability)
		}

		events = append(events, s.segmentColumn(matrix, col, label, pmin, tmin)...)
	}
	return events
}

func (s *Segmenter) segmentColumn(matrix model.PowerMatrix, col int, label model.ApplianceLabel, pmin float64, tmin int) []model.Event {
	watts := matrix.Columns[col]
	var out []model.Event

	runStart := -1
	flush := func(endIdx int) {
		if runStart < 0 {
			return
		}
		length := endIdx - runStart
		if length >= tmin {
			out = append(out, s.buildEvent(matrix, col, label, runStart, endIdx))
		}
		runStart = -1
	}

	for i, w := range watts {
		if w > pmin {
			if runStart < 0 {
				runStart = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(watts))

	return out
}

func (s *Segmenter) buildEvent(matrix model.PowerMatrix, col int, label model.ApplianceLabel, startIdx, endIdx int) model.Event {
	start := matrix.Timestamps[startIdx]
	duration := endIdx - startIdx
	end := start.Add(time.Duration(duration) * time.Minute)

	watts := matrix.Columns[col]
	profile := make([]float64, duration)
	var energy float64
	for i := 0; i < duration; i++ {
		w := watts[startIdx+i]
		profile[i] = w
		energy += w
	}

	day := start.Format("2006-01-02")
	applianceKey := label.ApplianceID
	if applianceKey == "" {
		applianceKey = label.ApplianceName
	}
	if s.dayCounters[applianceKey] == nil {
		s.dayCounters[applianceKey] = make(map[string]int)
	}
	s.dayCounters[applianceKey][day]++
	ordinal := s.dayCounters[applianceKey][day]

	id := fmt.Sprintf("%s_%s_%02d", sanitize(label.ApplianceName), day, ordinal)

	return model.Event{
		EventID:           id,
		ApplianceID:       applianceKey,
		ApplianceName:     label.ApplianceName,
		Shiftability:      label.Shiftability,
		StartTime:         start,
		EndTime:           end,
		DurationMin:       duration,
		EnergyWMin:        energy,
		PowerProfile:      profile,
		IsReschedulable:   label.Shiftability == model.Shiftable,
		PrimaryPriceLevel: -1,
	}
}
