package ioutil

import (
	"encoding/json"
	"os"
	"strconv"

	"tariffsched/internal/interval"
	"tariffsched/internal/model"
)

// spaceDoc is the JSON shape of one appliance's working-space output.
type spaceDoc struct {
	ApplianceName       string             `json:"appliance_name"`
	HorizonMin          int                `json:"horizon_min"`
	AvailableIntervals  []rangeDoc         `json:"available_intervals"`
	ForbiddenIntervals  []rangeDoc         `json:"forbidden_intervals"`
	PriceLevelIntervals map[string][]rangeDoc `json:"price_level_intervals"`
}

type rangeDoc struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func toRangeDocs(ranges []interval.Range) []rangeDoc {
	out := make([]rangeDoc, len(ranges))
	for i, r := range ranges {
		out[i] = rangeDoc{Start: r.Start, End: r.End}
	}
	return out
}

// WriteWorkingSpaceJSON writes the working-space output
// for one or more appliances.
func WriteWorkingSpaceJSON(path string, spaces []model.WorkingSpace) error {
	docs := make([]spaceDoc, len(spaces))
	for i, ws := range spaces {
		levels := make(map[string][]rangeDoc, len(ws.PriceLevelIntervals))
		for lvl, ranges := range ws.PriceLevelIntervals {
			levels[strconv.Itoa(lvl)] = toRangeDocs(ranges)
		}
		docs[i] = spaceDoc{
			ApplianceName:       ws.ApplianceName,
			HorizonMin:          ws.HorizonMin,
			AvailableIntervals:  toRangeDocs(ws.AvailableIntervals),
			ForbiddenIntervals:  toRangeDocs(ws.ForbiddenIntervals),
			PriceLevelIntervals: levels,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
