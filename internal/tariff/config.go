package tariff

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// rawConfig mirrors the on-disk JSON shape.
type rawConfig struct {
	Type          string                  `json:"type"`
	Rate          float64                 `json:"rate"`
	Periods       []rawPeriod             `json:"periods"`
	SeasonalRates map[string]rawTimeBlock `json:"seasonal_rates"`
}

type rawTimeBlock struct {
	TimeBlocks []rawPeriod `json:"time_blocks"`
}

type rawPeriod struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Rate  float64 `json:"rate"`
}

// LoadSchemes parses a tariff config JSON file into a name-keyed map
// of Scheme's layout (Economy_7, Standard, TOU_D).
func LoadSchemes(path string) (map[string]*Scheme, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tariff config: %w", err)
	}
	var cfg map[string]rawConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse tariff config: %w", err)
	}

	out := make(map[string]*Scheme, len(cfg))
	for name, rc := range cfg {
		scheme, err := buildScheme(name, rc)
		if err != nil {
			return nil, err
		}
		out[name] = scheme
	}
	return out, nil
}

func buildScheme(name string, rc rawConfig) (*Scheme, error) {
	s := &Scheme{Name: name}

	switch {
	case len(rc.SeasonalRates) > 0:
		s.Seasonal = true
		if b, ok := rc.SeasonalRates["summer"]; ok {
			periods, err := buildPeriods(b.TimeBlocks)
			if err != nil {
				return nil, fmt.Errorf("scheme %s summer: %w", name, err)
			}
			s.SummerPeriods = periods
		}
		if b, ok := rc.SeasonalRates["winter"]; ok {
			periods, err := buildPeriods(b.TimeBlocks)
			if err != nil {
				return nil, fmt.Errorf("scheme %s winter: %w", name, err)
			}
			s.WinterPeriods = periods
		}
	case rc.Type == "flat":
		s.Flat = true
		s.FlatRate = rc.Rate
	case rc.Type == "time_based":
		periods, err := buildPeriods(rc.Periods)
		if err != nil {
			return nil, fmt.Errorf("scheme %s: %w", name, err)
		}
		s.Periods = periods
	default:
		return nil, fmt.Errorf("scheme %s: unrecognized tariff shape", name)
	}
	return s, nil
}

func buildPeriods(raw []rawPeriod) ([]Period, error) {
	var out []Period
	for _, rp := range raw {
		startMin, err := parseHHMM(rp.Start)
		if err != nil {
			return nil, err
		}
		endMin, err := parseHHMM(rp.End)
		if err != nil {
			return nil, err
		}
		out = append(out, SplitWrap(startMin, endMin, rp.Rate)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMin < out[j].StartMin })
	return out, nil
}

// parseHHMM parses "HH:MM" (24h, wrap-around permitted: "00:30"
// through "23:59", plus bare "24:00" meaning end-of-day) into
// minutes-from-midnight.
func parseHHMM(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}
