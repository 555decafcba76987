package constraint

import (
	"encoding/json"
	"fmt"
	"os"

	"tariffsched/internal/model"
)

type rawConstraint struct {
	ForbiddenTime [][2]string `json:"forbidden_time"`
	LatestFinish  string      `json:"latest_finish"`
	ShiftRule     string      `json:"shift_rule"`
	MinDuration   int         `json:"min_duration"`
}

// LoadConstraints parses the per-house constraint JSON
// into a slice of model.ApplianceConstraint, one per appliance key.
func LoadConstraints(path string) ([]model.ApplianceConstraint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constraints: %w", err)
	}
	var cfg map[string]rawConstraint
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse constraints: %w", err)
	}

	out := make([]model.ApplianceConstraint, 0, len(cfg))
	for name, rc := range cfg {
		c, err := buildConstraint(name, rc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func buildConstraint(name string, rc rawConstraint) (model.ApplianceConstraint, error) {
	latest := 1440
	if rc.LatestFinish != "" {
		m, err := ParseHHMM48(rc.LatestFinish)
		if err != nil {
			return model.ApplianceConstraint{}, fmt.Errorf("appliance %s: %w", name, err)
		}
		latest = m
	}

	rule := model.ShiftRule(rc.ShiftRule)
	switch rule {
	case model.OnlyDelay, model.OnlyAdvance, model.Both:
	case "":
		rule = model.Both
	default:
		return model.ApplianceConstraint{}, fmt.Errorf("appliance %s: unknown shift_rule %q", name, rc.ShiftRule)
	}

	windows := make([]model.TimeWindow, 0, len(rc.ForbiddenTime))
	for _, pair := range rc.ForbiddenTime {
		s, err := ParseHHMM48(pair[0])
		if err != nil {
			return model.ApplianceConstraint{}, fmt.Errorf("appliance %s: %w", name, err)
		}
		e, err := ParseHHMM48(pair[1])
		if err != nil {
			return model.ApplianceConstraint{}, fmt.Errorf("appliance %s: %w", name, err)
		}
		windows = append(windows, model.TimeWindow{StartMin: s, EndMin: e})
	}

	return model.ApplianceConstraint{
		ApplianceName:   name,
		ForbiddenTime:   windows,
		LatestFinishMin: latest,
		ShiftRule:       rule,
		MinDurationMin:  rc.MinDuration,
	}, nil
}

// ParseHHMM48 parses "HH:MM" with hours 0..48, used for latest_finish
// and forbidden_time endpoints which may express up to 48:00.
func ParseHHMM48(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 48 || m < 0 || m > 59 || (h == 48 && m != 0) {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}
