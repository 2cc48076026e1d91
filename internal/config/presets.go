package config

import "sort"

var Presets = map[string]map[string]*Config{
	"cubic_forced": {
		"reference": {
			Problem: "cubic_forced", Method: "rk4", Start: 0, Stop: 5, Points: 10, X0: 0,
		},
		"fine": {
			Problem: "cubic_forced", Method: "rk4", Start: 0, Stop: 5, Points: 501, X0: 0,
		},
		"long": {
			Problem: "cubic_forced", Method: "rk4", Start: 0, Stop: 30, Points: 601, X0: 1,
		},
	},
	"decay": {
		"unit": {
			Problem: "decay", Method: "euler", Start: 0, Stop: 1, Points: 11, X0: 1,
		},
		"stiff": {
			Problem: "decay", Method: "euler", Start: 0, Stop: 10, Points: 5, X0: 1,
		},
	},
	"logistic": {
		"seed": {
			Problem: "logistic", Method: "rk2", Start: 0, Stop: 10, Points: 51, X0: 0.01,
		},
		"overshoot": {
			Problem: "logistic", Method: "rk4", Start: 0, Stop: 10, Points: 51, X0: 2,
		},
	},
	"growth": {
		"unit": {
			Problem: "growth", Method: "rk4", Start: 0, Stop: 1, Points: 11, X0: 1,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return &c
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
