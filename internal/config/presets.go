package config

import "sort"

// Presets are named, ready-to-run scenarios.
var Presets = map[string]*Config{
	"hanging": {
		Rope:    RopeConfig{Count: 12, Spacing: 0.25, Mass: 1, Pins: []int{0}},
		Gravity: VecConfig{Y: -10},
		Tuning: TuningConfig{
			Damping: 0.1, BendingModel: "xpbd",
			BendHertz: 30, BendDamping: 0.7, StretchStiffness: 0.9,
		},
		Anchor:     AnchorConfig{Motion: "fixed"},
		Dt:         DefaultDt,
		Iterations: 8,
		Duration:   10,
	},
	"pendulum": {
		Rope:    RopeConfig{Count: 8, Spacing: 0.3, Mass: 0.5, Pins: []int{0}},
		Gravity: VecConfig{Y: -10},
		Tuning: TuningConfig{
			Damping: 0.05, BendingModel: "none", StretchStiffness: 1,
		},
		Anchor:     AnchorConfig{Motion: "sway", Amplitude: 0.5, Hertz: 0.3},
		Dt:         DefaultDt,
		Iterations: 12,
		Duration:   20,
	},
	"stiff_rod": {
		Rope:    RopeConfig{Count: 10, Spacing: 0.25, Mass: 1, Pins: []int{0, 1}},
		Gravity: VecConfig{Y: -10},
		Tuning: TuningConfig{
			Damping: 0.2, BendingModel: "pbd",
			BendStiffness: 1, StretchStiffness: 1,
		},
		Anchor:     AnchorConfig{Motion: "fixed"},
		Dt:         DefaultDt,
		Iterations: 16,
		Duration:   10,
	},
	"whip": {
		Rope:    RopeConfig{Count: 16, Spacing: 0.2, Mass: 0.25, Pins: []int{0}},
		Gravity: VecConfig{Y: -10},
		Tuning: TuningConfig{
			Damping: 0.02, BendingModel: "spring",
			BendHertz: 4, BendDamping: 0.3, StretchStiffness: 1,
		},
		Anchor:     AnchorConfig{Motion: "sway", Amplitude: 0.8, Hertz: 0.8},
		Dt:         DefaultDt,
		Iterations: 8,
		Duration:   15,
	},
	"hammock": {
		Rope:    RopeConfig{Count: 9, Spacing: 0.25, Mass: 1, Pins: []int{0, 8}},
		Gravity: VecConfig{Y: -10},
		Tuning: TuningConfig{
			Damping: 0.3, BendingModel: "xpbd",
			BendHertz: 10, BendDamping: 1, StretchStiffness: 0.9,
		},
		Anchor:     AnchorConfig{Motion: "fixed"},
		Dt:         DefaultDt,
		Iterations: 8,
		Duration:   10,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist. Callers may overwrite fields without affecting the preset table.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
