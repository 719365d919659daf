package config

import "sort"

// Preset is a named spring feel.
type Preset struct {
	Description string
	Spring      SpringConfig
}

var Presets = map[string]Preset{
	"overlay": {
		Description: "picture-in-picture corner snap",
		Spring:      SpringConfig{DampingRatio: 0.75, Period: 0.25},
	},
	"snappy": {
		Description: "critically damped, no bounce",
		Spring:      SpringConfig{DampingRatio: 1.0, Period: 0.15},
	},
	"bouncy": {
		Description: "pronounced overshoot and ring",
		Spring:      SpringConfig{DampingRatio: 0.35, Period: 0.4},
	},
	"heavy": {
		Description: "overdamped, slow creep to target",
		Spring:      SpringConfig{DampingRatio: 1.6, Period: 0.6},
	},
	"floaty": {
		Description: "long period drift with a soft catch",
		Spring:      SpringConfig{DampingRatio: 0.45, Period: 1.2},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
