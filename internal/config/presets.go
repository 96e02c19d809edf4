package config

import (
	"fmt"
	"sort"
)

// Preset is a named place in the plane worth looking at.
type Preset struct {
	Description   string
	Camera        CameraConfig
	MaxIterations int
	Palette       string
}

var Presets = map[string]Preset{
	"classic": {
		Description:   "the whole set",
		Camera:        CameraConfig{Real: 0, Imag: 0, Zoom: DefaultZoom},
		MaxIterations: DefaultMaxIterations,
		Palette:       "classic",
	},
	"seahorse": {
		Description:   "seahorse valley between the cardioid and the period-2 bulb",
		Camera:        CameraConfig{Real: -0.75, Imag: 0.1, Zoom: 4},
		MaxIterations: 250,
		Palette:       "ocean",
	},
	"elephant": {
		Description:   "elephant valley on the right of the cardioid",
		Camera:        CameraConfig{Real: 0.285, Imag: 0.01, Zoom: 5},
		MaxIterations: 300,
		Palette:       "fire",
	},
	"spiral": {
		Description:   "double spiral deep in seahorse valley",
		Camera:        CameraConfig{Real: -0.761574, Imag: -0.0847596, Zoom: 11},
		MaxIterations: 600,
		Palette:       "classic",
	},
	"minibrot": {
		Description:   "the largest copy on the real axis",
		Camera:        CameraConfig{Real: -1.7548776662, Imag: 0, Zoom: 5.5},
		MaxIterations: 400,
		Palette:       "mono",
	},
	"tendrils": {
		Description:   "filaments above the period-3 bulb",
		Camera:        CameraConfig{Real: -0.1011, Imag: 0.9563, Zoom: 7},
		MaxIterations: 500,
		Palette:       "fire",
	},
}

// GetPreset returns the default config moved to the named preset, or nil.
func GetPreset(name string) *Config {
	if _, ok := Presets[name]; !ok {
		return nil
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset(name); err != nil {
		return nil
	}
	return cfg
}

// ApplyPreset moves the camera, iteration bound and palette to the preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Camera = p.Camera
	c.MaxIterations = p.MaxIterations
	if p.Palette != "" {
		return c.UsePalette(p.Palette)
	}
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
