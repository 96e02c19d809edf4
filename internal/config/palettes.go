package config

import "sort"

// Palettes are gradient sections by name. The classic palette is the
// blue-red-yellow-green-cyan cycle with a black interior.
var Palettes = map[string]GradientConfig{
	"classic": {
		Period:  100,
		Initial: "#0000ff",
		Stops: []StopConfig{
			{Offset: 0.3, Color: "#ff0000"},
			{Offset: 0.5, Color: "#ffff00"},
			{Offset: 0.7, Color: "#00ff00"},
			{Offset: 0.9, Color: "#00ffff"},
		},
		Final:   "#000000",
		Falloff: 10,
	},
	"fire": {
		Period:  64,
		Initial: "#140000",
		Stops: []StopConfig{
			{Offset: 0.25, Color: "#b01000"},
			{Offset: 0.5, Color: "#ff7a00"},
			{Offset: 0.75, Color: "#ffe14d"},
		},
		Final:   "#000000",
		Falloff: 20,
	},
	"ocean": {
		Period:  80,
		Initial: "#001a33",
		Stops: []StopConfig{
			{Offset: 0.35, Color: "#0077be"},
			{Offset: 0.6, Color: "#00a8cc"},
			{Offset: 0.85, Color: "#e0f0ff"},
		},
		Final:   "#000814",
		Falloff: 15,
	},
	"mono": {
		Period:  50,
		Initial: "#000000",
		Stops: []StopConfig{
			{Offset: 0.5, Color: "#ffffff"},
		},
		Final:   "#000000",
		Falloff: 10,
	},
}

// GetPalette returns a copy of the named palette.
func GetPalette(name string) (GradientConfig, bool) {
	p, ok := Palettes[name]
	if !ok {
		return GradientConfig{}, false
	}
	p.Stops = append([]StopConfig(nil), p.Stops...)
	return p, true
}

func ListPalettes() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
