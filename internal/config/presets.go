package config

import (
	"fmt"
	"sort"
)

// Presets tune cell sizes and filtering for a presenter. Cell sizes are in
// presenter pixels: half-block pixels for the terminal, points for windows.
var Presets = map[string]func(*Config){
	"terminal": func(c *Config) {
		c.Render.CellSizes = []int{2, 3, 4, 6, 8}
		c.Render.CellSizeIndex = 2
		c.Render.FPS = 30
	},
	"window": func(c *Config) {
		c.Render.CellSizes = []int{6, 8, 10, 12, 16, 20, 24, 32}
		c.Render.CellSizeIndex = 3
		c.Render.FPS = 60
	},
	"steady": func(c *Config) {
		c.Render.DeadBand = 24
		c.Render.FPS = 20
	},
	"twitchy": func(c *Config) {
		c.Render.DeadBand = 3
		c.Render.FPS = 60
	},
}

// GetPreset returns the default config with the named preset applied, or
// nil when the preset does not exist.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of c.
func (c *Config) ApplyPreset(name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	apply(c)
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
