package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/iconcam/internal/mosaic"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.DeadBand != 10 {
		t.Errorf("expected dead band 10, got %d", cfg.Render.DeadBand)
	}
	if len(cfg.Render.CellSizes) == 0 {
		t.Fatal("expected default cell sizes")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Capture.Source != "camera" {
		t.Errorf("expected camera source, got %s", cfg.Capture.Source)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("window")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Render.CellSizes[cfg.Render.CellSizeIndex] != 12 {
		t.Errorf("expected initial cell size 12, got %d", cfg.Render.CellSizes[cfg.Render.CellSizeIndex])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	err := DefaultConfig().ApplyPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty sizes", func(c *Config) { c.Render.CellSizes = nil }, ErrNoCellSizes},
		{"zero size", func(c *Config) { c.Render.CellSizes = []int{0, 4} }, ErrBadCellSize},
		{"descending", func(c *Config) { c.Render.CellSizes = []int{8, 4} }, ErrBadCellSize},
		{"dead band", func(c *Config) { c.Render.DeadBand = 0 }, ErrBadDeadBand},
		{"dead band past sentinel", func(c *Config) { c.Render.DeadBand = 1 << 25 }, ErrBadDeadBand},
		{"fps", func(c *Config) { c.Render.FPS = -1 }, ErrBadFPS},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestValidateClampsIndex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.CellSizeIndex = 99
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Render.CellSizeIndex != len(cfg.Render.CellSizes)-1 {
		t.Errorf("expected index clamped to %d, got %d", len(cfg.Render.CellSizes)-1, cfg.Render.CellSizeIndex)
	}

	cfg.Render.CellSizeIndex = -3
	cfg.Validate()
	if cfg.Render.CellSizeIndex != 0 {
		t.Errorf("expected index clamped to 0, got %d", cfg.Render.CellSizeIndex)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconcam.yaml")

	cfg := DefaultConfig()
	cfg.Render.DeadBand = 12
	cfg.Icons.LoadTimeout = 750 * time.Millisecond
	cfg.Capture.Source = "gradient"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Render.DeadBand != 12 {
		t.Errorf("expected dead band 12, got %d", loaded.Render.DeadBand)
	}
	if loaded.Icons.LoadTimeout != 750*time.Millisecond {
		t.Errorf("expected load timeout 750ms, got %v", loaded.Icons.LoadTimeout)
	}
	if loaded.Capture.Source != "gradient" {
		t.Errorf("expected gradient source, got %s", loaded.Capture.Source)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("render:\n  theme: ocean\nicons:\n  load_timeout: 2s\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Render.Theme != "ocean" {
		t.Errorf("expected theme ocean, got %s", cfg.Render.Theme)
	}
	if cfg.Icons.LoadTimeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.Icons.LoadTimeout)
	}
	if cfg.Render.DeadBand != DefaultDeadBand {
		t.Errorf("expected default dead band, got %d", cfg.Render.DeadBand)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render:\n  dead_band: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrBadDeadBand) {
		t.Errorf("expected ErrBadDeadBand, got %v", err)
	}
}

func TestMaxDeadBandMatchesSentinel(t *testing.T) {
	if MaxDeadBand != mosaic.MaxDeadBand {
		t.Errorf("MaxDeadBand = %d, mosaic allows %d", MaxDeadBand, mosaic.MaxDeadBand)
	}
	cfg := DefaultConfig()
	cfg.Render.DeadBand = MaxDeadBand
	if err := cfg.Validate(); err != nil {
		t.Errorf("widest band rejected: %v", err)
	}
}
