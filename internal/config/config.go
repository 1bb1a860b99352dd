package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDeadBand      = 10
	DefaultFPS           = 30
	DefaultLoadTimeout   = 5 * time.Second
	DefaultLoadRetries   = 2
	DefaultConcurrency   = 8
	DefaultBuiltinLevels = 256
	DefaultWindowWidth   = 1280
	DefaultWindowHeight  = 720
)

// MaxDeadBand is the widest band for which a freshly allocated grid still
// redraws every cell on its first frame.
const MaxDeadBand = 1 << 24

var (
	ErrNoCellSizes   = errors.New("config: cell size list is empty")
	ErrBadCellSize   = errors.New("config: cell sizes must be positive and ascending")
	ErrBadDeadBand   = errors.New("config: dead band must be in [1, 1<<24]")
	ErrBadFPS        = errors.New("config: fps must be positive")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Capture CaptureConfig `yaml:"capture"`
	Icons   IconsConfig   `yaml:"icons"`
	Render  RenderConfig  `yaml:"render"`
	Window  WindowConfig  `yaml:"window"`
}

// CaptureConfig selects the frame source: "camera", "gradient", "none" or
// "image:<path>".
type CaptureConfig struct {
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
}

// IconsConfig locates the icon table. An empty Mapping selects the built-in
// shade set with BuiltinLevels levels.
type IconsConfig struct {
	Mapping       string        `yaml:"mapping"`
	Dir           string        `yaml:"dir"`
	BuiltinLevels int           `yaml:"builtin_levels"`
	LoadTimeout   time.Duration `yaml:"load_timeout"`
	Retries       int           `yaml:"retries"`
	Concurrency   int           `yaml:"concurrency"`
}

type RenderConfig struct {
	CellSizes     []int  `yaml:"cell_sizes"`
	CellSizeIndex int    `yaml:"cell_size_index"`
	DeadBand      int    `yaml:"dead_band"`
	FPS           int    `yaml:"fps"`
	Theme         string `yaml:"theme"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{
			Source:  "camera",
			Timeout: 10 * time.Second,
		},
		Icons: IconsConfig{
			Dir:           ".",
			BuiltinLevels: DefaultBuiltinLevels,
			LoadTimeout:   DefaultLoadTimeout,
			Retries:       DefaultLoadRetries,
			Concurrency:   DefaultConcurrency,
		},
		Render: RenderConfig{
			CellSizes:     []int{2, 3, 4, 6, 8},
			CellSizeIndex: 2,
			DeadBand:      DefaultDeadBand,
			FPS:           DefaultFPS,
			Theme:         "paper",
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "iconcam",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the render parameters and clamps the initial cell size
// index into the list bounds.
func (c *Config) Validate() error {
	sizes := c.Render.CellSizes
	if len(sizes) == 0 {
		return ErrNoCellSizes
	}
	for i, s := range sizes {
		if s <= 0 || (i > 0 && s <= sizes[i-1]) {
			return fmt.Errorf("%w: %v", ErrBadCellSize, sizes)
		}
	}
	if c.Render.DeadBand <= 0 || c.Render.DeadBand > MaxDeadBand {
		return fmt.Errorf("%w: %d", ErrBadDeadBand, c.Render.DeadBand)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrBadFPS, c.Render.FPS)
	}
	c.Render.CellSizeIndex = c.ClampIndex(c.Render.CellSizeIndex)
	if c.Icons.Concurrency <= 0 {
		c.Icons.Concurrency = 1
	}
	if c.Icons.Retries < 0 {
		c.Icons.Retries = 0
	}
	return nil
}

// ClampIndex clamps i into [0, len(CellSizes)).
func (c *Config) ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if n := len(c.Render.CellSizes); i >= n {
		return n - 1
	}
	return i
}

// FrameInterval is the display-signal period derived from FPS.
func (c *Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Render.FPS)
}
