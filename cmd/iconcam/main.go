package main

import (
	"fmt"
	"io"
	"os"

	"github.com/san-kum/iconcam/internal/config"
	"github.com/san-kum/iconcam/internal/gui"
	"github.com/san-kum/iconcam/internal/logx"
	"github.com/san-kum/iconcam/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	source     string
	mapping    string
	assetDir   string
	cellIndex  int
	deadBand   int
	frameRate  int
	theme      string
	logFile    string
	verbose    bool

	logCloser io.Closer
)

// main registers the commands and runs the live terminal view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "iconcam",
		Short: "live camera feed as an icon mosaic",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE:         runLive,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&source, "source", "camera", `frame source: camera, gradient, none or image:<path>`)
	pf.StringVar(&mapping, "mapping", "", `icon mapping json (array of ids), or "builtin"`)
	pf.StringVar(&assetDir, "assets", ".", "directory holding solid/<id>.png")
	pf.IntVar(&cellIndex, "cell-index", 2, "initial cell size index")
	pf.IntVar(&deadBand, "dead-band", config.DefaultDeadBand, "minimum level change that redraws a cell")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", "paper", "color theme")
	pf.StringVar(&logFile, "log", "", "write logs to file")
	pf.BoolVar(&verbose, "verbose", false, "debug logging")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "render the mosaic in the terminal",
		RunE:  runLive,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "render the mosaic in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "window")
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s cells %v  dead band %d  fps %d\n",
					name, cfg.Render.CellSizes, cfg.Render.DeadBand, cfg.Render.FPS)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, windowCmd, newSnapshotCmd(), newIconsCmd(), presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "terminal")
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

// setupLogging keeps the default silent logger unless --log or --verbose
// asks for output. The terminal view owns stderr, so without --log only
// debug output goes there.
func setupLogging(cmd *cobra.Command) error {
	var w io.Writer
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		w, logCloser = f, f
	case verbose:
		w = os.Stderr
	default:
		return nil
	}
	logx.SetLogger(logx.New(w, verbose))
	return nil
}

// loadConfig builds the configuration: defaults or the config file, then
// the preset, then any flag set on the command line. fallbackPreset applies
// when neither a config file nor a preset is given.
func loadConfig(cmd *cobra.Command, fallbackPreset string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	name := preset
	if name == "" && configFile == "" {
		name = fallbackPreset
	}
	if name != "" {
		if err := cfg.ApplyPreset(name); err != nil {
			return nil, err
		}
	}

	overrideFromFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if configFile == "" || flags.Changed("source") {
		cfg.Capture.Source = source
	}
	if flags.Changed("mapping") {
		cfg.Icons.Mapping = mapping
	}
	if flags.Changed("assets") {
		cfg.Icons.Dir = assetDir
	}
	if flags.Changed("cell-index") {
		cfg.Render.CellSizeIndex = cellIndex
	}
	if flags.Changed("dead-band") {
		cfg.Render.DeadBand = deadBand
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
}
