// Package session wires configuration, startup, the mosaic pipeline and
// the frame loop into one unit that a presenter drives.
package session

import (
	"context"
	"image/color"
	"strings"
	"time"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/config"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/logx"
	"github.com/san-kum/iconcam/internal/loop"
	"github.com/san-kum/iconcam/internal/metrics"
	"github.com/san-kum/iconcam/internal/mosaic"
	"github.com/san-kum/iconcam/internal/startup"
	"github.com/san-kum/iconcam/internal/surface"
)

// BuiltinMapping selects the generated shade set instead of a mapping file.
const BuiltinMapping = "builtin"

// CaptureFunc negotiates the source named in cfg.
func CaptureFunc(cfg *config.Config) startup.CaptureFunc {
	return func(ctx context.Context) (capture.Info, error) {
		return capture.Request(ctx, cfg.Capture.Source, cfg.Capture.Timeout)
	}
}

// AssetsFunc loads the icon table and sprites named in cfg.
func AssetsFunc(cfg *config.Config) startup.AssetsFunc {
	return func(ctx context.Context) (*icons.AssetSet, error) {
		mapping := strings.TrimSpace(cfg.Icons.Mapping)
		if mapping == "" || mapping == BuiltinMapping {
			return icons.Builtin(cfg.Icons.BuiltinLevels), nil
		}
		table, err := icons.LoadMapping(mapping)
		if err != nil {
			return nil, err
		}
		return icons.Load(ctx, table, icons.LoadOptions{
			Dir:         cfg.Icons.Dir,
			Timeout:     cfg.Icons.LoadTimeout,
			Retries:     cfg.Icons.Retries,
			Concurrency: cfg.Icons.Concurrency,
		})
	}
}

// Settle runs capture negotiation and asset loading together and resolves
// them. Only an asset failure is returned.
func Settle(ctx context.Context, cfg *config.Config) (capture.Info, *icons.AssetSet, error) {
	return startup.SettleAll(ctx, CaptureFunc(cfg), AssetsFunc(cfg)).Ready()
}

type Options struct {
	// Scale is the device pixel density of the presenter.
	Scale      float64
	Background color.Color
}

// Session owns one running pipeline.
type Session struct {
	cfg      *config.Config
	info     capture.Info
	assets   *icons.AssetSet
	sampler  *surface.Sampler
	canvas   *surface.Canvas
	pipeline *mosaic.Pipeline
	metrics  *metrics.Set
	loop     *loop.Loop
	handle   loop.Handle
	last     mosaic.FrameStats

	stop   context.CancelFunc
	stopAt uint64
}

// New builds the pipeline and registers its frame task. The first regrid
// uses an empty viewport; presenters call Resize once they know their size.
func New(cfg *config.Config, info capture.Info, assets *icons.AssetSet, opts Options) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		info:    info,
		assets:  assets,
		sampler: surface.NewSampler(),
		canvas:  surface.NewCanvas(),
		metrics: metrics.Default(),
		loop:    loop.New(),
	}

	p, err := mosaic.New(assets, info, s.sampler, s.canvas, mosaic.Options{
		CellSizes:     cfg.Render.CellSizes,
		CellSizeIndex: cfg.Render.CellSizeIndex,
		DeadBand:      cfg.Render.DeadBand,
		Scale:         opts.Scale,
		Background:    opts.Background,
	})
	if err != nil {
		return nil, err
	}
	p.AddObserver(s.metrics)
	s.pipeline = p

	if err := s.Resume(); err != nil {
		return nil, err
	}
	logx.Logger().Info("session ready",
		"capture", info.Available,
		"aspect", info.AspectRatio,
		"levels", assets.Table.Len(),
		"distinct", len(assets.Table.Distinct()))
	return s, nil
}

func (s *Session) frame(time.Time) {
	s.last = s.pipeline.Frame()
	if s.stop != nil && s.last.Frame >= s.stopAt {
		s.stop()
	}
}

// Tick is one display signal. It reports whether a frame was rendered.
func (s *Session) Tick(now time.Time) bool {
	return s.loop.Fire(now)
}

// Run drives frames from a ticker at the configured rate until ctx ends.
func (s *Session) Run(ctx context.Context) error {
	return s.loop.Run(ctx, s.cfg.FrameInterval())
}

// RunFrames drives n more frames from the ticker and returns once they have
// rendered, or with ctx's error if it ends first.
func (s *Session) RunFrames(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.stop, s.stopAt = cancel, s.pipeline.Frames()+uint64(n)
	defer func() { s.stop = nil }()

	err := s.Run(ctx)
	if s.pipeline.Frames() >= s.stopAt {
		return nil
	}
	return err
}

func (s *Session) Paused() bool { return !s.loop.Registered() }

// Pause unregisters the frame task.
func (s *Session) Pause() {
	if s.loop.Unregister(s.handle) {
		s.handle = 0
	}
}

// Resume registers the frame task again. It is a no-op when running.
func (s *Session) Resume() error {
	if s.loop.Registered() {
		return nil
	}
	h, err := s.loop.Register(s.frame)
	if err != nil {
		return err
	}
	s.handle = h
	return nil
}

// TogglePause flips between paused and running and reports the new state.
func (s *Session) TogglePause() bool {
	if s.Paused() {
		s.Resume()
		return false
	}
	s.Pause()
	return true
}

func (s *Session) Resize(width, height int) { s.pipeline.Resize(width, height) }

func (s *Session) Zoom(delta int) bool { return s.pipeline.ChangeZoom(delta) }

func (s *Session) SetBackground(bg color.Color) { s.pipeline.SetBackground(bg) }

func (s *Session) Pipeline() *mosaic.Pipeline { return s.pipeline }

func (s *Session) Canvas() *surface.Canvas { return s.canvas }

func (s *Session) Metrics() *metrics.Set { return s.metrics }

func (s *Session) Assets() *icons.AssetSet { return s.assets }

func (s *Session) Capture() capture.Info { return s.info }

func (s *Session) Last() mosaic.FrameStats { return s.last }

func (s *Session) Close() error { return s.info.Close() }
