// Package gui is the windowed presenter. The window's vsync is the display
// signal and its DPI scale sets the render surface pitch.
package gui

import (
	"context"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/config"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/logx"
	"github.com/san-kum/iconcam/internal/session"
	"github.com/san-kum/iconcam/internal/viz"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColWarn    = rl.NewColor(255, 170, 0, 255)
)

type settled struct {
	info   capture.Info
	assets *icons.AssetSet
	err    error
}

type App struct {
	cfg     *config.Config
	sess    *session.Session
	settled chan settled
	cancel  context.CancelFunc
	theme   viz.Theme
	screen  [2]int
	quit    bool
	notice  string
	err     error

	tex     rl.Texture2D
	texW    int
	texH    int
	pixels  []color.RGBA
	showHUD bool
}

// initWindow opens a resizable high-DPI window with vsync and disables the
// default exit key.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(cfg)
	defer app.Close()
	app.RunLoop()
	return app.err
}

// NewApp starts capture negotiation and icon loading in the background.
// Frames begin once both have settled.
func NewApp(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:     cfg,
		settled: make(chan settled, 1),
		cancel:  cancel,
		theme:   viz.GetTheme(cfg.Render.Theme),
		showHUD: true,
	}
	go func() {
		info, assets, err := session.Settle(ctx, cfg)
		a.settled <- settled{info: info, assets: assets, err: err}
	}()
	return a
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// dpiScale is the device pixel density, never below 1.
func dpiScale() float64 {
	s := float64(rl.GetWindowScaleDPI().X)
	if s < 1 {
		return 1
	}
	return s
}

func (a *App) start(s settled) {
	if s.err != nil {
		a.err = s.err
		a.quit = true
		return
	}
	sess, err := session.New(a.cfg, s.info, s.assets, session.Options{
		Scale:      dpiScale(),
		Background: a.theme.Fill(),
	})
	if err != nil {
		s.info.Close()
		a.err = err
		a.quit = true
		return
	}
	a.sess = sess
	a.screen = [2]int{}
	logx.Logger().Info("window session started", "scale", dpiScale())
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.sess == nil {
		select {
		case s := <-a.settled:
			a.start(s)
		default:
		}
		if a.sess == nil {
			return
		}
	}

	if w, h := rl.GetScreenWidth(), rl.GetScreenHeight(); rl.IsWindowResized() || a.screen != [2]int{w, h} {
		a.screen = [2]int{w, h}
		a.sess.Resize(w, h)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.zoom(1, "largest icon size")
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.zoom(-1, "smallest icon size")
	case rl.IsKeyPressed(rl.KeyT):
		a.theme = viz.NextTheme(a.theme.Name)
		a.sess.SetBackground(a.theme.Fill())
	case rl.IsKeyPressed(rl.KeySpace):
		a.sess.TogglePause()
	case rl.IsKeyPressed(rl.KeyH):
		a.showHUD = !a.showHUD
	}

	a.sess.Tick(time.Now())
	a.upload()
}

func (a *App) zoom(delta int, limit string) {
	a.notice = ""
	if !a.sess.Zoom(delta) {
		a.notice = limit
	}
}

func (a *App) Close() error {
	a.cancel()
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
	}
	if a.sess == nil {
		return nil
	}
	return a.sess.Close()
}
