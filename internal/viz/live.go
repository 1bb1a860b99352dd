package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/config"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/metrics"
	"github.com/san-kum/iconcam/internal/session"
)

const (
	plotHeight = 5
	// plotLines is the plot plus its caption.
	plotLines      = plotHeight + 2
	sparklineWidth = 16
)

// TickMsg is the terminal display signal.
type TickMsg time.Time

type settledMsg struct {
	info   capture.Info
	assets *icons.AssetSet
	err    error
}

// Model is the terminal presenter. Until startup settles it shows a
// spinner; afterwards every tick renders one mosaic frame.
type Model struct {
	cfg    *config.Config
	sess   *session.Session
	theme  Theme
	styles Styles
	canvas *Canvas
	keys   keyMap
	help   help.Model
	spin   spinner.Model

	width, height int
	showPlot      bool
	notice        string
	err           error
}

func NewModel(cfg *config.Config) Model {
	theme := GetTheme(cfg.Render.Theme)
	canvas := NewCanvas(0, 0)
	canvas.Fill = theme.Fill()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		cfg:    cfg,
		theme:  theme,
		styles: NewStyles(theme),
		canvas: canvas,
		keys:   defaultKeys(),
		help:   help.New(),
		spin:   sp,
	}
}

// Run starts the terminal presenter and blocks until the user quits.
func Run(cfg *config.Config) error {
	final, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	m := final.(Model)
	m.Close()
	return m.Err()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, settle(m.cfg), tick(m.cfg.FrameInterval()))
}

func settle(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		info, assets, err := session.Settle(context.Background(), cfg)
		return settledMsg{info: info, assets: assets, err: err}
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		sess, err := session.New(m.cfg, msg.info, msg.assets, session.Options{
			Scale:      1,
			Background: m.theme.Fill(),
		})
		if err != nil {
			msg.info.Close()
			m.err = err
			return m, tea.Quit
		}
		m.sess = sess
		m.resize()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
	case spinner.TickMsg:
		if m.sess != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case TickMsg:
		if m.sess != nil {
			m.sess.Tick(time.Time(msg))
		}
		return m, tick(m.cfg.FrameInterval())
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.sess == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1, "largest icon size")
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(-1, "smallest icon size")
	case key.Matches(msg, m.keys.Theme):
		m.setTheme(NextTheme(m.theme.Name))
	case key.Matches(msg, m.keys.Pause):
		m.sess.TogglePause()
	case key.Matches(msg, m.keys.Plot):
		m.showPlot = !m.showPlot
		m.resize()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

func (m *Model) zoom(delta int, limit string) {
	m.notice = ""
	if !m.sess.Zoom(delta) {
		m.notice = limit
	}
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = NewStyles(t)
	m.canvas.Fill = t.Fill()
	if m.sess != nil {
		m.sess.SetBackground(t.Fill())
	}
}

// chromeLines is the number of terminal rows not used by the mosaic.
func (m *Model) chromeLines() int {
	n := 1 + lipgloss.Height(m.help.View(m.keys))
	if m.showPlot {
		n += plotLines
	}
	return n
}

// resize fits the mosaic into the rows left over by the status panel. The
// viewport is measured in half-block pixels at scale 1.
func (m *Model) resize() {
	m.canvas.Resize(m.width, m.height-m.chromeLines())
	if m.sess == nil {
		return
	}
	px := m.canvas.Pixels()
	m.sess.Resize(px.X, px.Y)
}

func (m Model) View() string {
	if m.err != nil {
		return m.styles.Error.Render("error: "+m.err.Error()) + "\n"
	}
	if m.sess == nil {
		return m.spin.View() + " " + m.styles.Label.Render("starting capture and loading icons...")
	}

	var parts []string
	if mosaic := m.canvas.Render(m.sess.Canvas().Image()); mosaic != "" {
		parts = append(parts, mosaic)
	}
	if m.showPlot {
		parts = append(parts, m.plot())
	}
	parts = append(parts, m.status(), m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

func (m Model) history() *metrics.History {
	h, _ := m.sess.Metrics().Get("blits").(*metrics.History)
	return h
}

func (m Model) plot() string {
	var series []float64
	if h := m.history(); h != nil {
		series = h.Series()
	}
	if len(series) < 2 {
		return strings.Repeat("\n", plotLines-1)
	}
	width := max(10, m.width-10)
	chart := asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(width),
		asciigraph.Caption("blits per frame"))
	return m.styles.Graph.Render(chart)
}

func (m Model) status() string {
	s := m.styles
	p := m.sess.Pipeline()
	g := p.Geometry()
	last := m.sess.Last()

	field := func(label, value string) string {
		return s.Label.Render(label+" ") + s.Value.Render(value)
	}

	var spark string
	if h := m.history(); h != nil {
		spark = s.Graph.Render(Sparkline(h.Series(), sparklineWidth))
	}

	parts := []string{s.Title.Render("iconcam")}
	if !p.CaptureAvailable() {
		parts = append(parts, s.Warn.Render("no capture"))
	}
	if m.sess.Paused() {
		parts = append(parts, s.Paused.Render("PAUSED"))
	}
	if m.notice != "" {
		parts = append(parts, s.Warn.Render(m.notice))
	}
	parts = append(parts,
		field("cell", fmt.Sprintf("%d", g.CellSize)),
		field("grid", fmt.Sprintf("%dx%d", g.Cols, g.Rows)),
		field("levels", fmt.Sprintf("%d", p.Levels())),
		field("blits", fmt.Sprintf("%d", last.Blits)),
		spark,
		field("frame", fmt.Sprintf("%.1fms", m.sess.Metrics().Get("frame_ms").Value())),
		field("theme", m.theme.Name),
	)

	line := strings.Join(parts, "  ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// Err is the startup error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Close releases the capture source.
func (m Model) Close() error {
	if m.sess == nil {
		return nil
	}
	return m.sess.Close()
}
