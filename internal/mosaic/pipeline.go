package mosaic

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/icons"
)

// DefaultDeadBand is the minimum level change that triggers a redraw.
const DefaultDeadBand = 10

var (
	ErrNoCellSizes = errors.New("mosaic: no cell sizes")
	ErrBadCellSize = errors.New("mosaic: cell size must be positive")
	ErrNoAssets    = errors.New("mosaic: no icon assets")
	ErrBadDeadBand = errors.New("mosaic: dead band too wide")
)

// Sampler is the grid-resolution surface the capture source is drawn on.
type Sampler interface {
	Resize(width, height int)
	DrawFrame(src image.Image)
	Fill(bg color.Color)
	DrawPlaceholder(bg color.Color)
	Pixels() *image.RGBA
}

// Canvas is the surface icon sprites are blitted onto.
type Canvas interface {
	Resize(cols, rows, pitch int, logical image.Point)
	Clear(r image.Rectangle, bg color.Color)
	Blit(r image.Rectangle, id string, sprite image.Image)
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(s FrameStats)
}

type Options struct {
	CellSizes     []int
	CellSizeIndex int
	// DeadBand is compared against level differences, not raw gray values.
	DeadBand int
	// Scale is the device pixel density; values below 1 are treated as 1.
	Scale      float64
	Background color.Color
}

type Pipeline struct {
	assets  *icons.AssetSet
	capture capture.Info
	sampler Sampler
	canvas  Canvas

	grid       *Grid
	geom       Geometry
	cellSizes  []int
	index      int
	deadBand   int
	scale      float64
	background color.Color
	viewW      int
	viewH      int

	observers []Observer
	frames    uint64
	regrids   int
}

// New builds a pipeline and performs the initial regrid for an empty
// viewport, so Frame is safe to call immediately.
func New(assets *icons.AssetSet, info capture.Info, sampler Sampler, canvas Canvas, opts Options) (*Pipeline, error) {
	if assets == nil || assets.Table == nil {
		return nil, ErrNoAssets
	}
	if len(opts.CellSizes) == 0 {
		return nil, ErrNoCellSizes
	}
	for _, s := range opts.CellSizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrBadCellSize, s)
		}
	}
	if !(info.AspectRatio > 0) {
		info.AspectRatio = capture.FallbackAspectRatio
	}
	if opts.DeadBand <= 0 {
		opts.DeadBand = DefaultDeadBand
	}
	if opts.DeadBand > MaxDeadBand {
		return nil, fmt.Errorf("%w: %d > %d", ErrBadDeadBand, opts.DeadBand, MaxDeadBand)
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	index := opts.CellSizeIndex
	if index < 0 {
		index = 0
	}
	if index >= len(opts.CellSizes) {
		index = len(opts.CellSizes) - 1
	}

	p := &Pipeline{
		assets:     assets,
		capture:    info,
		sampler:    sampler,
		canvas:     canvas,
		cellSizes:  append([]int(nil), opts.CellSizes...),
		index:      index,
		deadBand:   opts.DeadBand,
		scale:      opts.Scale,
		background: opts.Background,
	}
	p.Recompute()
	return p, nil
}

func (p *Pipeline) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// CellSize is the current cell side in logical units.
func (p *Pipeline) CellSize() int { return p.cellSizes[p.index] }

func (p *Pipeline) CellSizeIndex() int { return p.index }

func (p *Pipeline) Grid() *Grid { return p.grid }

func (p *Pipeline) Geometry() Geometry { return p.geom }

func (p *Pipeline) Viewport() image.Point { return image.Pt(p.viewW, p.viewH) }

// CaptureAvailable reports whether frames come from a live source.
func (p *Pipeline) CaptureAvailable() bool { return p.capture.Available }

func (p *Pipeline) Levels() int { return p.assets.Table.Len() }

func (p *Pipeline) Frames() uint64 { return p.frames }

// Regrids counts Recompute calls, including the initial one.
func (p *Pipeline) Regrids() int { return p.regrids }

// SetBackground changes the fill behind sprites and regrids so every cell
// is repainted on the next frame.
func (p *Pipeline) SetBackground(bg color.Color) {
	if bg == nil {
		return
	}
	p.background = bg
	p.Recompute()
}
