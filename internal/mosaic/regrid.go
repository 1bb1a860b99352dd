package mosaic

import (
	"image"
	"math"

	"github.com/san-kum/iconcam/internal/logx"
)

// Padding is added to both grid dimensions so sprites still cover the
// viewport edges once the surface is centered or offset.
const Padding = 2

// Geometry describes the current grid and surface sizes.
type Geometry struct {
	Cols, Rows int
	CellSize   int
	// Pitch is the side of one cell on the render surface in device pixels.
	Pitch int
	// Logical is the display size of the render surface.
	Logical image.Point
}

// Dimensions derives grid columns and rows for a viewport. The
// non-driving dimension is stretched so cols/rows follows aspect, then both
// are padded.
func Dimensions(viewportWidth, viewportHeight, cellSize int, aspect float64) (cols, rows int) {
	cols = viewportWidth / cellSize
	rows = viewportHeight / cellSize

	if float64(cols)/float64(rows) > aspect {
		rows = int(math.Floor(float64(cols) / aspect))
	} else {
		cols = int(math.Floor(float64(rows) * aspect))
	}
	return cols + Padding, rows + Padding
}

// pitchFor is the device-pixel side of a cell: cellSize scaled by the
// device pixel density, never below one pixel.
func pitchFor(cellSize int, scale float64) int {
	p := int(float64(cellSize) * scale)
	if p < 1 {
		return 1
	}
	return p
}

// Recompute re-derives the grid from the current viewport, cell size and
// aspect ratio, resizes both surfaces and reallocates the grid. Calling it
// twice with the same inputs leaves a freshly filled grid both times.
func (p *Pipeline) Recompute() {
	cellSize := p.CellSize()
	cols, rows := Dimensions(p.viewW, p.viewH, cellSize, p.capture.AspectRatio)
	pitch := pitchFor(cellSize, p.scale)
	logical := image.Pt(cols*cellSize, rows*cellSize)

	p.sampler.Resize(cols, rows)
	p.canvas.Resize(cols, rows, pitch, logical)
	p.grid = NewGrid(cols, rows)
	p.geom = Geometry{Cols: cols, Rows: rows, CellSize: cellSize, Pitch: pitch, Logical: logical}
	p.regrids++

	logx.Logger().Debug("regrid",
		"viewport", image.Pt(p.viewW, p.viewH),
		"cell", cellSize,
		"cols", cols,
		"rows", rows,
		"pitch", pitch)
}

// Resize records a new viewport size and regrids.
func (p *Pipeline) Resize(viewportWidth, viewportHeight int) {
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	p.viewW, p.viewH = viewportWidth, viewportHeight
	p.Recompute()
}

// ChangeZoom moves the cell size index by delta. A move past either end of
// the list is rejected: nothing changes and no regrid happens. It reports
// whether the change was applied.
func (p *Pipeline) ChangeZoom(delta int) bool {
	next := p.index + delta
	if next < 0 || next >= len(p.cellSizes) {
		logx.Logger().Debug("zoom rejected", "index", p.index, "delta", delta)
		return false
	}
	if next == p.index {
		return false
	}
	p.index = next
	p.Recompute()
	return true
}
