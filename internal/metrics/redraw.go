package metrics

import "github.com/san-kum/iconcam/internal/mosaic"

// RedrawRatio is the share of cells blitted, averaged over all frames.
type RedrawRatio struct {
	name  string
	blits int
	cells int
}

func NewRedrawRatio() *RedrawRatio {
	return &RedrawRatio{name: "redraw_ratio"}
}

func (r *RedrawRatio) Name() string { return r.name }

func (r *RedrawRatio) Observe(s mosaic.FrameStats) {
	r.blits += s.Blits
	r.cells += s.Cells
}

func (r *RedrawRatio) Value() float64 {
	if r.cells == 0 {
		return 0
	}
	return float64(r.blits) / float64(r.cells)
}

func (r *RedrawRatio) Reset() {
	r.blits = 0
	r.cells = 0
}

// DeadBandRatio is the share of cells held back by the dead band.
type DeadBandRatio struct {
	name  string
	skips int
	cells int
}

func NewDeadBandRatio() *DeadBandRatio {
	return &DeadBandRatio{name: "deadband_ratio"}
}

func (d *DeadBandRatio) Name() string { return d.name }

func (d *DeadBandRatio) Observe(s mosaic.FrameStats) {
	d.skips += s.DeadBandSkips
	d.cells += s.Cells
}

func (d *DeadBandRatio) Value() float64 {
	if d.cells == 0 {
		return 0
	}
	return float64(d.skips) / float64(d.cells)
}

func (d *DeadBandRatio) Reset() {
	d.skips = 0
	d.cells = 0
}
