package mosaic

import (
	"image"
	"time"
)

// FrameStats summarizes one Frame call.
type FrameStats struct {
	Frame         uint64
	Cells         int
	DeadBandSkips int
	IdentitySkips int
	Blits         int
	Duration      time.Duration
}

// Quantize maps an RGB pixel to a level in [0, levels) using the plain
// channel average.
func Quantize(r, g, b uint8, levels int) int {
	gray := (float64(r) + float64(g) + float64(b)) / 3
	return int(gray / 256 * float64(levels))
}

// Frame renders one frame: draw the source (or the placeholder) into the
// sampler, read it back once and blit every cell whose icon changed.
func (p *Pipeline) Frame() FrameStats {
	start := time.Now()

	mirror := p.capture.Available
	if mirror {
		if frame := p.capture.Frame(); frame != nil {
			p.sampler.DrawFrame(frame)
		} else {
			p.sampler.Fill(p.background)
		}
	} else {
		p.sampler.DrawPlaceholder(p.background)
	}
	px := p.sampler.Pixels()

	g := p.grid
	table := p.assets.Table
	levels := table.Len()
	stats := FrameStats{Cells: g.width * g.height}

	for i := 0; i < g.height; i++ {
		levelsRow := g.brightness[i]
		iconsRow := g.iconID[i]
		for j := 0; j < g.width; j++ {
			col := j
			if mirror {
				col = g.width - j - 1
			}
			o := px.PixOffset(px.Rect.Min.X+col, px.Rect.Min.Y+i)
			level := Quantize(px.Pix[o], px.Pix[o+1], px.Pix[o+2], levels)

			if absInt(level-levelsRow[j]) < p.deadBand {
				stats.DeadBandSkips++
				continue
			}
			levelsRow[j] = level

			id := table.At(level)
			if id == iconsRow[j] {
				stats.IdentitySkips++
				continue
			}
			iconsRow[j] = id

			r := p.cellRect(i, j)
			p.canvas.Clear(r, p.background)
			p.canvas.Blit(r, id, p.assets.Image(id))
			stats.Blits++
		}
	}

	p.frames++
	stats.Frame = p.frames
	stats.Duration = time.Since(start)
	for _, o := range p.observers {
		o.OnFrame(stats)
	}
	return stats
}

func (p *Pipeline) cellRect(row, col int) image.Rectangle {
	pitch := p.geom.Pitch
	x, y := col*pitch, row*pitch
	return image.Rect(x, y, x+pitch, y+pitch)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
