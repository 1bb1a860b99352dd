package capture

import (
	"image"
	"math"
	"time"
)

// Gradient is a synthetic source: a diagonal luminance ramp with a bright
// disc orbiting the center. Useful without a camera.
type Gradient struct {
	img   *image.RGBA
	start time.Time
	now   func() time.Time
}

func NewGradient(w, h int) *Gradient {
	return &Gradient{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		start: time.Now(),
		now:   time.Now,
	}
}

func (g *Gradient) Frame() image.Image {
	t := g.now().Sub(g.start).Seconds()
	b := g.img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cx := w/2 + math.Cos(t)*w/4
	cy := h/2 + math.Sin(t)*h/4
	r2 := (h / 6) * (h / 6)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := uint8(255 * (float64(x)/w + float64(y)/h) / 2)
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy < r2 {
				v = 255 - v
			}
			o := g.img.PixOffset(x, y)
			g.img.Pix[o], g.img.Pix[o+1], g.img.Pix[o+2], g.img.Pix[o+3] = v, v, v, 0xff
		}
	}
	return g.img
}

func (g *Gradient) Close() error { return nil }
