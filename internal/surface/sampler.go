// Package surface implements the two pixel buffers of the mosaic: the
// Sampler, with one pixel per grid cell, and the Canvas the icon sprites are
// blitted onto.
package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Sampler is the offscreen buffer the capture frame is scaled into. Its
// size always equals the grid dimensions.
type Sampler struct {
	img    *image.RGBA
	scaler draw.Scaler
}

func NewSampler() *Sampler {
	return &Sampler{
		img:    image.NewRGBA(image.Rect(0, 0, 0, 0)),
		scaler: draw.ApproxBiLinear,
	}
}

// Resize replaces the buffer; previous contents are dropped.
func (s *Sampler) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// DrawFrame scales src over the whole buffer in a single draw.
func (s *Sampler) DrawFrame(src image.Image) {
	s.scaler.Scale(s.img, s.img.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func (s *Sampler) Fill(bg color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// DrawPlaceholder fills with bg and centers the placeholder glyph in a
// contrasting ink. The glyph is never mirrored.
func (s *Sampler) DrawPlaceholder(bg color.Color) {
	s.Fill(bg)
	drawGlyph(s.img, placeholderMask(), inkFor(bg))
}

// Pixels returns the live buffer. Callers must not retain it across a Resize.
func (s *Sampler) Pixels() *image.RGBA {
	return s.img
}
