package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas is the render surface. Its device size is width*pitch by
// height*pitch; Logical reports the size it is displayed at.
type Canvas struct {
	img     *image.RGBA
	logical image.Point
	pitch   int
	sprites map[string]*image.RGBA
	scaler  draw.Scaler
	dirty   bool
	blits   int
}

func NewCanvas() *Canvas {
	return &Canvas{
		img:     image.NewRGBA(image.Rect(0, 0, 0, 0)),
		sprites: make(map[string]*image.RGBA),
		scaler:  draw.CatmullRom,
	}
}

// Resize reallocates the buffer for a grid of cols x rows squares of pitch
// device pixels and drops every scaled sprite.
func (c *Canvas) Resize(cols, rows, pitch int, logical image.Point) {
	c.img = image.NewRGBA(image.Rect(0, 0, cols*pitch, rows*pitch))
	c.pitch = pitch
	c.logical = logical
	clear(c.sprites)
	c.dirty = true
}

// Clear fills one destination square with bg.
func (c *Canvas) Clear(r image.Rectangle, bg color.Color) {
	draw.Draw(c.img, r, image.NewUniform(bg), image.Point{}, draw.Src)
	c.dirty = true
}

// Blit composites the sprite for id over r. Sprites are scaled once per
// pitch and cached until the next Resize.
func (c *Canvas) Blit(r image.Rectangle, id string, sprite image.Image) {
	scaled, ok := c.sprites[id]
	if !ok || scaled.Bounds().Dx() != r.Dx() || scaled.Bounds().Dy() != r.Dy() {
		scaled = image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		c.scaler.Scale(scaled, scaled.Bounds(), sprite, sprite.Bounds(), draw.Src, nil)
		c.sprites[id] = scaled
	}
	draw.Draw(c.img, r, scaled, image.Point{}, draw.Over)
	c.dirty = true
	c.blits++
}

func (c *Canvas) Image() *image.RGBA   { return c.img }
func (c *Canvas) Logical() image.Point { return c.logical }
func (c *Canvas) Pitch() int           { return c.pitch }

// Blits is the number of sprite blits since the canvas was created.
func (c *Canvas) Blits() int { return c.blits }

// TakeDirty reports whether the canvas changed since the last call and
// resets the flag. Presenters use it to skip uploads of unchanged frames.
func (c *Canvas) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}
