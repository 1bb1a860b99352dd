package surface

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderGlyph is shown when no capture source is available.
const PlaceholderGlyph = "?"

// glyphFill is the share of the surface height the glyph occupies.
const glyphFill = 0.6

var placeholderMask = sync.OnceValue(func() *image.Alpha {
	return renderMask(PlaceholderGlyph)
})

func renderMask(text string) *image.Alpha {
	face := basicfont.Face7x13
	m := face.Metrics()
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d.Dst = mask
	d.Src = image.Opaque
	d.Dot = fixed.P(0, m.Ascent.Ceil())
	d.DrawString(text)
	return mask
}

// drawGlyph scales mask to glyphFill of dst's height, keeping its aspect,
// and paints it centered in ink.
func drawGlyph(dst *image.RGBA, mask *image.Alpha, ink color.Color) {
	b := dst.Bounds()
	mb := mask.Bounds()
	if b.Empty() || mb.Empty() {
		return
	}
	h := int(float64(b.Dy()) * glyphFill)
	w := h * mb.Dx() / mb.Dy()
	if w > b.Dx() {
		w = b.Dx()
		h = w * mb.Dy() / mb.Dx()
	}
	if w <= 0 || h <= 0 {
		return
	}

	scaled := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mb, draw.Src, nil)

	origin := image.Pt(b.Min.X+(b.Dx()-w)/2, b.Min.Y+(b.Dy()-h)/2)
	r := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
	draw.DrawMask(dst, r, image.NewUniform(ink), image.Point{}, scaled, image.Point{}, draw.Over)
}

// inkFor picks black on light backgrounds and white on dark ones.
func inkFor(bg color.Color) color.Color {
	r, g, b, _ := bg.RGBA()
	if (r+g+b)/3 > 0x7fff {
		return color.Black
	}
	return color.White
}
