package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Half blocks: each terminal cell shows two vertical pixels, the top one as
// the foreground of ▀ and the bottom one as its background.
const upperHalf = "▀"

// maxCachedCells bounds the rendered-cell cache.
const maxCachedCells = 8192

// Canvas presents an RGBA image in a Width x Height cell terminal area,
// cropped around the image center.
type Canvas struct {
	Width, Height int
	// Fill colors pixels outside the image.
	Fill  color.RGBA
	cells map[[2]color.RGBA]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Fill: color.RGBA{255, 255, 255, 255}}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
}

// Pixels is the canvas size in half-block pixels.
func (c *Canvas) Pixels() image.Point {
	return image.Pt(c.Width, c.Height*2)
}

// Render draws img into the canvas. When img is larger it is cropped
// symmetrically; when smaller it is centered on Fill.
func (c *Canvas) Render(img *image.RGBA) string {
	if c.Width == 0 || c.Height == 0 {
		return ""
	}
	if c.cells == nil || len(c.cells) > maxCachedCells {
		c.cells = make(map[[2]color.RGBA]string)
	}

	b := img.Bounds()
	px := c.Pixels()
	ox := b.Min.X + (b.Dx()-px.X)/2
	oy := b.Min.Y + (b.Dy()-px.Y)/2

	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		y := oy + row*2
		for col := 0; col < c.Width; col++ {
			x := ox + col
			sb.WriteString(c.cell(c.at(img, x, y), c.at(img, x, y+1)))
		}
	}
	return sb.String()
}

func (c *Canvas) at(img *image.RGBA, x, y int) color.RGBA {
	if !(image.Point{x, y}.In(img.Rect)) {
		return c.Fill
	}
	return img.RGBAAt(x, y)
}

func (c *Canvas) cell(top, bottom color.RGBA) string {
	key := [2]color.RGBA{top, bottom}
	if s, ok := c.cells[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(int(top.R), int(top.G), int(top.B)))).
		Background(lipgloss.Color(hexColor(int(bottom.R), int(bottom.G), int(bottom.B)))).
		Render(upperHalf)
	c.cells[key] = s
	return s
}
