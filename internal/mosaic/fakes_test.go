package mosaic_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/iconcam/internal/capture"
	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/mosaic"
)

// fakeSampler resamples frames nearest-neighbour and records every call.
type fakeSampler struct {
	img          *image.RGBA
	placeholder  func(x, y int) uint8
	drawFrames   int
	fills        int
	placeholders int
}

func (s *fakeSampler) Resize(w, h int) { s.img = image.NewRGBA(image.Rect(0, 0, w, h)) }

func (s *fakeSampler) DrawFrame(src image.Image) {
	s.drawFrames++
	b, sb := s.img.Bounds(), src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s.img.Set(x, y, src.At(sb.Min.X+x*sb.Dx()/b.Dx(), sb.Min.Y+y*sb.Dy()/b.Dy()))
		}
	}
}

func (s *fakeSampler) Fill(bg color.Color) {
	s.fills++
	s.paint(bg)
}

func (s *fakeSampler) paint(bg color.Color) {
	b := s.img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s.img.Set(x, y, bg)
		}
	}
}

func (s *fakeSampler) DrawPlaceholder(bg color.Color) {
	s.placeholders++
	s.paint(bg)
	if s.placeholder == nil {
		return
	}
	b := s.img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := s.placeholder(x, y)
			s.img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
}

func (s *fakeSampler) Pixels() *image.RGBA { return s.img }

type blit struct {
	rect image.Rectangle
	id   string
}

type fakeCanvas struct {
	cols, rows, pitch int
	logical           image.Point
	resizes           int
	clears            int
	blits             []blit
}

func (c *fakeCanvas) Resize(cols, rows, pitch int, logical image.Point) {
	c.cols, c.rows, c.pitch, c.logical = cols, rows, pitch, logical
	c.resizes++
}

func (c *fakeCanvas) Clear(r image.Rectangle, bg color.Color) { c.clears++ }

func (c *fakeCanvas) Blit(r image.Rectangle, id string, sprite image.Image) {
	c.blits = append(c.blits, blit{r, id})
}

func (c *fakeCanvas) reset() {
	c.clears = 0
	c.blits = nil
}

// spySource serves a mutable frame and counts reads.
type spySource struct {
	img   image.Image
	reads int
}

func (s *spySource) Frame() image.Image {
	s.reads++
	return s.img
}

func (s *spySource) Close() error { return nil }

func grayFrame(w, h int, f func(x, y int) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := f(x, y)
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// levelTable has one distinct identifier per level.
func levelTable(levels int) *icons.AssetSet {
	ids := make([]string, levels)
	images := make(map[string]image.Image, levels)
	for k := range ids {
		ids[k] = fmt.Sprintf("L%03d", k)
		images[ids[k]] = image.NewRGBA(image.Rect(0, 0, 2, 2))
	}
	table, _ := icons.NewTable(ids)
	set, _ := icons.NewAssetSet(table, images)
	return set
}

type rig struct {
	pipe    *mosaic.Pipeline
	sampler *fakeSampler
	canvas  *fakeCanvas
	source  *spySource
}

func newRig(assets *icons.AssetSet, available bool, aspect float64, sizes []int, index int) *rig {
	r := &rig{sampler: &fakeSampler{}, canvas: &fakeCanvas{}, source: &spySource{}}
	info := capture.Info{Available: available, AspectRatio: aspect, Source: r.source}
	if !available {
		info = capture.Unavailable()
		info.Source = r.source
	}
	pipe, err := mosaic.New(assets, info, r.sampler, r.canvas, mosaic.Options{
		CellSizes:     sizes,
		CellSizeIndex: index,
		DeadBand:      mosaic.DefaultDeadBand,
		Scale:         1,
	})
	if err != nil {
		panic(err)
	}
	r.pipe = pipe
	return r
}

// show points the source at a frame matching the current grid size.
func (r *rig) show(f func(x, y int) uint8) {
	g := r.pipe.Geometry()
	r.source.img = grayFrame(g.Cols, g.Rows, f)
}
