package mosaic_test

import (
	"image"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/iconcam/internal/icons"
	"github.com/san-kum/iconcam/internal/mosaic"
)

var _ = Describe("Dimensions", func() {
	DescribeTable("pads and follows the aspect ratio",
		func(vw, vh, cell int, aspect float64) {
			cols, rows := mosaic.Dimensions(vw, vh, cell, aspect)
			Expect(cols).To(BeNumerically(">=", 2))
			Expect(rows).To(BeNumerically(">=", 2))

			c, r := float64(cols-mosaic.Padding), float64(rows-mosaic.Padding)
			if r >= 1 && c >= 1 {
				Expect(math.Abs(c/r - aspect)).To(BeNumerically("<=", (aspect+1)/r*2))
			}
		},
		Entry("wide viewport, 16:9", 1920, 1080, 12, 16.0/9),
		Entry("tall viewport, 16:9", 600, 1400, 12, 16.0/9),
		Entry("square fallback", 1280, 720, 8, 1.0),
		Entry("portrait source", 1000, 1000, 10, 9.0/16),
		Entry("terminal half-blocks", 160, 90, 4, 4.0/3),
		Entry("tiny viewport", 3, 3, 12, 16.0/9),
		Entry("empty viewport", 0, 0, 4, 1.0),
		Entry("zero height", 100, 0, 4, 2.0),
	)

	It("stretches the non-driving dimension", func() {
		// 100x50 cells is wider than 4:3, so rows are recomputed from cols.
		cols, rows := mosaic.Dimensions(1000, 500, 10, 4.0/3)
		Expect(cols).To(Equal(100 + 2))
		Expect(rows).To(Equal(75 + 2))

		// 50x100 cells is narrower, so cols are recomputed from rows.
		cols, rows = mosaic.Dimensions(500, 1000, 10, 4.0/3)
		Expect(cols).To(Equal(133 + 2))
		Expect(rows).To(Equal(100 + 2))
	})
})

var _ = Describe("Pipeline", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig(levelTable(256), true, 1, []int{4, 8, 12}, 1)
		r.pipe.Resize(80, 80)
	})

	Describe("regrid", func() {
		It("keeps grid, sampler and canvas in step", func() {
			g := r.pipe.Geometry()
			Expect(g.Cols).To(Equal(12))
			Expect(g.Rows).To(Equal(12))
			Expect(r.pipe.Grid().Width()).To(Equal(g.Cols))
			Expect(r.pipe.Grid().Height()).To(Equal(g.Rows))
			Expect(r.sampler.img.Bounds().Dx()).To(Equal(g.Cols))
			Expect(r.sampler.img.Bounds().Dy()).To(Equal(g.Rows))
			Expect(r.canvas.cols).To(Equal(g.Cols))
			Expect(r.canvas.pitch).To(Equal(8))
			Expect(r.canvas.logical.X).To(Equal(g.Cols * 8))
		})

		It("reallocates a pristine grid every time", func() {
			r.show(func(x, y int) uint8 { return 200 })
			r.pipe.Frame()
			Expect(r.pipe.Grid().Pristine()).To(BeFalse())

			r.pipe.Resize(80, 80)
			first := r.pipe.Grid()
			Expect(first.Pristine()).To(BeTrue())

			r.pipe.Resize(80, 80)
			Expect(r.pipe.Grid().Pristine()).To(BeTrue())
			Expect(r.pipe.Grid()).NotTo(BeIdenticalTo(first))
		})

		It("redraws every cell on the first frame after a regrid", func() {
			r.show(func(x, y int) uint8 { return 90 })
			stats := r.pipe.Frame()
			Expect(stats.Blits).To(Equal(stats.Cells))

			r.canvas.reset()
			r.pipe.Resize(80, 80)
			stats = r.pipe.Frame()
			Expect(stats.Blits).To(Equal(stats.Cells))
		})
	})

	Describe("dead band", func() {
		It("never changes icons while levels stay inside the band", func() {
			samples := []uint8{100, 109, 95, 104, 91, 100, 108}
			r.show(func(x, y int) uint8 { return samples[0] })
			r.pipe.Frame()
			before := r.pipe.Grid().Icons()

			for _, v := range samples[1:] {
				r.canvas.reset()
				r.show(func(x, y int) uint8 { return v })
				stats := r.pipe.Frame()
				Expect(stats.Blits).To(BeZero())
				Expect(stats.DeadBandSkips).To(Equal(stats.Cells))
				Expect(r.pipe.Grid().Icons()).To(Equal(before))
			}
		})

		It("redraws once the level moves by the full band", func() {
			r.show(func(x, y int) uint8 { return 100 })
			r.pipe.Frame()
			r.show(func(x, y int) uint8 { return 110 })
			stats := r.pipe.Frame()
			Expect(stats.Blits).To(Equal(stats.Cells))
			Expect(r.pipe.Grid().Level(0, 0)).To(Equal(110))
		})

		It("compares levels, not gray values", func() {
			// With four levels the band of ten can never be crossed.
			r = newRig(levelTable(4), true, 1, []int{4}, 0)
			r.pipe.Resize(40, 40)
			r.show(func(x, y int) uint8 { return 0 })
			r.pipe.Frame()
			Expect(r.pipe.Grid().Level(0, 0)).To(Equal(0))

			r.canvas.reset()
			r.show(func(x, y int) uint8 { return 255 })
			stats := r.pipe.Frame()
			Expect(mosaic.Quantize(255, 255, 255, 4)).To(Equal(3))
			Expect(stats.Blits).To(BeZero())
			Expect(r.pipe.Grid().Level(0, 0)).To(Equal(0))
		})
	})

	Describe("icon identity", func() {
		It("skips the blit when a new level maps to the same icon", func() {
			ids := make([]string, 256)
			for k := range ids {
				ids[k] = "lo"
				if k >= 128 {
					ids[k] = "hi"
				}
			}
			table, _ := icons.NewTable(ids)
			set := icons.Builtin(2)
			assets, err := icons.NewAssetSet(table, map[string]image.Image{
				"lo": set.Image("shade-00"),
				"hi": set.Image("shade-01"),
			})
			Expect(err).NotTo(HaveOccurred())

			r = newRig(assets, true, 1, []int{4}, 0)
			r.pipe.Resize(40, 40)
			r.show(func(x, y int) uint8 { return 10 })
			r.pipe.Frame()

			r.canvas.reset()
			r.show(func(x, y int) uint8 { return 60 })
			stats := r.pipe.Frame()
			Expect(stats.IdentitySkips).To(Equal(stats.Cells))
			Expect(stats.Blits).To(BeZero())
			Expect(r.pipe.Grid().Level(3, 3)).To(Equal(60))
		})
	})

	Describe("mirroring", func() {
		It("mirrors live capture horizontally", func() {
			r.show(func(x, y int) uint8 { return uint8(x * 20) })
			r.pipe.Frame()
			g := r.pipe.Grid()
			for j := 0; j < g.Width(); j++ {
				src := g.Width() - j - 1
				Expect(g.Level(0, j)).To(Equal(src * 20))
			}
		})

		It("leaves the placeholder unmirrored", func() {
			r = newRig(levelTable(256), false, 0, []int{4, 8}, 1)
			r.sampler.placeholder = func(x, y int) uint8 { return uint8(x * 20) }
			r.pipe.Resize(80, 80)
			r.pipe.Frame()
			g := r.pipe.Grid()
			for j := 0; j < g.Width(); j++ {
				Expect(g.Level(0, j)).To(Equal(j * 20))
			}
		})
	})

	Describe("zoom", func() {
		It("does nothing when zooming out at the smallest size", func() {
			r = newRig(levelTable(16), true, 1, []int{4, 8, 12}, 0)
			regrids := r.pipe.Regrids()
			for i := 0; i < 5; i++ {
				Expect(r.pipe.ChangeZoom(-1)).To(BeFalse())
			}
			Expect(r.pipe.CellSize()).To(Equal(4))
			Expect(r.pipe.Regrids()).To(Equal(regrids))
		})

		It("does nothing when zooming in at the largest size", func() {
			r = newRig(levelTable(16), true, 1, []int{4, 8, 12}, 2)
			regrids := r.pipe.Regrids()
			Expect(r.pipe.ChangeZoom(1)).To(BeFalse())
			Expect(r.pipe.CellSize()).To(Equal(12))
			Expect(r.pipe.Regrids()).To(Equal(regrids))
		})

		It("regrids on an in-range step", func() {
			regrids := r.pipe.Regrids()
			Expect(r.pipe.ChangeZoom(1)).To(BeTrue())
			Expect(r.pipe.CellSize()).To(Equal(12))
			Expect(r.pipe.Regrids()).To(Equal(regrids + 1))
			Expect(r.pipe.Grid().Pristine()).To(BeTrue())
			Expect(r.canvas.pitch).To(Equal(12))
		})
	})
})
