package icons

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

const (
	builtinShades = 16
	builtinSize   = 16
)

// Builtin generates a halftone shade set: levels entries spread over 16
// distinct dot sprites, darkest first. It needs no files on disk.
func Builtin(levels int) *AssetSet {
	if levels <= 0 {
		levels = 256
	}
	shades := builtinShades
	if levels < shades {
		shades = levels
	}
	ids := make([]string, levels)
	for k := range ids {
		ids[k] = shadeID(k * shades / levels)
	}
	table, _ := NewTable(ids)

	images := make(map[string]image.Image, shades)
	for s := 0; s < shades; s++ {
		coverage := 1.0
		if shades > 1 {
			coverage = 1 - float64(s)/float64(shades-1)
		}
		images[shadeID(s)] = halftoneDot(builtinSize, coverage)
	}
	return &AssetSet{Table: table, images: images}
}

func shadeID(s int) string {
	return fmt.Sprintf("shade-%02d", s)
}

// halftoneDot draws a black disc on white whose area covers roughly
// coverage of the tile.
func halftoneDot(size int, coverage float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := math.Sqrt(coverage*float64(size*size)/math.Pi) + 0.01
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			c := color.RGBA{255, 255, 255, 255}
			if coverage > 0 && dx*dx+dy*dy <= radius*radius {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
