package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/iconcam/internal/icons"
)

// MosaicSVG writes the icon grid as an SVG document. Each non-empty cell
// becomes an <image> referencing solid/<id>.png relative to assetPrefix, so
// the file renders next to the icon directory at any size.
func MosaicSVG(w io.Writer, grid [][]string, cellSize int, background, assetPrefix string) error {
	if cellSize <= 0 {
		cellSize = 1
	}
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	width, height := cols*cellSize, rows*cellSize

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g>
`, width, height, width, height, html.EscapeString(background))

	for i, row := range grid {
		for j, id := range row {
			if id == "" {
				continue
			}
			href := html.EscapeString(spriteHref(assetPrefix, id))
			fmt.Fprintf(&sb, `<image x="%d" y="%d" width="%d" height="%d" href="%s"/>
`, j*cellSize, i*cellSize, cellSize, cellSize, href)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func spriteHref(prefix, id string) string {
	href := icons.SpriteHref(id)
	if prefix == "" {
		return href
	}
	return strings.TrimSuffix(prefix, "/") + "/" + href
}
