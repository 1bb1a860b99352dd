package mosaic

// Unset is the level every cell holds after (re)allocation. Every real
// level is at least MaxDeadBand away from it, so the first frame after a
// regrid redraws every cell for any accepted dead band.
const Unset = -1 << 24

// MaxDeadBand is the widest dead band New accepts.
const MaxDeadBand = -Unset

// Grid is the render cache: two parallel arrays with identical dimensions,
// always allocated together.
type Grid struct {
	width, height int
	brightness    [][]int
	iconID        [][]string
}

// NewGrid allocates a width x height grid filled with Unset levels and
// empty identifiers.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:      width,
		height:     height,
		brightness: make([][]int, height),
		iconID:     make([][]string, height),
	}
	for i := 0; i < height; i++ {
		g.brightness[i] = make([]int, width)
		for j := range g.brightness[i] {
			g.brightness[i][j] = Unset
		}
		g.iconID[i] = make([]string, width)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Level returns the last rendered level of cell (row, col).
func (g *Grid) Level(row, col int) int { return g.brightness[row][col] }

// Icon returns the identifier currently drawn at (row, col), or "".
func (g *Grid) Icon(row, col int) string { return g.iconID[row][col] }

// Icons returns a copy of the identifier array.
func (g *Grid) Icons() [][]string {
	out := make([][]string, g.height)
	for i, row := range g.iconID {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Pristine reports whether every cell still holds its allocation fill.
func (g *Grid) Pristine() bool {
	for i := 0; i < g.height; i++ {
		for j := 0; j < g.width; j++ {
			if g.brightness[i][j] != Unset || g.iconID[i][j] != "" {
				return false
			}
		}
	}
	return true
}
