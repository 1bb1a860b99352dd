package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/iconcam/internal/mosaic"
)

func TestMosaicSVG(t *testing.T) {
	grid := [][]string{
		{"cat", ""},
		{"dog", "a&b"},
	}

	var buf bytes.Buffer
	if err := MosaicSVG(&buf, grid, 12, "#ffffff", "icons/"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`width="24" height="24"`,
		`fill="#ffffff"`,
		`<image x="0" y="0" width="12" height="12" href="icons/solid/cat.png"/>`,
		`<image x="0" y="12" width="12" height="12" href="icons/solid/dog.png"/>`,
		`href="icons/solid/a&amp;b.png"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if n := strings.Count(out, "<image"); n != 3 {
		t.Errorf("images = %d, want 3 (empty cells skipped)", n)
	}
}

func TestMosaicSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := MosaicSVG(&buf, nil, 0, "#000000", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `width="0" height="0"`) {
		t.Error("empty grid should produce an empty document")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "mosaic.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestReportObservesFrames(t *testing.T) {
	r := &Report{Source: "gradient", Capture: true, Levels: 256}
	r.OnFrame(mosaic.FrameStats{Frame: 1, Cells: 4, Blits: 4, Duration: 1500 * time.Microsecond})
	r.OnFrame(mosaic.FrameStats{Frame: 2, Cells: 4, DeadBandSkips: 3, Blits: 1})
	r.Metrics = map[string]float64{"redraw_ratio": 0.625}

	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		t.Fatal(err)
	}

	var back Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Frames) != 2 || back.Frames[0].Millis != 1.5 || back.Frames[1].DeadBandSkips != 3 {
		t.Errorf("frames = %+v", back.Frames)
	}
	if back.Metrics["redraw_ratio"] != 0.625 || back.Source != "gradient" {
		t.Errorf("report = %+v", back)
	}
}
