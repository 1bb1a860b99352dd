package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/iconcam/internal/mosaic"
)

// Report summarizes a headless run.
type Report struct {
	Source   string             `json:"source"`
	Capture  bool               `json:"capture"`
	Levels   int                `json:"levels"`
	CellSize int                `json:"cell_size"`
	Pitch    int                `json:"pitch"`
	Cols     int                `json:"cols"`
	Rows     int                `json:"rows"`
	DeadBand int                `json:"dead_band"`
	Frames   []FrameRecord      `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

type FrameRecord struct {
	Frame         uint64  `json:"frame"`
	Cells         int     `json:"cells"`
	DeadBandSkips int     `json:"deadband_skips"`
	IdentitySkips int     `json:"identity_skips"`
	Blits         int     `json:"blits"`
	Millis        float64 `json:"ms"`
}

// Record converts frame statistics for the report.
func Record(s mosaic.FrameStats) FrameRecord {
	return FrameRecord{
		Frame:         s.Frame,
		Cells:         s.Cells,
		DeadBandSkips: s.DeadBandSkips,
		IdentitySkips: s.IdentitySkips,
		Blits:         s.Blits,
		Millis:        float64(s.Duration.Microseconds()) / 1000,
	}
}

// OnFrame appends a frame, so a Report can observe a pipeline directly.
func (r *Report) OnFrame(s mosaic.FrameStats) {
	r.Frames = append(r.Frames, Record(s))
}

func WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func SaveReport(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteReport(f, r)
}
