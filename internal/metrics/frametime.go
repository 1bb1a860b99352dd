package metrics

import (
	"time"

	"github.com/san-kum/iconcam/internal/mosaic"
)

// frameTimeAlpha weights the newest sample of the moving average.
const frameTimeAlpha = 0.1

// FrameTime is an exponential moving average of frame duration in
// milliseconds, with the worst frame kept alongside.
type FrameTime struct {
	name    string
	avg     float64
	worst   time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(s mosaic.FrameStats) {
	ms := float64(s.Duration) / float64(time.Millisecond)
	if f.samples == 0 {
		f.avg = ms
	} else {
		f.avg += frameTimeAlpha * (ms - f.avg)
	}
	if s.Duration > f.worst {
		f.worst = s.Duration
	}
	f.samples++
}

func (f *FrameTime) Value() float64 { return f.avg }

func (f *FrameTime) Worst() time.Duration { return f.worst }

func (f *FrameTime) Reset() {
	f.avg = 0
	f.worst = 0
	f.samples = 0
}
