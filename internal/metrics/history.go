package metrics

import "github.com/san-kum/iconcam/internal/mosaic"

// History keeps the blit counts of the most recent frames for plotting.
type History struct {
	name  string
	buf   []float64
	start int
	n     int
	total uint64
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{name: "blits", buf: make([]float64, size)}
}

func (h *History) Name() string { return h.name }

func (h *History) Observe(s mosaic.FrameStats) {
	h.total += uint64(s.Blits)
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = float64(s.Blits)
		h.n++
		return
	}
	h.buf[h.start] = float64(s.Blits)
	h.start = (h.start + 1) % len(h.buf)
}

// Value is the most recent blit count.
func (h *History) Value() float64 {
	if h.n == 0 {
		return 0
	}
	return h.buf[(h.start+h.n-1)%len(h.buf)]
}

// Total is the number of blits since the last Reset.
func (h *History) Total() uint64 { return h.total }

// Series returns the retained samples, oldest first.
func (h *History) Series() []float64 {
	out := make([]float64, h.n)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

func (h *History) Reset() {
	h.start = 0
	h.n = 0
	h.total = 0
}
