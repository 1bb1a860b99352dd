// Package metrics accumulates per-frame statistics from the mosaic
// pipeline for the status panels.
package metrics

import (
	"sort"

	"github.com/san-kum/iconcam/internal/mosaic"
)

type Metric interface {
	Name() string
	Observe(s mosaic.FrameStats)
	Value() float64
	Reset()
}

// Set fans frame statistics out to a group of metrics. It satisfies
// mosaic.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default is the set shown by the presenters.
func Default() *Set {
	return NewSet(NewRedrawRatio(), NewDeadBandRatio(), NewFrameTime(), NewHistory(120))
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnFrame(fs mosaic.FrameStats) {
	for _, m := range s.metrics {
		m.Observe(fs)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Get returns the metric called name, or nil.
func (s *Set) Get(name string) Metric {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Values returns every metric value keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names lists the metric names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
