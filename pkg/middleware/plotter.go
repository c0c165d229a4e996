package middleware

import (
	"github.com/frh02/pygarl/pkg/sample"
)

// Plotter renders every sample it sees and forwards it unchanged. Useful
// as a tap anywhere in a pipeline when tuning filter thresholds.
type Plotter struct {
	renderer sample.Renderer
}

// NewPlotter creates a pass-through stage drawing through r.
func NewPlotter(r sample.Renderer) *Plotter {
	return &Plotter{renderer: r}
}

// ProcessSample renders the sample and returns it unchanged. Renderer
// faults propagate unmodified.
func (p *Plotter) ProcessSample(s *sample.Sample) (*sample.Sample, error) {
	if err := s.Plot(p.renderer); err != nil {
		return nil, err
	}
	return s, nil
}
