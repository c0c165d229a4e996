package middleware

import (
	"errors"
	"time"

	"github.com/frh02/pygarl/pkg/sample"
)

// ErrNotImplemented is returned by stages whose behavior is specified but
// not yet built. Callers must treat it as a hard fault, not a suppression.
var ErrNotImplemented = errors.New("middleware: delay grouper is not implemented")

// DelayGrouper is a placeholder for time-based grouping: samples arriving
// within Delay of one another would be coalesced into a single sample, as
// an inter-arrival alternative to the amplitude-based grouping of
// GradientThresholdFilter.
//
// No grouping algorithm is implemented. ProcessSample fails with
// ErrNotImplemented on every call.
type DelayGrouper struct {
	delay time.Duration
}

// NewDelayGrouper creates the stub with the configured grouping window.
func NewDelayGrouper(delay time.Duration) *DelayGrouper {
	return &DelayGrouper{delay: delay}
}

// Delay returns the configured grouping window.
func (g *DelayGrouper) Delay() time.Duration {
	return g.delay
}

// ProcessSample always fails with ErrNotImplemented.
func (g *DelayGrouper) ProcessSample(_ *sample.Sample) (*sample.Sample, error) {
	return nil, ErrNotImplemented
}
