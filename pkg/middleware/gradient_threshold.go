// Package middleware provides composable sample-processing stages for
// gesture pipelines.
//
// Every stage implements the Processor contract: take one sample, produce
// at most one sample. Stages are synchronous and stateful per instance;
// one instance filters one stream. The package implements:
//
//   - GradientThresholdFilter: drops samples without meaningful motion and
//     optionally coalesces a burst of motion samples into one gesture
//   - DelayGrouper: time-based grouping placeholder (not implemented)
//   - Plotter: visualize-and-forward pass-through
//   - Pipeline: runs stages in order, short-circuiting on suppression
//
// Example Usage:
//
//	filter := middleware.NewGradientThresholdFilter(middleware.DefaultConfig())
//
//	for s := range stream {
//		out, err := filter.ProcessSample(s)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if out != nil {
//			recognize(out) // one grouped gesture
//		}
//	}
//
// ELI12 (Explain Like I'm 12):
//
// Imagine watching someone's wrist sensor while they wave. Most of the time
// the readings barely move - that's just noise, so we throw those away. When
// the readings start jumping around, a gesture is happening, so we start
// collecting every reading into a box. Waves aren't perfectly smooth: for a
// split second the hand slows down and the readings look calm again. We
// don't seal the box right away - we tolerate a few calm readings, because
// the wave usually picks right back up. Only when the readings stay calm
// past our patience do we seal the box and hand over the whole wave as one
// gesture.
package middleware

import (
	"log"
	"math"
	"sync"

	"github.com/viterin/vek"

	"github.com/frh02/pygarl/pkg/sample"
)

// Config holds GradientThresholdFilter configuration.
type Config struct {
	// Threshold is the magnitude the absolute mean gradient of a sample
	// must reach to count as motion. The higher the value, the more
	// intense a movement must be to pass the filter.
	// Default: 10
	Threshold float64

	// Group enables coalescing: samples belonging to the same movement
	// are buffered and emitted as one grouped sample once the movement
	// ends. When false the filter is a plain pass/suppress gate.
	// Default: true
	Group bool

	// ToleranceLimit is the number of consecutive below-threshold samples
	// absorbed into an in-progress group before it is flushed. Gestures
	// oscillate; without tolerance a single movement fragments into many
	// tiny samples.
	// Default: 2
	ToleranceLimit int

	// Verbose logs the magnitude decision for every sample.
	Verbose bool
}

// DefaultConfig returns the tuning used by the original capture rigs.
func DefaultConfig() Config {
	return Config{
		Threshold:      10,
		Group:          true,
		ToleranceLimit: 2,
	}
}

// SubtleMotionConfig returns config tuned for low-amplitude gestures such
// as finger movement, trading more noise for fewer dropped gestures.
func SubtleMotionConfig() Config {
	return Config{
		Threshold:      3,
		Group:          true,
		ToleranceLimit: 4,
	}
}

// GateConfig returns config for plain thresholding without grouping:
// above-threshold samples pass through unchanged, everything else is
// suppressed.
func GateConfig(threshold float64) Config {
	return Config{
		Threshold: threshold,
		Group:     false,
	}
}

// GradientThresholdFilter suppresses samples without meaningful motion and,
// in grouping mode, coalesces the samples of one physical gesture into a
// single emitted sample.
//
// The filter is a two-state machine per gesture episode: IDLE (buffer
// empty) and ACCUMULATING (buffer holds the in-progress gesture).
// Above-threshold samples always extend the episode. Below-threshold
// samples are tolerated into the episode until ToleranceLimit consecutive
// ones have been absorbed; the next below-threshold sample flushes the
// buffer as one grouped sample. Tolerance never opens an episode: while
// idle, below-threshold samples are suppressed without buffering.
//
// One instance filters one stream. Feeding samples from multiple
// independent streams through a shared instance mis-groups gestures even
// though the mutex keeps the state consistent.
type GradientThresholdFilter struct {
	mu sync.Mutex

	// Configuration
	threshold      float64
	group          bool
	toleranceLimit int
	verbose        bool

	// State
	buffer    [][]float64 // nil between episodes
	tolerance int         // consecutive below-threshold samples absorbed
	// Statistics
	observations int
	flushes      int
}

// NewGradientThresholdFilter creates a filter with the given configuration.
// Negative Threshold and ToleranceLimit values are clamped to zero.
func NewGradientThresholdFilter(cfg Config) *GradientThresholdFilter {
	return &GradientThresholdFilter{
		threshold:      max(cfg.Threshold, 0),
		group:          cfg.Group,
		toleranceLimit: max(cfg.ToleranceLimit, 0),
		verbose:        cfg.Verbose,
	}
}

// ProcessSample classifies one sample and returns the pipeline's view of it:
// the sample itself (pass-through, grouping disabled), nil (suppressed or
// absorbed into the current group), or a freshly constructed grouped sample
// (the episode just ended).
//
// A grouped sample's data is the arrival-order concatenation of every
// buffered sample's rows, and its gesture ID is taken from the sample that
// triggered the flush. The filter never returns an error.
func (f *GradientThresholdFilter) ProcessSample(s *sample.Sample) (*sample.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observations++

	mag := magnitude(s)
	crossed := mag >= f.threshold

	if f.verbose {
		log.Printf("gradient threshold: magnitude=%.4f threshold=%.4f crossed=%t buffered=%d tolerance=%d/%d",
			mag, f.threshold, crossed, len(f.buffer), f.tolerance, f.toleranceLimit)
	}

	passes := false
	switch {
	case crossed:
		passes = true
		f.tolerance = 0
	case f.group && f.buffer != nil && f.tolerance < f.toleranceLimit:
		// Below threshold but an episode is in progress: absorb the dip.
		passes = true
		f.tolerance++
	}

	if passes {
		if !f.group {
			return s, nil
		}
		f.buffer = append(f.buffer, sample.CopyRows(s.Data)...)
		return nil, nil
	}

	if !f.group || f.buffer == nil {
		return nil, nil
	}

	// Tolerance exhausted: the movement is over. Emit the whole episode as
	// one sample labeled by the flushing sample.
	grouped := &sample.Sample{
		Data:      f.buffer,
		GestureID: s.GestureID,
	}
	f.buffer = nil
	f.tolerance = 0
	f.flushes++

	if f.verbose {
		log.Printf("gradient threshold: flushed group of %d rows as gesture %q", grouped.Rows(), grouped.GestureID)
	}
	return grouped, nil
}

// magnitude is the absolute mean gradient of a sample. Samples too short to
// have a gradient have magnitude 0.
func magnitude(s *sample.Sample) float64 {
	grad := s.Gradient()
	if len(grad) == 0 {
		return 0
	}
	return math.Abs(vek.Mean(grad))
}

// Reset discards any in-progress episode and clears the tolerance counter.
func (f *GradientThresholdFilter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buffer = nil
	f.tolerance = 0
}

// Buffered returns the number of rows accumulated in the current episode.
func (f *GradientThresholdFilter) Buffered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buffer)
}

// Tolerance returns the below-threshold samples absorbed since the last
// above-threshold sample.
func (f *GradientThresholdFilter) Tolerance() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tolerance
}

// Observations returns the number of samples processed.
func (f *GradientThresholdFilter) Observations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observations
}

// Flushes returns the number of grouped samples emitted.
func (f *GradientThresholdFilter) Flushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}
