// Package sample provides the gesture sample data carrier shared by every
// pipeline stage.
//
// A Sample is one unit of multi-channel sensor time-series data: one row of
// readings per time step, with a fixed channel count across a recording
// session, plus an optional gesture label. Samples move through the
// middleware pipeline by value semantics: stages read a sample's data and
// gradient and construct new samples, they never mutate rows in place.
//
// Example Usage:
//
//	s := sample.New([][]float64{{0, 0}, {3, 5}}, "swipe-left")
//
//	grad := s.Gradient()        // per-step mean channel differences
//	copy := s.Clone()           // deep copy, no shared rows
//
//	if err := s.Save("swipe.json"); err != nil {
//		log.Fatal(err)
//	}
package sample

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/viterin/vek"
)

// Sample is one unit of sensor time-series data with an optional gesture
// label.
//
// Data holds one row per time step; every row in a sample has the same
// channel count. GestureID is an opaque label; empty means unlabeled.
type Sample struct {
	Data      [][]float64 `json:"data"`
	GestureID string      `json:"gesture_id,omitempty"`
}

// New constructs a Sample from the given rows and gesture label.
//
// The rows are deep-copied so the caller keeps ownership of its slices and
// may reuse or mutate them afterwards.
func New(data [][]float64, gestureID string) *Sample {
	return &Sample{
		Data:      CopyRows(data),
		GestureID: gestureID,
	}
}

// CopyRows returns a deep copy of a row slice. Rows in the copy share no
// backing storage with the input.
func CopyRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Clone returns a deep copy of the sample.
func (s *Sample) Clone() *Sample {
	return &Sample{
		Data:      CopyRows(s.Data),
		GestureID: s.GestureID,
	}
}

// Rows returns the number of time steps in the sample.
func (s *Sample) Rows() int {
	return len(s.Data)
}

// Channels returns the channel count of the sample, 0 for an empty sample.
func (s *Sample) Channels() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

// Gradient returns the per-step difference sequence of the sample: for each
// adjacent pair of rows, the mean of the channel-wise differences.
//
// A sample with fewer than two rows has an empty gradient. The result is
// freshly allocated on every call.
func (s *Sample) Gradient() []float64 {
	if len(s.Data) < 2 {
		return nil
	}
	grad := make([]float64, len(s.Data)-1)
	for i := range grad {
		grad[i] = vek.Mean(vek.Sub(s.Data[i+1], s.Data[i]))
	}
	return grad
}

// Validate checks that every row has the same channel count.
func (s *Sample) Validate() error {
	if len(s.Data) == 0 {
		return nil
	}
	channels := len(s.Data[0])
	for i, row := range s.Data {
		if len(row) != channels {
			return fmt.Errorf("sample: row %d has %d channels, want %d", i, len(row), channels)
		}
	}
	return nil
}

// Save writes the sample to path as JSON.
func (s *Sample) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("sample: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sample: write %s: %w", path, err)
	}
	return nil
}

// Load reads a sample previously written with Save and validates its shape.
func Load(path string) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sample: read %s: %w", path, err)
	}
	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("sample: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("sample: %s: %w", path, err)
	}
	return &s, nil
}

// Plot renders the sample through the given renderer. Renderer faults
// propagate unmodified.
func (s *Sample) Plot(r Renderer) error {
	return r.Render(s)
}
