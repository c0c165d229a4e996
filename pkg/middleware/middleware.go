package middleware

import (
	"github.com/frh02/pygarl/pkg/sample"
)

// Processor is the contract every pipeline stage satisfies: take one
// sample, produce at most one sample.
//
// A (nil, nil) return suppresses the sample; downstream stages never see
// it. A non-nil error aborts processing for this sample and propagates to
// the pipeline driver unmodified.
type Processor interface {
	ProcessSample(s *sample.Sample) (*sample.Sample, error)
}

// ProcessorFunc adapts a plain function to the Processor contract.
type ProcessorFunc func(s *sample.Sample) (*sample.Sample, error)

// ProcessSample calls fn(s).
func (fn ProcessorFunc) ProcessSample(s *sample.Sample) (*sample.Sample, error) {
	return fn(s)
}

// Pipeline runs stages in order, feeding each stage's output to the next.
// It short-circuits on the first suppression or error, and is itself a
// Processor so pipelines compose.
type Pipeline struct {
	stages []Processor
}

// NewPipeline creates a pipeline over the given stages. An empty pipeline
// passes every sample through unchanged.
func NewPipeline(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Append adds a stage to the end of the pipeline.
func (p *Pipeline) Append(stage Processor) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// ProcessSample runs the sample through every stage in order.
func (p *Pipeline) ProcessSample(s *sample.Sample) (*sample.Sample, error) {
	for _, stage := range p.stages {
		var err error
		s, err = stage.ProcessSample(s)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, nil
		}
	}
	return s, nil
}
