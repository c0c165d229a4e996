package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frh02/pygarl/pkg/sample"
)

func TestPipeline_Empty(t *testing.T) {
	p := NewPipeline()
	s := motionSample(0, 5, "g1")

	out, err := p.ProcessSample(s)
	require.NoError(t, err)
	assert.Same(t, s, out, "empty pipeline should pass samples through")
}

func TestPipeline_OrderAndChaining(t *testing.T) {
	var order []string
	tag := func(name string) Processor {
		return ProcessorFunc(func(s *sample.Sample) (*sample.Sample, error) {
			order = append(order, name)
			return s, nil
		})
	}

	p := NewPipeline(tag("a"), tag("b"))
	p.Append(tag("c"))
	require.Equal(t, 3, p.Len())

	_, err := p.ProcessSample(motionSample(0, 5, "g1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPipeline_SuppressionShortCircuits(t *testing.T) {
	reached := false
	suppress := ProcessorFunc(func(*sample.Sample) (*sample.Sample, error) {
		return nil, nil
	})
	tail := ProcessorFunc(func(s *sample.Sample) (*sample.Sample, error) {
		reached = true
		return s, nil
	})

	p := NewPipeline(suppress, tail)
	out, err := p.ProcessSample(motionSample(0, 5, "g1"))
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, reached, "stages after a suppression must not run")
}

func TestPipeline_ErrorPropagates(t *testing.T) {
	boom := errors.New("renderer broken")
	failing := ProcessorFunc(func(*sample.Sample) (*sample.Sample, error) {
		return nil, boom
	})

	p := NewPipeline(failing)
	out, err := p.ProcessSample(motionSample(0, 5, "g1"))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
}

func TestPipeline_Composes(t *testing.T) {
	inner := NewPipeline(NewGradientThresholdFilter(GateConfig(10)))
	outer := NewPipeline(inner)

	s := motionSample(0, 20, "g1")
	out, err := outer.ProcessSample(s)
	require.NoError(t, err)
	assert.Same(t, s, out)

	out, err = outer.ProcessSample(motionSample(0, 1, "g1"))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPipeline_FilterThenPlotterSeesOnlyGroups(t *testing.T) {
	renderer := &countingRenderer{}
	filter := NewGradientThresholdFilter(Config{Threshold: 10, Group: true, ToleranceLimit: 1})
	p := NewPipeline(filter, NewPlotter(renderer))

	inputs := []*sample.Sample{
		motionSample(0, 15, "g1"),
		motionSample(0, 1, "g1"),
		motionSample(0, 1, "g2"), // flush
	}
	var emitted *sample.Sample
	for _, s := range inputs {
		out, err := p.ProcessSample(s)
		require.NoError(t, err)
		if out != nil {
			emitted = out
		}
	}

	require.NotNil(t, emitted)
	assert.Equal(t, "g2", emitted.GestureID)
	assert.Equal(t, 1, renderer.calls, "plotter must only see the grouped sample")
}
