package middleware

import (
	"errors"
	"testing"

	"github.com/frh02/pygarl/pkg/sample"
)

// countingRenderer records render calls and optionally fails.
type countingRenderer struct {
	calls int
	err   error
	last  *sample.Sample
}

func (r *countingRenderer) Render(s *sample.Sample) error {
	r.calls++
	r.last = s
	return r.err
}

func TestPlotter_PassThrough(t *testing.T) {
	renderer := &countingRenderer{}
	p := NewPlotter(renderer)

	s := motionSample(0, 5, "g1")
	out, err := p.ProcessSample(s)
	if err != nil {
		t.Fatalf("ProcessSample: %v", err)
	}
	if out != s {
		t.Error("plotter must return the same sample unchanged")
	}
	if renderer.calls != 1 {
		t.Errorf("Render called %d times, want 1", renderer.calls)
	}
	if renderer.last != s {
		t.Error("renderer saw a different sample")
	}
}

func TestPlotter_RendererErrorPropagates(t *testing.T) {
	boom := errors.New("tty gone")
	p := NewPlotter(&countingRenderer{err: boom})

	out, err := p.ProcessSample(motionSample(0, 5, "g1"))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want renderer fault", err)
	}
	if out != nil {
		t.Errorf("out = %v, want nil on fault", out)
	}
}
