package middleware

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/frh02/pygarl/pkg/sample"
)

// Benchmark sample shapes typical for wearable IMU captures
var benchmarkShapes = []struct {
	rows, channels int
}{
	{8, 3},
	{16, 6},
	{64, 9},
	{256, 9},
}

// generateTestSamples creates a stream alternating motion and noise.
func generateTestSamples(n, rows, channels int) []*sample.Sample {
	rng := rand.New(rand.NewSource(42))
	samples := make([]*sample.Sample, n)
	for i := range samples {
		data := make([][]float64, rows)
		level := 0.0
		// One motion sample followed by three noise samples, so grouped
		// runs exhaust the default tolerance and flush regularly.
		step := rng.Float64() // noise
		if i%4 == 0 {
			step = 20 + rng.Float64()*10 // motion
		}
		for r := range data {
			row := make([]float64, channels)
			for c := range row {
				row[c] = level + rng.Float64()
			}
			data[r] = row
			level += step
		}
		samples[i] = &sample.Sample{Data: data, GestureID: "bench"}
	}
	return samples
}

func BenchmarkGradientThreshold_Grouped(b *testing.B) {
	for _, shape := range benchmarkShapes {
		b.Run(fmt.Sprintf("%dx%d", shape.rows, shape.channels), func(b *testing.B) {
			samples := generateTestSamples(256, shape.rows, shape.channels)
			f := NewGradientThresholdFilter(DefaultConfig())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := f.ProcessSample(samples[i%len(samples)]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGradientThreshold_Gate(b *testing.B) {
	for _, shape := range benchmarkShapes {
		b.Run(fmt.Sprintf("%dx%d", shape.rows, shape.channels), func(b *testing.B) {
			samples := generateTestSamples(256, shape.rows, shape.channels)
			f := NewGradientThresholdFilter(GateConfig(10))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := f.ProcessSample(samples[i%len(samples)]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGradient(b *testing.B) {
	for _, shape := range benchmarkShapes {
		b.Run(fmt.Sprintf("%dx%d", shape.rows, shape.channels), func(b *testing.B) {
			s := generateTestSamples(1, shape.rows, shape.channels)[0]
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if g := s.Gradient(); len(g) != shape.rows-1 {
					b.Fatal("bad gradient length")
				}
			}
		})
	}
}
