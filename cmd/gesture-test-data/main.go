// Gesture Test Data Generator for pygarl
//
// This tool generates synthetic gesture sample streams for exercising the
// gradient threshold filter without sensor hardware. A stream is a numbered
// sequence of JSON sample files: stretches of low-amplitude noise with
// gesture bursts in between, each burst ramping up, oscillating (including
// brief dips below any sensible threshold) and ramping down, the way real
// wrist-sensor captures look.
//
// Usage:
//
//	go run cmd/gesture-test-data/main.go [options]
//
// Options:
//
//	-mode      Generation mode: stream, bursts (default: stream)
//	-count     Number of samples in the stream (default: 200)
//	-rows      Time steps per sample (default: 8)
//	-channels  Sensor channels per reading (default: 3)
//	-gestures  Comma-separated gesture labels to cycle through (default: "wave,circle,push")
//	-noise     Noise amplitude between gestures (default: 1.0)
//	-burst     Peak step amplitude inside a gesture (default: 25.0)
//	-output    Output directory (default: ./data/gesture-test)
//	-seed      Random seed for reproducibility (default: 42)
//
// Examples:
//
//	# Generate a 200-sample stream and replay it
//	go run cmd/gesture-test-data/main.go -count 200
//	pygarl filter ./data/gesture-test
//
//	# Pure gesture bursts without idle noise, one file per burst sample
//	go run cmd/gesture-test-data/main.go -mode bursts -gestures swipe,tap
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/frh02/pygarl/pkg/sample"
)

func main() {
	mode := flag.String("mode", "stream", "Generation mode: stream, bursts")
	count := flag.Int("count", 200, "Number of samples in the stream")
	rows := flag.Int("rows", 8, "Time steps per sample")
	channels := flag.Int("channels", 3, "Sensor channels per reading")
	gestures := flag.String("gestures", "wave,circle,push", "Comma-separated gesture labels")
	noise := flag.Float64("noise", 1.0, "Noise amplitude between gestures")
	burst := flag.Float64("burst", 25.0, "Peak step amplitude inside a gesture")
	outputDir := flag.String("output", "./data/gesture-test", "Output directory")
	seed := flag.Int64("seed", 42, "Random seed for reproducibility")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	labels := strings.Split(*gestures, ",")

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *outputDir, err)
	}

	var samples []*sample.Sample
	switch *mode {
	case "stream":
		samples = generateStream(rng, *count, *rows, *channels, labels, *noise, *burst)
	case "bursts":
		samples = generateBursts(rng, *count, *rows, *channels, labels, *burst)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	for i, s := range samples {
		path := filepath.Join(*outputDir, fmt.Sprintf("%06d.json", i))
		if err := s.Save(path); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
	}
	fmt.Printf("✅ Wrote %d samples to %s\n", len(samples), *outputDir)
}

// generateStream interleaves idle noise with gesture bursts. Roughly one
// sample in eight starts a burst of 3-6 motion samples; each burst contains
// one deliberate below-threshold dip so grouped replay exercises the
// tolerance path.
func generateStream(rng *rand.Rand, count, rows, channels int, labels []string, noise, burst float64) []*sample.Sample {
	var samples []*sample.Sample
	gesture := 0
	for len(samples) < count {
		if rng.Intn(8) != 0 {
			samples = append(samples, noiseSample(rng, rows, channels, noise))
			continue
		}

		label := labels[gesture%len(labels)]
		gesture++
		burstLen := 3 + rng.Intn(4)
		dipAt := 1 + rng.Intn(burstLen-1)
		for i := 0; i < burstLen && len(samples) < count; i++ {
			if i == dipAt {
				samples = append(samples, noiseSample(rng, rows, channels, noise))
				continue
			}
			samples = append(samples, burstSample(rng, rows, channels, burst, label))
		}
	}
	return samples
}

// generateBursts emits motion samples only, cycling through the labels.
func generateBursts(rng *rand.Rand, count, rows, channels int, labels []string, burst float64) []*sample.Sample {
	samples := make([]*sample.Sample, 0, count)
	for i := 0; i < count; i++ {
		samples = append(samples, burstSample(rng, rows, channels, burst, labels[i%len(labels)]))
	}
	return samples
}

// noiseSample produces readings that wander within the noise amplitude, so
// the mean gradient stays near zero.
func noiseSample(rng *rand.Rand, rows, channels int, noise float64) *sample.Sample {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, channels)
		for c := range row {
			row[c] = (rng.Float64()*2 - 1) * noise
		}
		data[i] = row
	}
	return &sample.Sample{Data: data}
}

// burstSample produces a steady climb with per-step jitter, giving a mean
// gradient close to the burst amplitude.
func burstSample(rng *rand.Rand, rows, channels int, burst float64, label string) *sample.Sample {
	data := make([][]float64, rows)
	level := rng.Float64() * 10
	for i := range data {
		row := make([]float64, channels)
		for c := range row {
			row[c] = level + rng.Float64()*burst*0.2
		}
		data[i] = row
		level += burst
	}
	return &sample.Sample{Data: data, GestureID: label}
}
