package sample

import (
	"fmt"
	"io"

	"github.com/viterin/vek"
)

// Renderer visualizes a sample. The pipeline treats rendering as an opaque
// side effect; implementations decide where and how the sample is drawn.
type Renderer interface {
	Render(s *Sample) error
}

// TermRenderer draws each channel of a sample as a horizontal bar chart of
// unicode block glyphs, one line per time step. It is meant for quick
// inspection of recorded gestures in a terminal, not for analysis.
type TermRenderer struct {
	W io.Writer

	// Width is the number of glyph cells used for the largest magnitude.
	// Zero means the default of 40.
	Width int
}

var blocks = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// Render writes one line per time step with a bar per channel scaled to the
// sample's largest absolute reading.
func (t *TermRenderer) Render(s *Sample) error {
	width := t.Width
	if width <= 0 {
		width = 40
	}
	if len(s.Data) == 0 || s.Channels() == 0 {
		_, err := fmt.Fprintln(t.W, "(empty sample)")
		return err
	}

	var peak float64
	for _, row := range s.Data {
		if m := vek.Max(vek.Abs(row)); m > peak {
			peak = m
		}
	}
	if peak == 0 {
		peak = 1
	}

	if s.GestureID != "" {
		if _, err := fmt.Fprintf(t.W, "gesture %s (%d steps, %d channels)\n", s.GestureID, s.Rows(), s.Channels()); err != nil {
			return err
		}
	}
	for i, row := range s.Data {
		if _, err := fmt.Fprintf(t.W, "%4d ", i); err != nil {
			return err
		}
		for _, v := range row {
			if _, err := fmt.Fprintf(t.W, "|%-*s", width/len(row)+1, bar(v, peak, width/len(row))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(t.W); err != nil {
			return err
		}
	}
	return nil
}

func bar(v, peak float64, width int) string {
	if width <= 0 {
		width = 1
	}
	cells := v / peak * float64(width)
	if cells < 0 {
		cells = -cells
	}
	full := int(cells)
	if full > width {
		full = width
	}
	out := make([]rune, 0, width)
	for i := 0; i < full; i++ {
		out = append(out, '█')
	}
	if frac := cells - float64(full); frac > 0 && full < width {
		out = append(out, blocks[int(frac*float64(len(blocks)))%len(blocks)])
	}
	return string(out)
}
