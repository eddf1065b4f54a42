package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Field is a row-major 2D grid of float64 samples backed by one flat buffer.
//
// The sample at (x, y) lives at index y*W + x. Depending on the pipeline
// stage the samples are either brightness values in [0,1] or heights in
// millimeters; the Field itself does not distinguish the two.
type Field struct {
	W, H    int
	Samples []float64
}

// New allocates a zeroed Field of the given dimensions.
//
// Returns an error for non-positive dimensions so that callers never end up
// with a zero-area grid deep inside the pipeline.
func New(w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid field dimensions %dx%d", w, h)
	}
	return &Field{W: w, H: h, Samples: make([]float64, w*h)}, nil
}

// At returns the sample at (x, y). Coordinates must be in bounds.
func (f *Field) At(x, y int) float64 {
	return f.Samples[y*f.W+x]
}

// Set stores v at (x, y). Coordinates must be in bounds.
func (f *Field) Set(x, y int, v float64) {
	f.Samples[y*f.W+x] = v
}

// Clone returns a deep copy with its own sample buffer.
func (f *Field) Clone() *Field {
	out := &Field{W: f.W, H: f.H, Samples: make([]float64, len(f.Samples))}
	copy(out.Samples, f.Samples)
	return out
}

// MinMax returns the global minimum and maximum sample values.
func (f *Field) MinMax() (min, max float64) {
	return floats.Min(f.Samples), floats.Max(f.Samples)
}

// clampf constrains v to [lo, hi].
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampi constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clampi(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
