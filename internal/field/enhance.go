package field

import "math"

// Unsharp-mask parameters. These are fixed: the lithophane relief benefits
// from a gentle, consistent edge boost, and exposing them has never produced
// better prints than these values.
const (
	unsharpAmount    = 1.0  // edge boost factor
	unsharpRadius    = 1    // blur radius in pixels
	unsharpThreshold = 0.02 // high-frequency magnitudes below this are noise
)

// EnhanceEdges applies an unsharp mask to a brightness field.
//
// A low-pass copy is computed with a separable blur, then for each sample
// the high-frequency component (original minus blurred) is added back scaled
// by the boost amount. Components below the noise threshold are suppressed
// entirely so flat regions stay flat. The result is clamped to [0,1].
//
// The input field is not modified; callers keep it around because the
// height mapper normalizes against the min/max of the *original* brightness,
// not the sharpened copy.
func EnhanceEdges(f *Field) *Field {
	blurred := separableBlur(f, unsharpRadius)
	out := &Field{W: f.W, H: f.H, Samples: make([]float64, len(f.Samples))}
	for i, orig := range f.Samples {
		highFreq := orig - blurred.Samples[i]
		if math.Abs(highFreq) < unsharpThreshold {
			out.Samples[i] = orig
			continue
		}
		out.Samples[i] = clampf(orig+unsharpAmount*highFreq, 0, 1)
	}
	return out
}

// separableBlur computes a low-pass copy of f using two one-dimensional
// convolution passes (horizontal then vertical).
//
// Kernel selection:
//
//	radius <= 1:  [1 2 1] / 4
//	radius  > 1:  [1 4 6 4 1] / 16
//
// Border samples use clamped (replicated) edge values; indices never wrap
// and never read out of bounds.
func separableBlur(f *Field, radius int) *Field {
	kernel := []float64{1, 2, 1}
	norm := 4.0
	if radius > 1 {
		kernel = []float64{1, 4, 6, 4, 1}
		norm = 16.0
	}
	half := len(kernel) / 2

	// Horizontal pass.
	tmp := &Field{W: f.W, H: f.H, Samples: make([]float64, len(f.Samples))}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			var sum float64
			for k := -half; k <= half; k++ {
				px := clampi(x+k, 0, f.W-1)
				sum += f.At(px, y) * kernel[k+half]
			}
			tmp.Set(x, y, sum/norm)
		}
	}

	// Vertical pass.
	out := &Field{W: f.W, H: f.H, Samples: make([]float64, len(f.Samples))}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			var sum float64
			for k := -half; k <= half; k++ {
				py := clampi(y+k, 0, f.H-1)
				sum += tmp.At(x, py) * kernel[k+half]
			}
			out.Set(x, y, sum/norm)
		}
	}
	return out
}
