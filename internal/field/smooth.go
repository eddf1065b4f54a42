package field

import "math"

// Defaults applied when a smoothing spec leaves pass counts or strength at
// zero.
const (
	DefaultGeometricPasses   = 2
	DefaultLaplacianPasses   = 3
	DefaultLaplacianStrength = 0.1
)

// Smoother smooths a height field in place. Implementations must treat a
// perfectly uniform field as a fixed point: constant input comes back
// unchanged (to floating tolerance), so smoothing never drifts the overall
// thickness of a flat region.
//
// Adding a smoothing method means adding a new implementation, not another
// branch in a dispatch switch.
type Smoother interface {
	Smooth(f *Field)
}

// NoSmoothing leaves the field untouched.
type NoSmoothing struct{}

// Smooth is the identity.
func (NoSmoothing) Smooth(*Field) {}

// GeometricSmoother averages each sample over a 5x5 window with
// distance-based weights: 8 at the center, 1/(1 + 0.3*distance) elsewhere,
// where distance is the Euclidean offset in grid cells. Out-of-bounds
// neighbors are skipped rather than replicated, so borders average over
// whatever part of the window exists.
type GeometricSmoother struct {
	// Passes is the iteration count; values below 1 select
	// DefaultGeometricPasses.
	Passes int
}

// Smooth runs the configured number of full-buffer passes. Each pass reads
// from the previous pass's snapshot and writes to a fresh buffer, never
// reading a value written within the same pass.
func (g GeometricSmoother) Smooth(f *Field) {
	passes := g.Passes
	if passes < 1 {
		passes = DefaultGeometricPasses
	}
	src := f.Samples
	for p := 0; p < passes; p++ {
		dst := make([]float64, len(src))
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				var sum, total float64
				for ky := -2; ky <= 2; ky++ {
					for kx := -2; kx <= 2; kx++ {
						px, py := x+kx, y+ky
						if px < 0 || px >= f.W || py < 0 || py >= f.H {
							continue
						}
						weight := 8.0
						if kx != 0 || ky != 0 {
							weight = 1.0 / (1.0 + math.Sqrt(float64(kx*kx+ky*ky))*0.3)
						}
						sum += src[py*f.W+px] * weight
						total += weight
					}
				}
				dst[y*f.W+x] = sum / total
			}
		}
		src = dst
	}
	copy(f.Samples, src)
}

// LaplacianSmoother damps surface curvature: each pass subtracts the scaled
// discrete Laplacian from every sample,
//
//	new = old - strength * (n*center - sum(existing 4-neighbors))
//
// where n counts the neighbors that exist. Border samples use only their
// in-bounds neighbors, which keeps a constant field exactly constant there.
type LaplacianSmoother struct {
	// Strength scales the correction per pass; values <= 0 select
	// DefaultLaplacianStrength. Useful range is 0.01-1.0.
	Strength float64

	// Passes is the iteration count; values below 1 select
	// DefaultLaplacianPasses.
	Passes int
}

// Smooth runs the configured passes with snapshot semantics, as
// GeometricSmoother does.
func (l LaplacianSmoother) Smooth(f *Field) {
	strength := l.Strength
	if strength <= 0 {
		strength = DefaultLaplacianStrength
	}
	passes := l.Passes
	if passes < 1 {
		passes = DefaultLaplacianPasses
	}
	src := f.Samples
	for p := 0; p < passes; p++ {
		dst := make([]float64, len(src))
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				center := src[y*f.W+x]
				var neighborSum float64
				neighbors := 0
				if x > 0 {
					neighborSum += src[y*f.W+x-1]
					neighbors++
				}
				if x < f.W-1 {
					neighborSum += src[y*f.W+x+1]
					neighbors++
				}
				if y > 0 {
					neighborSum += src[(y-1)*f.W+x]
					neighbors++
				}
				if y < f.H-1 {
					neighborSum += src[(y+1)*f.W+x]
					neighbors++
				}
				laplacian := float64(neighbors)*center - neighborSum
				dst[y*f.W+x] = center - strength*laplacian
			}
		}
		src = dst
	}
	copy(f.Samples, src)
}
