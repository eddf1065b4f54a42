// Package field implements the numeric core of lithophane generation: the
// transformation of a grayscale pixel buffer into a height field measured in
// millimeters, ready for triangulation.
//
// The pipeline stages, each consuming the previous stage's output:
//
//  1. FromBytes: raw 8-bit pixels -> brightness Field with values in [0,1]
//  2. EnhanceEdges: unsharp-mask sharpening using a separable blur
//  3. MapHeights: brightness -> millimeters, discrete-layer or continuous
//  4. Smoother.Smooth: in-place surface smoothing (geometric, Laplacian, none)
//  5. RenormalizeThickness: rescale back into the requested thickness bounds
//
// # Field Representation
//
// A Field is a single flat float64 buffer with explicit row-major indexing
// (y*W + x) plus its dimensions. There is no per-row allocation; functions
// that consume a Field receive width and height alongside the samples.
//
// # Invariants
//
// Brightness fields hold values in [0,1]. After RenormalizeThickness, the
// minimum and maximum of a height field equal the requested first-layer
// thickness and total thickness to within floating tolerance, unless the
// field is degenerate (near-flat), in which case samples are clamped into
// that range instead of rescaled.
//
// All operations are pure or operate on caller-owned buffers; nothing in
// this package holds state between calls, so concurrent generations are safe
// as long as each owns its own fields.
package field
