// Package imaging turns arbitrary image files into the fixed-size 8-bit
// grayscale pixel buffers the lithophane pipeline consumes.
//
// The package has two halves: ImageCache, which decodes and caches source
// images so repeated tool calls against the same file skip disk I/O, and
// PrepareGrayscale, which applies the optional tonal adjustments, resizes to
// the internal grid resolution, and converts to grayscale bytes.
//
// # Luminance Modes
//
// Grayscale conversion supports two weightings:
//   - "bt601" (default): the ITU-R BT.601 luma weights used everywhere else
//     in the ecosystem (0.299 R + 0.587 G + 0.114 B).
//   - "lab": perceptual lightness (CIE Lab L*), which better preserves
//     perceived contrast between saturated colors of similar luma.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. PrepareGrayscale is stateless and
// reentrant; concurrent preparations of different requests are safe.
package imaging
