// Package lithophane orchestrates the generation pipeline: it owns the
// Settings record, validates it, and runs a grayscale pixel buffer through
// the field stages and the mesh builder to produce serialized STL text.
//
// The package is the inbound contract of the system. Callers hand it a file
// path (or a prepared pixel buffer) plus Settings and get back either a
// Result carrying the mesh text and a suggested filename, or an error with
// a human-readable message. Generation is synchronous, single-threaded, and
// stateless; concurrent generations are independent.
//
// # Error Taxonomy
//
//   - Input errors (unreadable image, bad dimensions, out-of-range
//     settings) abort before any field buffer is allocated.
//   - Degenerate data (a flat image) generates a uniform slab rather than
//     failing; see the field package.
//   - Oversized grids (beyond MaxGridSamples) are rejected up front rather
//     than exhausting memory, since three float buffers of the grid size
//     are live at once.
//   - Unexpected panics inside the pipeline are recovered at the boundary
//     and returned as errors; a partial mesh is never emitted.
package lithophane
