package field

import "fmt"

// FromBytes converts a raw 8-bit grayscale pixel buffer into a brightness
// Field with every sample in [0,1].
//
// Parameters:
//   - buf: one byte per pixel, 0 = black, 255 = white, row-major.
//   - w, h: target grid dimensions.
//
// The buffer may be shorter than w*h: missing samples read as brightness 0.
// This tolerates off-by-a-few rounding from the resize collaborator without
// aborting a generation. An empty buffer or non-positive dimensions are
// input errors.
func FromBytes(buf []byte, w, h int) (*Field, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty pixel buffer")
	}
	f, err := New(w, h)
	if err != nil {
		return nil, err
	}
	n := len(f.Samples)
	if len(buf) < n {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		f.Samples[i] = clampf(float64(buf[i])/255.0, 0, 1)
	}
	return f, nil
}
