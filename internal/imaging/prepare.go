package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luminance mode names accepted by PrepareOptions.
const (
	LuminanceBT601 = "bt601"
	LuminanceLab   = "lab"
)

// PrepareOptions are the optional tonal adjustments applied to the source
// image before it is resized and converted to grayscale. The zero value is
// a no-op preparation with BT.601 luminance.
type PrepareOptions struct {
	// Brightness shifts overall brightness; -1 to 1, where 0 changes
	// nothing.
	Brightness float64

	// Contrast adjusts contrast; -1 to 1, where 0 changes nothing.
	Contrast float64

	// Gamma applies gamma correction; must be > 0, where 1 changes nothing.
	// Zero is treated as 1.
	Gamma float64

	// LuminanceMode selects the grayscale weighting: LuminanceBT601
	// (default) or LuminanceLab.
	LuminanceMode string
}

// PrepareGrayscale loads an image and produces the raw grayscale pixel
// buffer for an internalWidth x internalHeight generation grid.
//
// The stages, in order: decode (cached), brightness/contrast/gamma
// adjustments, Lanczos resize to exactly the target dimensions, grayscale
// conversion. The returned buffer holds exactly internalWidth*internalHeight
// bytes in row-major order, one byte per pixel, 0 = black.
//
// Fails if the image cannot be read or the target dimensions are not
// positive; both are input errors that abort a generation before any field
// buffer exists.
func PrepareGrayscale(cache *ImageCache, path string, internalWidth, internalHeight int, opts PrepareOptions) ([]byte, error) {
	if internalWidth <= 0 || internalHeight <= 0 {
		return nil, fmt.Errorf("invalid target dimensions %dx%d", internalWidth, internalHeight)
	}

	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("image %q has empty bounds", path)
	}

	adjusted := applyAdjustments(img, opts)
	resized := imaging.Resize(adjusted, internalWidth, internalHeight, imaging.Lanczos)

	if opts.LuminanceMode == LuminanceLab {
		return labGrayscale(resized), nil
	}
	return bt601Grayscale(resized), nil
}

// applyAdjustments runs the configured bild adjustments, skipping the ones
// left at their neutral values so an unadjusted preparation costs nothing
// extra.
func applyAdjustments(img image.Image, opts PrepareOptions) image.Image {
	if opts.Brightness != 0 {
		img = adjust.Brightness(img, opts.Brightness)
	}
	if opts.Contrast != 0 {
		img = adjust.Contrast(img, opts.Contrast)
	}
	if opts.Gamma > 0 && opts.Gamma != 1 {
		img = adjust.Gamma(img, opts.Gamma)
	}
	return img
}

// bt601Grayscale converts via the standard luma weights using the imaging
// package, then extracts one byte per pixel.
func bt601Grayscale(img *image.NRGBA) []byte {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := make([]byte, w*h)
	for i := 0; i < w*h; i++ {
		// Grayscale output has R == G == B.
		buf[i] = gray.Pix[i*4]
	}
	return buf
}

// labGrayscale converts via CIE Lab lightness. L* is perceptually uniform,
// so saturated colors with similar luma keep their apparent contrast in the
// relief.
func labGrayscale(img *image.NRGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(img.NRGBAAt(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// Fully transparent pixel; treat as black.
				continue
			}
			l, _, _ := c.Lab()
			if l < 0 {
				l = 0
			}
			if l > 1 {
				l = 1
			}
			buf[y*w+x] = uint8(l*255 + 0.5)
		}
	}
	return buf
}
