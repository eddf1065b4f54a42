package lithophane

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"github.com/ironsheep/lithophane-mcp/internal/field"
	"github.com/ironsheep/lithophane-mcp/internal/imaging"
	"github.com/ironsheep/lithophane-mcp/internal/mesh"
)

// MaxGridSamples caps the internal grid size. Three float64 buffers of the
// grid size are live at once during generation, so 2^26 samples bounds the
// field data at roughly 1.5 GB worst case.
const MaxGridSamples = 1 << 26

// solidName is the name emitted in the STL header.
const solidName = "lithophane"

// Result is the successful outcome of a generation: the serialized mesh
// plus the statistics a caller needs to present or save it.
type Result struct {
	// MeshText is the full ASCII STL document.
	MeshText string `json:"-"`

	// Filename is the suggested save name,
	// lithophane_{width}x{height}x{thickness}mm.stl.
	Filename string `json:"filename"`

	// TriangleCount is the number of facets in MeshText.
	TriangleCount int `json:"triangle_count"`

	// InternalWidth and InternalHeight are the generation grid dimensions.
	InternalWidth  int `json:"internal_width"`
	InternalHeight int `json:"internal_height"`

	// MinHeightMM and MaxHeightMM are the final height-field bounds. For a
	// non-degenerate image these equal the requested first-layer thickness
	// and total thickness.
	MinHeightMM float64 `json:"min_height_mm"`
	MaxHeightMM float64 `json:"max_height_mm"`

	// Orientation echoes the descriptive orientation from the settings.
	Orientation string `json:"orientation,omitempty"`
}

// GenerateFromImage runs the full pipeline for an image file: decode and
// grayscale preparation through the imaging collaborator, then the same
// numeric pipeline GenerateFromBuffer exposes for raw buffers.
func GenerateFromImage(cache *imaging.ImageCache, path string, s Settings) (*Result, error) {
	s = s.withDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	iw, ih := internalDimensions(s)
	if err := checkGridSize(iw, ih); err != nil {
		return nil, err
	}
	buf, err := imaging.PrepareGrayscale(cache, path, iw, ih, s.prepareOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}
	return generate(buf, s)
}

// GenerateFromBuffer runs the numeric pipeline over a prepared grayscale
// pixel buffer: brightness normalization, edge enhancement, height mapping,
// smoothing, thickness renormalization, mesh construction, and STL
// serialization.
//
// The buffer is row-major, one byte per pixel, and should hold
// internalWidth*internalHeight bytes for the settings' grid; short buffers
// are tolerated (missing samples read as black). Either the complete valid
// mesh document is returned or none is.
func GenerateFromBuffer(buf []byte, s Settings) (*Result, error) {
	s = s.withDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return generate(buf, s)
}

// generate is the shared pipeline body behind the two entry points.
// Settings must already have defaults applied and be valid.
func generate(buf []byte, s Settings) (res *Result, err error) {
	// Unexpected failures anywhere in the pipeline become errors here;
	// nothing below this boundary is allowed to take the process down.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("generation failed unexpectedly: %v", r)
		}
	}()

	heights, err := buildHeightField(buf, s)
	if err != nil {
		return nil, err
	}

	doc := mesh.Build(heights, mesh.BuildOptions{
		Name:                 solidName,
		WidthMM:              s.WidthMM,
		HeightMM:             s.HeightMM,
		ThicknessMM:          s.ThicknessMM,
		ResolutionMultiplier: s.ResolutionMultiplier,
		FrameEnabled:         s.FrameEnabled,
		FrameWidthMM:         s.FrameWidthMM,
	})

	minH, maxH := heights.MinMax()
	return &Result{
		MeshText:       doc.ASCII(),
		Filename:       suggestedFilename(s),
		TriangleCount:  len(doc.Triangles),
		InternalWidth:  heights.W,
		InternalHeight: heights.H,
		MinHeightMM:    minH,
		MaxHeightMM:    maxH,
		Orientation:    s.Orientation,
	}, nil
}

// PreviewResult carries the post-pipeline height field rendered as a
// grayscale PNG, brightest at maximum thickness.
type PreviewResult struct {
	// Width and Height of the preview image (the internal grid size).
	Width  int `json:"width"`
	Height int `json:"height"`

	// MinHeightMM and MaxHeightMM are the rendered height bounds.
	MinHeightMM float64 `json:"min_height_mm"`
	MaxHeightMM float64 `json:"max_height_mm"`

	// ImageBase64 is the preview encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// PreviewHeightmap runs the numeric pipeline for an image but stops before
// mesh construction, returning the final height field as a grayscale PNG.
// Useful for checking settings without paying for triangulation and a
// multi-megabyte STL.
func PreviewHeightmap(cache *imaging.ImageCache, path string, s Settings) (*PreviewResult, error) {
	s = s.withDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	iw, ih := internalDimensions(s)
	if err := checkGridSize(iw, ih); err != nil {
		return nil, err
	}
	buf, err := imaging.PrepareGrayscale(cache, path, iw, ih, s.prepareOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	heights, err := buildHeightField(buf, s)
	if err != nil {
		return nil, err
	}

	minH, maxH := heights.MinMax()
	img := image.NewGray(image.Rect(0, 0, heights.W, heights.H))
	span := maxH - minH
	for y := 0; y < heights.H; y++ {
		for x := 0; x < heights.W; x++ {
			v := 0.0
			if span > 0 {
				v = (heights.At(x, y) - minH) / span
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return &PreviewResult{
		Width:       heights.W,
		Height:      heights.H,
		MinHeightMM: minH,
		MaxHeightMM: maxH,
		ImageBase64: base64.StdEncoding.EncodeToString(pngBuf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// buildHeightField runs the field stages: normalize, enhance, map, smooth,
// renormalize. Settings must already have defaults applied and be valid.
func buildHeightField(buf []byte, s Settings) (*field.Field, error) {
	iw, ih := internalDimensions(s)
	if err := checkGridSize(iw, ih); err != nil {
		return nil, err
	}

	brightness, err := field.FromBytes(buf, iw, ih)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixel buffer: %w", err)
	}

	// Height normalization runs against the original field's statistics,
	// not the sharpened copy.
	minB, maxB := brightness.MinMax()
	enhanced := field.EnhanceEdges(brightness)

	heights := field.MapHeights(enhanced, minB, maxB, field.HeightParams{
		FirstLayerMM:   s.FirstLayerMM,
		ThicknessMM:    s.ThicknessMM,
		NumberOfLayers: s.NumberOfLayers,
		Negative:       s.Negative,
	})

	s.smoother().Smooth(heights)
	field.RenormalizeThickness(heights, s.FirstLayerMM, s.ThicknessMM)
	return heights, nil
}

// internalDimensions converts the physical size and resolution multiplier
// into the grid size. At least two samples per axis are required to form
// any surface.
func internalDimensions(s Settings) (int, int) {
	res := float64(s.ResolutionMultiplier)
	iw := int(math.Round(s.WidthMM * res))
	ih := int(math.Round(s.HeightMM * res))
	if iw < 2 {
		iw = 2
	}
	if ih < 2 {
		ih = 2
	}
	return iw, ih
}

// checkGridSize rejects grids whose field buffers would exhaust memory.
func checkGridSize(iw, ih int) error {
	if samples := iw * ih; samples > MaxGridSamples {
		return fmt.Errorf("internal grid %dx%d (%d samples) exceeds the %d sample limit; lower the resolution multiplier or physical size",
			iw, ih, samples, MaxGridSamples)
	}
	return nil
}

// suggestedFilename renders the conventional save name, with millimeter
// values trimmed of trailing zeros (10.0 -> "10", 2.5 -> "2.5").
func suggestedFilename(s Settings) string {
	mm := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return fmt.Sprintf("lithophane_%sx%sx%smm.stl", mm(s.WidthMM), mm(s.HeightMM), mm(s.ThicknessMM))
}
