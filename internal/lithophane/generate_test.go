package lithophane

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/lithophane-mcp/internal/imaging"
)

// checkerboardBuffer builds a w x h pixel buffer alternating 0 and 255,
// starting with 255 at (0,0).
func checkerboardBuffer(w, h int) []byte {
	buf := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				buf[y*w+x] = 255
			}
		}
	}
	return buf
}

func checkerboardSettings() Settings {
	return Settings{
		WidthMM:              4,
		HeightMM:             4,
		ThicknessMM:          2,
		FirstLayerMM:         0.4,
		ResolutionMultiplier: 1,
		NumberOfLayers:       5,
		Smoothing:            SmoothingSettings{Method: SmoothingNone},
	}
}

func TestGenerateFromBuffer_Checkerboard(t *testing.T) {
	result, err := GenerateFromBuffer(checkerboardBuffer(4, 4), checkerboardSettings())
	if err != nil {
		t.Fatalf("GenerateFromBuffer failed: %v", err)
	}

	if result.InternalWidth != 4 || result.InternalHeight != 4 {
		t.Errorf("internal grid: got %dx%d, want 4x4", result.InternalWidth, result.InternalHeight)
	}
	if result.Filename != "lithophane_4x4x2mm.stl" {
		t.Errorf("filename: got %q, want %q", result.Filename, "lithophane_4x4x2mm.stl")
	}

	// 4x4 grid: top 2*3*3=18, base 2, walls 4*2*3=24.
	if result.TriangleCount != 44 {
		t.Errorf("triangle count: got %d, want 44", result.TriangleCount)
	}

	if math.Abs(result.MinHeightMM-0.4) > 1e-4 {
		t.Errorf("min height: got %f, want 0.4", result.MinHeightMM)
	}
	if math.Abs(result.MaxHeightMM-2.0) > 1e-4 {
		t.Errorf("max height: got %f, want 2.0", result.MaxHeightMM)
	}

	if !strings.HasPrefix(result.MeshText, "solid lithophane\n") {
		t.Errorf("mesh text does not start with STL header")
	}
	if !strings.HasSuffix(result.MeshText, "endsolid lithophane\n") {
		t.Errorf("mesh text does not end with STL footer")
	}
	if got := strings.Count(result.MeshText, "facet normal"); got != result.TriangleCount {
		t.Errorf("serialized facets: got %d, want %d", got, result.TriangleCount)
	}
}

func TestGenerateFromBuffer_FrameAddsExactly24(t *testing.T) {
	s := checkerboardSettings()
	plain, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s)
	if err != nil {
		t.Fatalf("GenerateFromBuffer failed: %v", err)
	}

	s.FrameEnabled = true
	s.FrameWidthMM = 2.0
	framed, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s)
	if err != nil {
		t.Fatalf("GenerateFromBuffer with frame failed: %v", err)
	}

	if got := framed.TriangleCount - plain.TriangleCount; got != 24 {
		t.Errorf("frame triangles: got %d, want 24", got)
	}
}

func TestGenerateFromBuffer_ThicknessBounds(t *testing.T) {
	// With smoothing enabled, renormalization must restore the requested
	// bounds exactly.
	for _, method := range []string{SmoothingGeometric, SmoothingLaplacian} {
		t.Run(method, func(t *testing.T) {
			s := checkerboardSettings()
			s.WidthMM, s.HeightMM = 8, 8
			s.Smoothing = SmoothingSettings{Method: method}

			result, err := GenerateFromBuffer(checkerboardBuffer(8, 8), s)
			if err != nil {
				t.Fatalf("GenerateFromBuffer failed: %v", err)
			}
			if math.Abs(result.MinHeightMM-0.4) > 1e-4 {
				t.Errorf("min height: got %f, want 0.4", result.MinHeightMM)
			}
			if math.Abs(result.MaxHeightMM-2.0) > 1e-4 {
				t.Errorf("max height: got %f, want 2.0", result.MaxHeightMM)
			}
		})
	}
}

func TestGenerateFromBuffer_FlatImage(t *testing.T) {
	// A flat source must generate a valid uniform slab, not NaN geometry.
	buf := make([]byte, 16) // all black
	result, err := GenerateFromBuffer(buf, checkerboardSettings())
	if err != nil {
		t.Fatalf("GenerateFromBuffer failed on flat image: %v", err)
	}
	if result.MinHeightMM != result.MaxHeightMM {
		t.Errorf("flat image heights: got (%f, %f), want equal", result.MinHeightMM, result.MaxHeightMM)
	}
	if result.MinHeightMM < 0.4 || result.MaxHeightMM > 2.0 {
		t.Errorf("flat image heights out of bounds: (%f, %f)", result.MinHeightMM, result.MaxHeightMM)
	}
	if strings.Contains(result.MeshText, "NaN") {
		t.Error("mesh text contains NaN")
	}
}

func TestGenerateFromBuffer_InvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero width", func(s *Settings) { s.WidthMM = 0 }},
		{"oversize width", func(s *Settings) { s.WidthMM = 2000 }},
		{"thin thickness", func(s *Settings) { s.ThicknessMM = 0.01 }},
		{"first layer above thickness", func(s *Settings) { s.FirstLayerMM = 3 }},
		{"resolution too high", func(s *Settings) { s.ResolutionMultiplier = 11 }},
		{"unknown smoothing", func(s *Settings) { s.Smoothing.Method = "cubic" }},
		{"unknown luminance mode", func(s *Settings) { s.LuminanceMode = "hsl" }},
		{"frame without width", func(s *Settings) { s.FrameEnabled = true; s.FrameWidthMM = 0 }},
		{"bad gamma", func(s *Settings) { s.Gamma = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := checkerboardSettings()
			tt.mutate(&s)
			if _, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s); err == nil {
				t.Error("expected settings validation error, got success")
			}
		})
	}
}

func TestGenerateFromBuffer_EmptyBuffer(t *testing.T) {
	if _, err := GenerateFromBuffer(nil, checkerboardSettings()); err == nil {
		t.Error("expected error for empty buffer, got success")
	}
}

func TestGenerateFromBuffer_GridCap(t *testing.T) {
	s := checkerboardSettings()
	s.WidthMM, s.HeightMM = 1000, 1000
	s.ResolutionMultiplier = 10

	_, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s)
	if err == nil {
		t.Fatal("expected grid size error, got success")
	}
	if !strings.Contains(err.Error(), "sample limit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateFromBuffer_NegativeSwapsPattern(t *testing.T) {
	s := checkerboardSettings()
	normal, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s)
	if err != nil {
		t.Fatalf("GenerateFromBuffer failed: %v", err)
	}

	s.Negative = true
	negative, err := GenerateFromBuffer(checkerboardBuffer(4, 4), s)
	if err != nil {
		t.Fatalf("GenerateFromBuffer negative failed: %v", err)
	}

	// Same bounds either way; the checkerboard just flips which cells are
	// thick, so the meshes must differ.
	if normal.MinHeightMM != negative.MinHeightMM || normal.MaxHeightMM != negative.MaxHeightMM {
		t.Errorf("bounds changed under negative: (%f,%f) vs (%f,%f)",
			normal.MinHeightMM, normal.MaxHeightMM, negative.MinHeightMM, negative.MaxHeightMM)
	}
	if normal.MeshText == negative.MeshText {
		t.Error("negative flag produced identical geometry")
	}
}

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		w, h, thick float64
		want        string
	}{
		{100, 80, 3, "lithophane_100x80x3mm.stl"},
		{10, 10, 2.5, "lithophane_10x10x2.5mm.stl"},
		{99.5, 120, 0.8, "lithophane_99.5x120x0.8mm.stl"},
	}

	for _, tt := range tests {
		s := Settings{WidthMM: tt.w, HeightMM: tt.h, ThicknessMM: tt.thick}
		if got := suggestedFilename(s); got != tt.want {
			t.Errorf("suggestedFilename(%v): got %q, want %q", tt, got, tt.want)
		}
	}
}

// writeGradientPNG writes a horizontal grayscale gradient to dir and
// returns its path.
func writeGradientPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	path := filepath.Join(dir, "gradient.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestGenerateFromImage(t *testing.T) {
	path := writeGradientPNG(t, t.TempDir(), 32, 32)

	s := checkerboardSettings()
	s.WidthMM, s.HeightMM = 10, 10

	result, err := GenerateFromImage(imaging.NewImageCache(), path, s)
	if err != nil {
		t.Fatalf("GenerateFromImage failed: %v", err)
	}

	if result.InternalWidth != 10 || result.InternalHeight != 10 {
		t.Errorf("internal grid: got %dx%d, want 10x10", result.InternalWidth, result.InternalHeight)
	}
	if math.Abs(result.MinHeightMM-0.4) > 1e-4 || math.Abs(result.MaxHeightMM-2.0) > 1e-4 {
		t.Errorf("height bounds: got (%f, %f), want (0.4, 2.0)", result.MinHeightMM, result.MaxHeightMM)
	}
}

func TestGenerateFromImage_MissingFile(t *testing.T) {
	_, err := GenerateFromImage(imaging.NewImageCache(), "/nonexistent/image.png", checkerboardSettings())
	if err == nil {
		t.Error("expected error for missing file, got success")
	}
}

func TestGenerateFromImage_ValidatesBeforeIO(t *testing.T) {
	// Settings validation runs once at the entry point, before any image
	// work: with both an invalid setting and a missing file, the settings
	// error wins.
	s := checkerboardSettings()
	s.FirstLayerMM = s.ThicknessMM + 1

	_, err := GenerateFromImage(imaging.NewImageCache(), "/nonexistent/image.png", s)
	if err == nil {
		t.Fatal("expected error, got success")
	}
	if !strings.Contains(err.Error(), "invalid settings") {
		t.Errorf("error should report the invalid settings, got %q", err)
	}
}

func TestPreviewHeightmap(t *testing.T) {
	path := writeGradientPNG(t, t.TempDir(), 32, 32)

	s := checkerboardSettings()
	s.WidthMM, s.HeightMM = 10, 10

	preview, err := PreviewHeightmap(imaging.NewImageCache(), path, s)
	if err != nil {
		t.Fatalf("PreviewHeightmap failed: %v", err)
	}

	if preview.Width != 10 || preview.Height != 10 {
		t.Errorf("preview size: got %dx%d, want 10x10", preview.Width, preview.Height)
	}
	if preview.MimeType != "image/png" {
		t.Errorf("mime type: got %q, want image/png", preview.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(preview.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode preview PNG: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded preview: got %dx%d, want 10x10", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSettingsWithDefaults(t *testing.T) {
	s := Settings{}.withDefaults()

	if s.ResolutionMultiplier != 1 {
		t.Errorf("resolution default: got %d, want 1", s.ResolutionMultiplier)
	}
	if s.NumberOfLayers != 10 {
		t.Errorf("layer default: got %d, want 10", s.NumberOfLayers)
	}
	if s.Smoothing.Method != SmoothingGeometric {
		t.Errorf("smoothing default: got %q, want %q", s.Smoothing.Method, SmoothingGeometric)
	}
	if s.Gamma != 1 {
		t.Errorf("gamma default: got %f, want 1", s.Gamma)
	}
	if s.LuminanceMode != "bt601" {
		t.Errorf("luminance default: got %q, want bt601", s.LuminanceMode)
	}
}
