package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeGradientPNG writes a horizontal black-to-white gradient.
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

func meanOf(buf []byte) float64 {
	var sum float64
	for _, b := range buf {
		sum += float64(b)
	}
	return sum / float64(len(buf))
}

func TestPrepareGrayscale_ExactBufferSize(t *testing.T) {
	path := writeGradientPNG(t, t.TempDir(), 64, 48)
	cache := NewImageCache()

	tests := []struct {
		iw, ih int
	}{
		{32, 24},
		{64, 48},
		{100, 10},
		{2, 2},
	}

	for _, tt := range tests {
		buf, err := PrepareGrayscale(cache, path, tt.iw, tt.ih, PrepareOptions{})
		if err != nil {
			t.Fatalf("PrepareGrayscale(%dx%d) failed: %v", tt.iw, tt.ih, err)
		}
		if len(buf) != tt.iw*tt.ih {
			t.Errorf("buffer size for %dx%d: got %d, want %d", tt.iw, tt.ih, len(buf), tt.iw*tt.ih)
		}
	}
}

func TestPrepareGrayscale_PreservesGradientDirection(t *testing.T) {
	path := writeGradientPNG(t, t.TempDir(), 64, 16)

	buf, err := PrepareGrayscale(NewImageCache(), path, 16, 8, PrepareOptions{})
	if err != nil {
		t.Fatalf("PrepareGrayscale failed: %v", err)
	}

	// Left edge dark, right edge bright, on every row.
	for y := 0; y < 8; y++ {
		left := buf[y*16]
		right := buf[y*16+15]
		if left >= right {
			t.Errorf("row %d: left %d not darker than right %d", y, left, right)
		}
	}
}

func TestPrepareGrayscale_WhiteStaysWhite(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "white.png", 16, 16, color.White)

	for _, mode := range []string{LuminanceBT601, LuminanceLab} {
		buf, err := PrepareGrayscale(NewImageCache(), path, 8, 8, PrepareOptions{LuminanceMode: mode})
		if err != nil {
			t.Fatalf("PrepareGrayscale (%s) failed: %v", mode, err)
		}
		for i, b := range buf {
			if b < 250 {
				t.Errorf("%s pixel %d: got %d, want near 255", mode, i, b)
			}
		}
	}
}

func TestPrepareGrayscale_BrightnessAdjustment(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "mid.png", 16, 16, color.Gray{Y: 120})
	cache := NewImageCache()

	plain, err := PrepareGrayscale(cache, path, 8, 8, PrepareOptions{})
	if err != nil {
		t.Fatalf("PrepareGrayscale failed: %v", err)
	}
	brighter, err := PrepareGrayscale(cache, path, 8, 8, PrepareOptions{Brightness: 0.3})
	if err != nil {
		t.Fatalf("PrepareGrayscale with brightness failed: %v", err)
	}

	if meanOf(brighter) <= meanOf(plain) {
		t.Errorf("brightness +0.3: mean %f not above baseline %f", meanOf(brighter), meanOf(plain))
	}
}

func TestPrepareGrayscale_GammaAdjustment(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "mid.png", 16, 16, color.Gray{Y: 100})
	cache := NewImageCache()

	plain, err := PrepareGrayscale(cache, path, 8, 8, PrepareOptions{})
	if err != nil {
		t.Fatalf("PrepareGrayscale failed: %v", err)
	}
	lifted, err := PrepareGrayscale(cache, path, 8, 8, PrepareOptions{Gamma: 2.2})
	if err != nil {
		t.Fatalf("PrepareGrayscale with gamma failed: %v", err)
	}

	// Gamma > 1 lifts midtones.
	if meanOf(lifted) <= meanOf(plain) {
		t.Errorf("gamma 2.2: mean %f not above baseline %f", meanOf(lifted), meanOf(plain))
	}
}

func TestPrepareGrayscale_LabDiffersFromBT601OnColor(t *testing.T) {
	// Saturated blue has low BT.601 luma but a distinct Lab lightness; the
	// two modes must not agree on it.
	path := writeTestPNG(t, t.TempDir(), "blue.png", 16, 16, color.RGBA{0, 0, 255, 255})
	cache := NewImageCache()

	bt, err := PrepareGrayscale(cache, path, 4, 4, PrepareOptions{LuminanceMode: LuminanceBT601})
	if err != nil {
		t.Fatalf("PrepareGrayscale bt601 failed: %v", err)
	}
	lab, err := PrepareGrayscale(cache, path, 4, 4, PrepareOptions{LuminanceMode: LuminanceLab})
	if err != nil {
		t.Fatalf("PrepareGrayscale lab failed: %v", err)
	}

	if bt[0] == lab[0] {
		t.Errorf("bt601 and lab produced the same value %d for saturated blue", bt[0])
	}
}

func TestPrepareGrayscale_Errors(t *testing.T) {
	path := writeGradientPNG(t, t.TempDir(), 16, 16)
	cache := NewImageCache()

	if _, err := PrepareGrayscale(cache, path, 0, 10, PrepareOptions{}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := PrepareGrayscale(cache, path, 10, -1, PrepareOptions{}); err == nil {
		t.Error("expected error for negative height")
	}
	if _, err := PrepareGrayscale(cache, "/nonexistent.png", 10, 10, PrepareOptions{}); err == nil {
		t.Error("expected error for missing file")
	}
}
