package lithophane

import (
	"fmt"

	"github.com/ironsheep/lithophane-mcp/internal/field"
	"github.com/ironsheep/lithophane-mcp/internal/imaging"
)

// Smoothing method names accepted in Settings.
const (
	SmoothingNone      = "none"
	SmoothingGeometric = "geometric"
	SmoothingLaplacian = "laplacian"
)

// SmoothingSettings selects and tunes the surface smoothing stage.
type SmoothingSettings struct {
	// Method is one of "none", "geometric", "laplacian". Empty selects
	// "geometric", the production default.
	Method string `json:"method"`

	// Strength applies to the laplacian method only; 0.01-1.0, with 0
	// selecting the default (0.1).
	Strength float64 `json:"strength"`

	// Passes is the iteration count; 0 selects the method's default.
	Passes int `json:"passes"`
}

// Settings describes one lithophane generation request.
type Settings struct {
	// WidthMM and HeightMM are the physical size of the relief, 1-1000 mm.
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`

	// ThicknessMM is the total model thickness, 0.1-10 mm.
	ThicknessMM float64 `json:"thickness_mm"`

	// FirstLayerMM is the minimum solid thickness, 0.1-5 mm, and must be
	// less than ThicknessMM.
	FirstLayerMM float64 `json:"first_layer_mm"`

	// ResolutionMultiplier sets grid samples per millimeter, 1-10. Memory
	// grows with its square; 10 on a large model is already hundreds of
	// megabytes of field data.
	ResolutionMultiplier int `json:"resolution_multiplier"`

	// NumberOfLayers is the discrete layer count including the first
	// layer; 0 selects the default (10).
	NumberOfLayers int `json:"number_of_layers"`

	// Negative swaps which brightness extreme prints thin.
	Negative bool `json:"negative"`

	// FrameEnabled adds a raised border of FrameWidthMM around the relief.
	FrameEnabled bool    `json:"frame_enabled"`
	FrameWidthMM float64 `json:"frame_width_mm"`

	Smoothing SmoothingSettings `json:"smoothing"`

	// Orientation is descriptive metadata carried through to the caller
	// (e.g. "portrait", "landscape"); it does not alter geometry.
	Orientation string `json:"orientation"`

	// Brightness and Contrast pre-adjust the source image, -100 to 100,
	// 0 = unchanged. Gamma must be > 0, 1 = unchanged (0 selects 1).
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Gamma      float64 `json:"gamma"`

	// LuminanceMode selects grayscale weighting: "bt601" (default) or
	// "lab".
	LuminanceMode string `json:"luminance_mode"`
}

// withDefaults returns a copy of s with unset optional fields moved to
// their fallback values. Range validation happens separately in Validate.
func (s Settings) withDefaults() Settings {
	if s.ResolutionMultiplier < 1 {
		s.ResolutionMultiplier = 1
	}
	if s.NumberOfLayers < 1 {
		s.NumberOfLayers = field.DefaultNumberOfLayers
	}
	if s.Smoothing.Method == "" {
		s.Smoothing.Method = SmoothingGeometric
	}
	if s.Gamma == 0 {
		s.Gamma = 1
	}
	if s.LuminanceMode == "" {
		s.LuminanceMode = imaging.LuminanceBT601
	}
	return s
}

// Validate checks every field against its documented range. The server
// calls this before running the pipeline so that a malformed request fails
// with a clear message instead of odd geometry.
func (s Settings) Validate() error {
	if s.WidthMM < 1 || s.WidthMM > 1000 {
		return fmt.Errorf("width_mm %.2f out of range 1-1000", s.WidthMM)
	}
	if s.HeightMM < 1 || s.HeightMM > 1000 {
		return fmt.Errorf("height_mm %.2f out of range 1-1000", s.HeightMM)
	}
	if s.ThicknessMM < 0.1 || s.ThicknessMM > 10 {
		return fmt.Errorf("thickness_mm %.2f out of range 0.1-10", s.ThicknessMM)
	}
	if s.FirstLayerMM < 0.1 || s.FirstLayerMM > 5 {
		return fmt.Errorf("first_layer_mm %.2f out of range 0.1-5", s.FirstLayerMM)
	}
	if s.FirstLayerMM >= s.ThicknessMM {
		return fmt.Errorf("first_layer_mm %.2f must be less than thickness_mm %.2f", s.FirstLayerMM, s.ThicknessMM)
	}
	if s.ResolutionMultiplier < 1 || s.ResolutionMultiplier > 10 {
		return fmt.Errorf("resolution_multiplier %d out of range 1-10", s.ResolutionMultiplier)
	}
	if s.FrameEnabled && s.FrameWidthMM <= 0 {
		return fmt.Errorf("frame_width_mm must be positive when the frame is enabled")
	}
	switch s.Smoothing.Method {
	case SmoothingNone, SmoothingGeometric:
	case SmoothingLaplacian:
		if s.Smoothing.Strength != 0 && (s.Smoothing.Strength < 0.01 || s.Smoothing.Strength > 1.0) {
			return fmt.Errorf("smoothing strength %.3f out of range 0.01-1.0", s.Smoothing.Strength)
		}
	default:
		return fmt.Errorf("unknown smoothing method %q", s.Smoothing.Method)
	}
	if s.Smoothing.Passes < 0 {
		return fmt.Errorf("smoothing passes must not be negative")
	}
	switch s.LuminanceMode {
	case imaging.LuminanceBT601, imaging.LuminanceLab:
	default:
		return fmt.Errorf("unknown luminance_mode %q", s.LuminanceMode)
	}
	if s.Brightness < -100 || s.Brightness > 100 {
		return fmt.Errorf("brightness %.1f out of range -100..100", s.Brightness)
	}
	if s.Contrast < -100 || s.Contrast > 100 {
		return fmt.Errorf("contrast %.1f out of range -100..100", s.Contrast)
	}
	if s.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive")
	}
	return nil
}

// smoother maps the smoothing settings to their handler. Settings must have
// passed Validate.
func (s Settings) smoother() field.Smoother {
	switch s.Smoothing.Method {
	case SmoothingLaplacian:
		return field.LaplacianSmoother{Strength: s.Smoothing.Strength, Passes: s.Smoothing.Passes}
	case SmoothingNone:
		return field.NoSmoothing{}
	default:
		return field.GeometricSmoother{Passes: s.Smoothing.Passes}
	}
}

// prepareOptions maps the image-adjustment settings onto the imaging
// collaborator's options.
func (s Settings) prepareOptions() imaging.PrepareOptions {
	return imaging.PrepareOptions{
		Brightness:    s.Brightness / 100,
		Contrast:      s.Contrast / 100,
		Gamma:         s.Gamma,
		LuminanceMode: s.LuminanceMode,
	}
}
