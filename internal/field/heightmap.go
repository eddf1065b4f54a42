package field

import "math"

// DefaultNumberOfLayers is the discrete-layer fallback used when a caller
// does not specify a layer count. Ten steps across a typical 2 mm lithophane
// approximates 0.2 mm printer layers.
const DefaultNumberOfLayers = 10

// HeightParams configures the brightness-to-height mapping.
type HeightParams struct {
	// FirstLayerMM is the minimum solid thickness in millimeters. The
	// brightest regions of the image end up at exactly this height.
	FirstLayerMM float64

	// ThicknessMM is the total model thickness in millimeters. The darkest
	// regions end up at exactly this height.
	ThicknessMM float64

	// NumberOfLayers is the total discrete layer count, including the first
	// layer. Values below 1 select DefaultNumberOfLayers.
	NumberOfLayers int

	// Negative swaps which brightness extreme receives minimum thickness:
	// when set, dark prints thin and bright prints thick.
	Negative bool
}

// MapHeights quantizes an enhanced brightness field into a height field in
// millimeters using the discrete-layer policy.
//
// minBrightness and maxBrightness are the global statistics of the
// *original* (pre-enhancement) brightness field; normalizing against them
// keeps the full thickness range in use even for low-contrast sources.
//
// Each sample is normalized so the brightest pixel maps to 0 and the darkest
// to 1 (thin where light shines through easily), optionally inverted once by
// Negative, then snapped to one of the discrete layer heights:
//
//	firstLayer, firstLayer + inc, ..., firstLayer + n*inc == thickness
//
// where n = max(1, NumberOfLayers-1) and inc = (thickness-firstLayer)/n.
//
// A degenerate source (maxBrightness == minBrightness) cannot be normalized
// relatively; the raw brightness value itself is used instead, so an
// all-black image produces a uniform first-layer sheet and an all-white
// image a uniform full-thickness slab, and no NaN ever propagates.
func MapHeights(enhanced *Field, minBrightness, maxBrightness float64, p HeightParams) *Field {
	layers := p.NumberOfLayers
	if layers < 1 {
		layers = DefaultNumberOfLayers
	}
	discrete := layers - 1
	if discrete < 1 {
		discrete = 1
	}
	increment := (p.ThicknessMM - p.FirstLayerMM) / float64(discrete)

	out := &Field{W: enhanced.W, H: enhanced.H, Samples: make([]float64, enhanced.W*enhanced.H)}
	for i := range out.Samples {
		if i >= len(enhanced.Samples) {
			out.Samples[i] = p.FirstLayerMM
			continue
		}
		normalized := normalize(enhanced.Samples[i], minBrightness, maxBrightness, p.Negative)
		layerIndex := clampi(int(math.Floor(normalized*float64(discrete+1))), 0, discrete)
		out.Samples[i] = p.FirstLayerMM + float64(layerIndex)*increment
	}
	return out
}

// MapHeightsContinuous is the unquantized fallback mapping, retained for
// callers that want a smooth relief rather than printer-layer steps:
//
//	height = firstLayer + normalized * (thickness - firstLayer)
//
// Normalization and the Negative flag behave exactly as in MapHeights.
func MapHeightsContinuous(enhanced *Field, minBrightness, maxBrightness float64, p HeightParams) *Field {
	span := p.ThicknessMM - p.FirstLayerMM
	out := &Field{W: enhanced.W, H: enhanced.H, Samples: make([]float64, enhanced.W*enhanced.H)}
	for i := range out.Samples {
		if i >= len(enhanced.Samples) {
			out.Samples[i] = p.FirstLayerMM
			continue
		}
		normalized := normalize(enhanced.Samples[i], minBrightness, maxBrightness, p.Negative)
		out.Samples[i] = p.FirstLayerMM + normalized*span
	}
	return out
}

// normalize maps a brightness sample to [0,1] with 0 = brightest and
// 1 = darkest, relative to the field's global range. The negative flag
// applies a single additional inversion. Degenerate ranges fall back to the
// raw sample value (see MapHeights).
func normalize(brightness, min, max float64, negative bool) float64 {
	var n float64
	if max > min {
		n = 1 - (brightness-min)/(max-min)
	} else {
		n = clampf(brightness, 0, 1)
	}
	if negative {
		n = 1 - n
	}
	return n
}
