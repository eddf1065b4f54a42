package field

import "gonum.org/v1/gonum/floats"

// renormEpsilon is the span below which a smoothed field counts as flat and
// is clamped rather than rescaled.
const renormEpsilon = 1e-6

// RenormalizeThickness rescales a smoothed height field in place so its
// minimum lands exactly on firstLayerMM and its maximum exactly on
// thicknessMM, undoing whatever range compression the smoothing pass caused.
//
// If the field is degenerate (current span <= 1e-6 mm) a linear rescale
// would blow up, so every sample is instead clamped into
// [firstLayerMM, thicknessMM] unchanged otherwise.
func RenormalizeThickness(f *Field, firstLayerMM, thicknessMM float64) {
	currentMin, currentMax := f.MinMax()
	span := currentMax - currentMin
	if span > renormEpsilon {
		scale := (thicknessMM - firstLayerMM) / span
		floats.AddConst(-currentMin, f.Samples)
		floats.Scale(scale, f.Samples)
		floats.AddConst(firstLayerMM, f.Samples)
		return
	}
	for i, v := range f.Samples {
		f.Samples[i] = clampf(v, firstLayerMM, thicknessMM)
	}
}
