package pesto

import "math"

// minLetterboxScale keeps the transform finite and invertible when the
// window reports degenerate (zero or negative) dimensions, e.g. while
// minimized.
const minLetterboxScale = 1e-6

// Transform maps virtual-surface coordinates onto the real window: the
// surface is scaled uniformly by Scale and its top-left corner lands at
// (OffsetX, OffsetY), centering it with solid bars on the short axis.
// Recomputed every frame from the current window size.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Letterbox computes the transform that fits a virtualW x virtualH
// surface inside a windowW x windowH window without distortion.
func Letterbox(windowW, windowH, virtualW, virtualH float64) Transform {
	scale := math.Min(windowW/virtualW, windowH/virtualH)
	// The comparison is written so NaN also falls through to the clamp.
	if !(scale > minLetterboxScale) {
		scale = minLetterboxScale
	}
	return Transform{
		Scale:   scale,
		OffsetX: (windowW - virtualW*scale) / 2,
		OffsetY: (windowH - virtualH*scale) / 2,
	}
}

// ToVirtual maps a point in real window coordinates (e.g. the pointer
// position) into virtual-surface coordinates.
func (t Transform) ToVirtual(x, y float64) (float64, float64) {
	return (x - t.OffsetX) / t.Scale, (y - t.OffsetY) / t.Scale
}

// ToWindow maps a point in virtual-surface coordinates back into real
// window coordinates. Inverse of ToVirtual.
func (t Transform) ToWindow(x, y float64) (float64, float64) {
	return x*t.Scale + t.OffsetX, y*t.Scale + t.OffsetY
}
