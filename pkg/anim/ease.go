package anim

import "math"

// EaseFunc maps progress in [0, 1] to eased progress in [0, 1].
type EaseFunc func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return clamp01(t) }

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseInOutSine follows half a cosine period.
func EaseInOutSine(t float64) float64 {
	t = clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

func clamp01(t float64) float64 {
	return max(0, min(t, 1))
}
