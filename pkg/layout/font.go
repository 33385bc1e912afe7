package layout

import "math"

// Font size curve: size = min(BaseFontSize + log2(weight)*FontGrowth, MaxFontSize).
const (
	BaseFontSize = 14.0
	FontGrowth   = 18.0
	MaxFontSize  = 120.0
)

// Font weight buckets.
const (
	WeightRegular = 400
	WeightMedium  = 500
	WeightBold    = 700
	WeightHeavy   = 800
	WeightBlack   = 900
)

// FontSize maps a word weight to a font size in pixels.
// Weights below 1 are treated as 1.
func FontSize(weight int) float64 {
	w := max(weight, 1)
	return math.Min(BaseFontSize+math.Log2(float64(w))*FontGrowth, MaxFontSize)
}

// FontWeightFor maps a font size to its font weight bucket.
func FontWeightFor(size float64) int {
	switch {
	case size > 100:
		return WeightBlack
	case size > 70:
		return WeightHeavy
	case size > 50:
		return WeightBold
	case size > 30:
		return WeightMedium
	default:
		return WeightRegular
	}
}
