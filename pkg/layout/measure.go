package layout

import "unicode/utf8"

// Measurer reports the extents of text rendered at a size, weight and family.
// Implementations must be safe for concurrent use.
type Measurer interface {
	MeasureText(text string, size float64, weight int, family string) (width, height float64)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, size float64, weight int, family string) (float64, float64)

// MeasureText calls f.
func (f MeasurerFunc) MeasureText(text string, size float64, weight int, family string) (float64, float64) {
	return f(text, size, weight, family)
}

// EstimateMeasurer approximates text extents without any font data.
// Each rune is assumed to advance 0.6em, widened slightly for heavier weights.
type EstimateMeasurer struct{}

// MeasureText implements Measurer.
func (EstimateMeasurer) MeasureText(text string, size float64, weight int, _ string) (float64, float64) {
	n := float64(utf8.RuneCountInString(text))
	boldness := 1 + float64(max(weight-WeightRegular, 0))/2000
	return n * size * 0.6 * boldness, size * 1.2
}
