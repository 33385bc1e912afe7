package layout

import (
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Rotation selects how glyph rotations are chosen.
type Rotation int

const (
	// RotateRandom picks 0 or 90 degrees per word with equal probability.
	RotateRandom Rotation = iota
	// RotateNone keeps every word horizontal.
	RotateNone
	// Rotate90 turns every word by 90 degrees.
	Rotate90
)

// String returns the config name of r.
func (r Rotation) String() string {
	switch r {
	case RotateNone:
		return "none"
	case Rotate90:
		return "90"
	default:
		return "random"
	}
}

// ParseRotation parses a rotation policy name ("random", "none", "90").
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random", "mixed":
		return RotateRandom, nil
	case "none", "0", "horizontal":
		return RotateNone, nil
	case "90", "vertical":
		return Rotate90, nil
	default:
		return RotateRandom, errors.New(errors.ErrCodeInvalidInput, "unknown rotation %q (want random, none or 90)", s)
	}
}

// Default option values.
const (
	DefaultWidth      = 900.0
	DefaultHeight     = 600.0
	DefaultFontFamily = "Inter, sans-serif"
	DefaultPadding    = 5.0
	DefaultSpiralStep = 0.1
	DefaultMaxSteps   = 4000
)

// Options configures an Engine.
type Options struct {
	Width, Height float64 // Canvas size in pixels (default 900x600)
	FontFamily    string  // Passed through to the Measurer and into glyphs

	// Padding is the minimum gap between glyphs and to the canvas edge
	// (default 5; negative means no padding).
	Padding float64

	// SpiralStep is the angular step between spiral samples in radians.
	SpiralStep float64

	// SpiralGrowth is the radius gained per radian. Zero derives it from the
	// canvas so that MaxSteps samples reach the corners.
	SpiralGrowth float64

	// MaxSteps bounds the spiral search per word.
	MaxSteps int

	Rotation Rotation

	// Seed drives rotation choices. Zero draws a fresh seed per layout.
	Seed uint64

	// Measurer defaults to EstimateMeasurer.
	Measurer Measurer
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.SpiralStep == 0 {
		o.SpiralStep = DefaultSpiralStep
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Measurer == nil {
		o.Measurer = EstimateMeasurer{}
	}
}

// Validate checks option ranges. Call after SetDefaults.
func (o *Options) Validate() error {
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if o.SpiralStep <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spiral step must be positive, got %g", o.SpiralStep)
	}
	if o.SpiralGrowth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "spiral growth must not be negative, got %g", o.SpiralGrowth)
	}
	if o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max steps must not be negative, got %d", o.MaxSteps)
	}
	if o.Rotation < RotateRandom || o.Rotation > Rotate90 {
		return errors.New(errors.ErrCodeInvalidInput, "unknown rotation policy %d", o.Rotation)
	}
	return nil
}
