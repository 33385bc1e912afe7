// Package pipeline renders word clouds in one shot: words -> layout -> artifacts.
//
// This package is shared by the CLI render command and the HTTP API so both
// produce identical output for identical options.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Parse: read a word list (JSON pairs or plain "label weight" lines)
//  2. Layout: place the visible words with [layout.Engine]
//  3. Render: produce SVG, PNG or JSON artifacts with the render sinks
//
// # Usage
//
//	runner := pipeline.NewRunner(store, logger)
//	result, err := runner.Execute(ctx, entries, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Seed:    42,
//	})
//	svg := result.Artifacts["svg"]
//
// # Caching
//
// With a fixed seed, layouts are deterministic, so the runner caches
// artifacts in its [kv.Store] under a hash of the entries and options. Runs
// without a seed are never cached.
//
// [layout.Engine]: github.com/matzehuels/wordcloud/pkg/layout.Engine
// [kv.Store]: github.com/matzehuels/wordcloud/pkg/kv.Store
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// DefaultCacheTTL is how long rendered artifacts stay cached.
	DefaultCacheTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	MaxSteps   int     `json:"max_steps,omitempty"`
	Rotation   string  `json:"rotation,omitempty"` // random, none, 90
	Seed       uint64  `json:"seed,omitempty"`     // 0 = fresh layout every run

	// Render options
	Formats   []string `json:"formats,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // Bypass the artifact cache

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Generation is the computed layout.
	Generation *layout.Generation

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the artifacts came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Words      int
	Placed     int
	Unplaced   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := layout.ParseRotation(o.Rotation); err != nil {
		return err
	}
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts to layout engine options.
func (o *Options) LayoutOptions() (layout.Options, error) {
	rot, err := layout.ParseRotation(o.Rotation)
	if err != nil {
		return layout.Options{}, err
	}
	return layout.Options{
		Width:      o.Width,
		Height:     o.Height,
		FontFamily: o.FontFamily,
		Padding:    o.Padding,
		MaxSteps:   o.MaxSteps,
		Rotation:   rot,
		Seed:       o.Seed,
		Measurer:   o.Measurer,
	}, nil
}

// Cacheable reports whether results for these options are reproducible.
func (o *Options) Cacheable() bool {
	return o.Seed != 0 && !o.Refresh
}

// cacheKeyParts lists every option that changes the output.
func (o *Options) cacheKeyParts(format string) []any {
	return []any{format, o.Width, o.Height, o.FontFamily, o.Padding, o.MaxSteps, o.Rotation, o.Seed, o.EmbedFont, o.Scale}
}

func (o *Options) String() string {
	return fmt.Sprintf("%gx%g seed=%d formats=%v", o.Width, o.Height, o.Seed, o.Formats)
}
