// Package fonts provides the embedded Go fonts used for measuring and
// rasterising words.
//
// Three cuts are available, matched to the layout font weight buckets:
// regular (400), medium (500) and bold (700 and above). The TTF data comes
// from golang.org/x/image/font/gofont, so the binary needs no font files.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists CSS fallbacks for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Inter', 'Helvetica Neue', Arial, sans-serif`

// Cut identifies one of the embedded font files.
type Cut int

const (
	Regular Cut = iota
	Medium
	Bold
)

// CutFor returns the cut used for a CSS font weight.
func CutFor(weight int) Cut {
	switch {
	case weight >= 700:
		return Bold
	case weight >= 500:
		return Medium
	default:
		return Regular
	}
}

// TTF returns the font data for c.
func TTF(c Cut) []byte {
	switch c {
	case Bold:
		return gobold.TTF
	case Medium:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}

var (
	parsed   [3]*opentype.Font
	parseErr [3]error
	parseMu  sync.Mutex
)

// Parsed returns the parsed font for c. Parsing happens once per cut.
func Parsed(c Cut) (*opentype.Font, error) {
	parseMu.Lock()
	defer parseMu.Unlock()
	if parsed[c] == nil && parseErr[c] == nil {
		parsed[c], parseErr[c] = opentype.Parse(TTF(c))
	}
	return parsed[c], parseErr[c]
}

// Face returns a new face for a CSS font weight at size pixels.
// Faces are not safe for concurrent use.
func Face(weight int, size float64) (font.Face, error) {
	f, err := Parsed(CutFor(weight))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

var (
	regularBase64     string
	regularBase64Once sync.Once
)

// RegularBase64 returns the regular TTF as a base64 string for embedding in
// SVG @font-face rules. The result is cached after first computation.
func RegularBase64() string {
	regularBase64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return regularBase64
}
