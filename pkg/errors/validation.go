package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength is the longest label, in runes, accepted by commands.
const MaxLabelLength = 64

// ValidateLabel validates a word label received from a command surface.
//
// The rules are intentionally shape-only:
//   - No empty or whitespace-only labels
//   - No control characters (newlines break the terminal sink and SVG text)
//   - Maximum length of MaxLabelLength runes
//   - Valid UTF-8
//
// Labels are case-sensitive and are not normalised.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidCommand, "label cannot be empty")
	}

	if !utf8.ValidString(label) {
		return New(ErrCodeInvalidCommand, "label is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return New(ErrCodeInvalidCommand, "label too long (%d runes, max %d)", n, MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCommand, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateCanvas checks that canvas dimensions are usable for layout.
func ValidateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas must have positive size, got %gx%g", width, height)
	}
	const maxSide = 16384
	if width > maxSide || height > maxSide {
		return New(ErrCodeInvalidInput, "canvas too large (max %dx%d)", maxSide, maxSide)
	}
	return nil
}
