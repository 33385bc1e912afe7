package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Alpha", false},
		{"valid accented", "Persistência", false},
		{"valid with space", "Bom dia", false},
		{"valid max length", strings.Repeat("a", MaxLabelLength), false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", MaxLabelLength+1), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
		{"invalid utf8", "foo\xffbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCommand) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidCommand)
			}
		})
	}
}

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"default", 900, 600, false},
		{"small", 1, 1, false},
		{"zero width", 0, 600, true},
		{"negative height", 900, -1, true},
		{"too large", 20000, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}
