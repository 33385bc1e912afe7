package fonts

import (
	"math"
	"sync"

	"golang.org/x/image/font"
)

type faceKey struct {
	cut  Cut
	size float64
}

// Measurer measures text with the embedded fonts. It satisfies
// layout.Measurer and is safe for concurrent use. The family argument is
// ignored since only the Go fonts are embedded.
type Measurer struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewMeasurer returns an empty Measurer. Faces are created on first use.
func NewMeasurer() *Measurer {
	return &Measurer{faces: make(map[faceKey]font.Face)}
}

// MeasureText returns the advance width and the ascent plus descent of text.
func (m *Measurer) MeasureText(text string, size float64, weight int, _ string) (width, height float64) {
	if size <= 0 {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(CutFor(weight), size)
	if err != nil {
		// Unreachable with the embedded fonts.
		return float64(len([]rune(text))) * size * 0.6, size * 1.2
	}
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	return float64(adv) / 64, float64(metrics.Ascent+metrics.Descent) / 64
}

// Close releases cached faces.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		f.Close()
		delete(m.faces, k)
	}
	return nil
}

func (m *Measurer) face(c Cut, size float64) (font.Face, error) {
	// Quarter-pixel buckets keep the cache small for continuous sizes.
	key := faceKey{cut: c, size: math.Round(size*4) / 4}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	weight := 400
	switch c {
	case Medium:
		weight = 500
	case Bold:
		weight = 700
	}
	f, err := Face(weight, key.size)
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}
