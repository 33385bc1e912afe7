package layout

// Box is an axis-aligned rectangle. Y grows downwards, so Top <= Bottom.
type Box struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// BoxAt returns the box of size w x h centered on (cx, cy).
func BoxAt(cx, cy, w, h float64) Box {
	return Box{Left: cx - w/2, Right: cx + w/2, Top: cy - h/2, Bottom: cy + h/2}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Expand grows the box by d on every side.
func (b Box) Expand(d float64) Box {
	return Box{Left: b.Left - d, Right: b.Right + d, Top: b.Top - d, Bottom: b.Bottom + d}
}

// Intersects reports whether the interiors of b and o overlap.
// Boxes that only share an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.Left < o.Right && o.Left < b.Right && b.Top < o.Bottom && o.Top < b.Bottom
}

// Within reports whether b lies entirely inside o.
func (b Box) Within(o Box) bool {
	return b.Left >= o.Left && b.Right <= o.Right && b.Top >= o.Top && b.Bottom <= o.Bottom
}

// Translate moves the box by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{Left: b.Left + dx, Right: b.Right + dx, Top: b.Top + dy, Bottom: b.Bottom + dy}
}
