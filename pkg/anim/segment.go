package anim

import "time"

// Segment is one timed transition of a channel.
type Segment struct {
	From, To float64
	Duration time.Duration
	Start    time.Time // Zero until the first tick
}

// Progress returns the linear progress at now, clamped to [0, 1].
func (s Segment) Progress(now time.Time) float64 {
	if s.Duration <= 0 || s.Start.IsZero() {
		return 0
	}
	return clamp01(float64(now.Sub(s.Start)) / float64(s.Duration))
}

// Value returns the eased value at now.
func (s Segment) Value(now time.Time, ease EaseFunc) float64 {
	return s.From + (s.To-s.From)*ease(s.Progress(now))
}

// Done reports whether the segment has completed at now.
func (s Segment) Done(now time.Time) bool {
	return !s.Start.IsZero() && !now.Before(s.Start.Add(s.Duration))
}
