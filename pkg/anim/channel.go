package anim

import "time"

// Channel identifies one animated property of a word.
type Channel int

const (
	DriftX Channel = iota
	DriftY
	Glow
	Alpha

	numChannels
)

// Channels lists every channel in order.
var Channels = [numChannels]Channel{DriftX, DriftY, Glow, Alpha}

func (c Channel) String() string {
	switch c {
	case DriftX:
		return "drift_x"
	case DriftY:
		return "drift_y"
	case Glow:
		return "glow"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// Tuning describes the value range and timing of a channel.
type Tuning struct {
	Min, Max float64
	Base     time.Duration // Minimum segment duration
	Jitter   time.Duration // Random extra duration in [0, Jitter)
	Ease     EaseFunc
}

// Contains reports whether v lies in the channel range.
func (s Tuning) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// DefaultTunings are the channel settings of the cloud.
// Drift is in canvas units, glow and alpha are fractions.
var DefaultTunings = [numChannels]Tuning{
	DriftX: {Min: -1.5, Max: 1.5, Base: 2 * time.Second, Jitter: 500 * time.Millisecond, Ease: EaseInOutQuad},
	DriftY: {Min: -1.5, Max: 1.5, Base: 2 * time.Second, Jitter: 500 * time.Millisecond, Ease: EaseInOutQuad},
	Glow:   {Min: 0.3, Max: 0.8, Base: 2500 * time.Millisecond, Jitter: 500 * time.Millisecond, Ease: EaseInOutSine},
	Alpha:  {Min: 0.85, Max: 1.0, Base: 2 * time.Second, Jitter: 500 * time.Millisecond, Ease: EaseInOutQuad},
}
