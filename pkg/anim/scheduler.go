package anim

import (
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Frame holds the animated values of one word at one instant.
type Frame struct {
	DriftX float64 `json:"drift_x"`
	DriftY float64 `json:"drift_y"`
	Glow   float64 `json:"glow"`
	Alpha  float64 `json:"alpha"`
}

// Get returns the value of channel c.
func (f Frame) Get(c Channel) float64 {
	switch c {
	case DriftX:
		return f.DriftX
	case DriftY:
		return f.DriftY
	case Glow:
		return f.Glow
	default:
		return f.Alpha
	}
}

func (f *Frame) set(c Channel, v float64) {
	switch c {
	case DriftX:
		f.DriftX = v
	case DriftY:
		f.DriftY = v
	case Glow:
		f.Glow = v
	default:
		f.Alpha = v
	}
}

type track struct {
	seg Segment
	rng *rand.Rand
}

type wordState struct {
	tracks [numChannels]track
	frame  Frame
}

// Scheduler owns the animation state of one placement generation.
type Scheduler struct {
	seed    uint64
	tunings [numChannels]Tuning

	generation uint64
	order      []string
	states     map[string]*wordState
	last       time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTuning overrides the settings of one channel.
func WithTuning(c Channel, s Tuning) Option {
	return func(sc *Scheduler) {
		if s.Ease == nil {
			s.Ease = EaseInOutQuad
		}
		sc.tunings[c] = s
	}
}

// NewScheduler returns an empty scheduler. A zero seed draws one from the
// clock, so trajectories differ between runs.
func NewScheduler(seed uint64, opts ...Option) *Scheduler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Scheduler{
		seed:    seed,
		tunings: DefaultTunings,
		states:  make(map[string]*wordState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tuning returns the settings of channel c.
func (s *Scheduler) Tuning(c Channel) Tuning { return s.tunings[c] }

// Generation returns the layout generation the state belongs to.
func (s *Scheduler) Generation() uint64 { return s.generation }

// Len returns the number of animated words.
func (s *Scheduler) Len() int { return len(s.order) }

// Labels returns the animated labels in placement order.
func (s *Scheduler) Labels() []string { return slices.Clone(s.order) }

// OnNewPlacement discards all state and seeds fresh state for every glyph of
// gen. Segments start on the next Tick. A nil gen clears the scheduler.
func (s *Scheduler) OnNewPlacement(gen *layout.Generation) {
	s.states = make(map[string]*wordState)
	s.order = s.order[:0]
	if gen == nil {
		s.generation = 0
		return
	}
	s.generation = gen.ID
	for _, g := range gen.Glyphs {
		if _, ok := s.states[g.Label]; ok {
			continue
		}
		s.states[g.Label] = s.seedWord(g.Label)
		s.order = append(s.order, g.Label)
	}
}

func (s *Scheduler) seedWord(label string) *wordState {
	h := fnv.New64a()
	h.Write([]byte(label))
	lh := h.Sum64()

	st := &wordState{}
	for _, c := range Channels {
		tn := s.tunings[c]
		rng := rand.New(rand.NewPCG(s.seed^lh, lh+s.generation*0x9e3779b97f4a7c15+uint64(c)+1))
		from := uniform(rng, tn)
		st.tracks[c] = track{
			rng: rng,
			seg: Segment{From: from, To: uniform(rng, tn), Duration: duration(rng, tn)},
		}
		st.frame.set(c, from)
	}
	return st
}

// Tick advances every channel to now and returns the current frame of every
// word. A now earlier than the previous tick is treated as the previous tick.
func (s *Scheduler) Tick(now time.Time) map[string]Frame {
	if now.Before(s.last) {
		now = s.last
	}
	s.last = now

	out := make(map[string]Frame, len(s.states))
	for label, st := range s.states {
		for _, c := range Channels {
			st.frame.set(c, s.advance(&st.tracks[c], s.tunings[c], now))
		}
		out[label] = st.frame
	}
	return out
}

// advance retires a completed segment and returns the value at now. The
// replacement starts at now from the retired segment's target, so a late or
// paused frame never replays the segments it missed.
func (s *Scheduler) advance(t *track, tn Tuning, now time.Time) float64 {
	if t.seg.Start.IsZero() {
		t.seg.Start = now
	}
	if t.seg.Done(now) {
		t.seg = Segment{
			From:     t.seg.To,
			To:       uniform(t.rng, tn),
			Duration: duration(t.rng, tn),
			Start:    now,
		}
	}
	return max(tn.Min, min(t.seg.Value(now, tn.Ease), tn.Max))
}

// Value returns the value of channel c for label as of the last Tick.
func (s *Scheduler) Value(label string, c Channel) (float64, bool) {
	st, ok := s.states[label]
	if !ok {
		return 0, false
	}
	return st.frame.Get(c), true
}

// Frame returns the frame of label as of the last Tick.
func (s *Scheduler) Frame(label string) (Frame, bool) {
	st, ok := s.states[label]
	if !ok {
		return Frame{}, false
	}
	return st.frame, true
}

// Segment returns the active segment of channel c for label.
func (s *Scheduler) Segment(label string, c Channel) (Segment, bool) {
	st, ok := s.states[label]
	if !ok {
		return Segment{}, false
	}
	return st.tracks[c].seg, true
}

func uniform(rng *rand.Rand, tn Tuning) float64 {
	return tn.Min + rng.Float64()*(tn.Max-tn.Min)
}

func duration(rng *rand.Rand, tn Tuning) time.Duration {
	d := tn.Base
	if tn.Jitter > 0 {
		d += time.Duration(rng.Int64N(int64(tn.Jitter)))
	}
	return max(d, time.Millisecond)
}
