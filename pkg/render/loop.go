package render

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/anim"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// Stats describes the loop state.
type Stats struct {
	Frames     uint64 // Frames painted since creation
	Generation uint64 // Generation shown by the last frame
	Published  uint64 // Newest published generation
	Words      int    // Glyphs in the shown generation
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock sets the frame clock (default SystemClock).
func WithClock(c Clock) LoopOption { return func(l *Loop) { l.clock = c } }

// WithTheme sets the colors (default DefaultTheme).
func WithTheme(t Theme) LoopOption { return func(l *Loop) { l.theme = t } }

// WithGlowScale sets the glow multiplier (default DefaultGlowScale).
func WithGlowScale(s float64) LoopOption { return func(l *Loop) { l.glowScale = s } }

// WithScheduler replaces the animation scheduler.
func WithScheduler(s *anim.Scheduler) LoopOption { return func(l *Loop) { l.sched = s } }

// WithLogger sets the logger used by Run.
func WithLogger(lg *log.Logger) LoopOption { return func(l *Loop) { l.logger = lg } }

// Loop paints the current generation with its animation. Publish may be
// called from any goroutine; frames are serialized internally so the
// scheduler only ever has one user at a time.
type Loop struct {
	painter   Painter
	clock     Clock
	theme     Theme
	glowScale float64
	logger    *log.Logger

	current atomic.Pointer[layout.Generation]
	frames  atomic.Uint64

	mu    sync.Mutex // guards everything below
	sched *anim.Scheduler
	shown *layout.Generation
}

// NewLoop returns a loop painting to p. A nil p paints nothing, which is
// useful when frames are only sampled with PaintTo.
func NewLoop(p Painter, opts ...LoopOption) *Loop {
	l := &Loop{
		painter:   p,
		clock:     SystemClock{},
		theme:     DefaultTheme,
		glowScale: DefaultGlowScale,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sched == nil {
		l.sched = anim.NewScheduler(0)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Publish makes gen the current generation unless a newer one is already
// current. It reports whether gen was accepted.
func (l *Loop) Publish(gen *layout.Generation) bool {
	if gen == nil {
		return false
	}
	for {
		cur := l.current.Load()
		if !gen.Newer(cur) {
			return false
		}
		if l.current.CompareAndSwap(cur, gen) {
			return true
		}
	}
}

// Current returns the newest published generation, or nil.
func (l *Loop) Current() *layout.Generation {
	return l.current.Load()
}

// Clock returns the loop clock.
func (l *Loop) Clock() Clock { return l.clock }

// Frame paints one frame at now to the loop painter.
func (l *Loop) Frame(now time.Time) error {
	if l.painter == nil {
		_, _ = l.Sample(now)
		return nil
	}
	return l.PaintTo(now, l.painter)
}

// PaintTo paints one frame at now to p.
func (l *Loop) PaintTo(now time.Time, p Painter) error {
	gen, ops := l.Sample(now)
	w, h := layout.DefaultWidth, layout.DefaultHeight
	if gen != nil {
		w, h = gen.Width, gen.Height
	}
	return Paint(p, w, h, ops)
}

// Sample advances the animation to now and returns the generation shown and
// its paint operations.
func (l *Loop) Sample(now time.Time) (*layout.Generation, []PaintOp) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen := l.current.Load(); gen != l.shown {
		l.sched.OnNewPlacement(gen)
		l.shown = gen
	}
	frames := l.sched.Tick(now)
	l.frames.Add(1)
	return l.shown, Ops(l.shown, frames, l.theme, l.glowScale)
}

// Run paints frames at fps until ctx is done.
func (l *Loop) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Frame(l.clock.Now()); err != nil {
				l.logger.Warn("frame failed", "err", err)
			}
		}
	}
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := Stats{Frames: l.frames.Load()}
	if l.shown != nil {
		s.Generation = l.shown.ID
		s.Words = len(l.shown.Glyphs)
	}
	if cur := l.current.Load(); cur != nil {
		s.Published = cur.ID
	}
	return s
}
