package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetStoreHooks(h)
	SetCommandHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, gen uint64, words int) {
	h.Logger.Debug("layout start", "generation", gen, "words", words)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, gen uint64, placed, unplaced int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "generation", gen, "err", err)
		return
	}
	h.Logger.Debug("layout done", "generation", gen, "placed", placed, "unplaced", unplaced,
		"elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnLayoutDiscarded(_ context.Context, gen, current uint64) {
	h.Logger.Debug("layout discarded", "generation", gen, "current", current)
}

func (h *LogHooks) OnLoad(_ context.Context, source string, entries int) {
	h.Logger.Debug("words loaded", "source", source, "entries", entries)
}

func (h *LogHooks) OnCorrupt(_ context.Context, key string, err error) {
	h.Logger.Warn("stored words corrupt", "key", key, "err", err)
}

func (h *LogHooks) OnSave(_ context.Context, key string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("save failed", "key", key, "err", err)
		return
	}
	h.Logger.Debug("words saved", "key", key, "bytes", size, "elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCommand(_ context.Context, name, label string, err error) {
	if err != nil {
		h.Logger.Debug("command", "name", name, "label", label, "err", err)
		return
	}
	h.Logger.Debug("command", "name", name, "label", label)
}

var (
	_ LayoutHooks  = (*LogHooks)(nil)
	_ StoreHooks   = (*LogHooks)(nil)
	_ CommandHooks = (*LogHooks)(nil)
)
