// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about layout runs, weight storage and user commands.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [LogHooks] is a ready-made implementation that writes every event to a
// charmbracelet logger; the CLI installs it when running with --verbose.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, gen, len(entries))
//	// ... place words ...
//	observability.Layout().OnLayoutComplete(ctx, gen, placed, unplaced, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout computations.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, generation uint64, words int)
	OnLayoutComplete(ctx context.Context, generation uint64, placed, unplaced int, duration time.Duration, err error)

	// OnLayoutDiscarded records a finished layout whose generation was superseded.
	OnLayoutDiscarded(ctx context.Context, generation, current uint64)
}

// =============================================================================
// Store Hooks
// =============================================================================

// Load sources reported to StoreHooks.OnLoad.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
	SourceDefault  = "default"
)

// StoreHooks receives events from weight storage.
type StoreHooks interface {
	// OnLoad records where a load was satisfied from (primary, fallback, default).
	OnLoad(ctx context.Context, source string, entries int)

	// OnCorrupt records a stored value that failed validation.
	OnCorrupt(ctx context.Context, key string, err error)

	// OnSave records a write attempt.
	OnSave(ctx context.Context, key string, size int, duration time.Duration, err error)
}

// =============================================================================
// Command Hooks
// =============================================================================

// CommandHooks receives events from the interaction layer.
type CommandHooks interface {
	// OnCommand records a command (add, remove, reset, load) and its outcome.
	OnCommand(ctx context.Context, name, label string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, uint64, int) {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, uint64, int, int, time.Duration, error) {}
func (NoopLayoutHooks) OnLayoutDiscarded(context.Context, uint64, uint64) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, int) {}
func (NoopStoreHooks) OnCorrupt(context.Context, string, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, int, time.Duration, error) {}

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommand(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	commandHooks CommandHooks = NoopCommandHooks{}
	hooksMu      sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetCommandHooks registers custom command hooks.
func SetCommandHooks(h CommandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commandHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Command returns the registered command hooks.
func Command() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	storeHooks = NoopStoreHooks{}
	commandHooks = NoopCommandHooks{}
}
