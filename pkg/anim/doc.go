// Package anim drives the cosmetic per-word animation of a placed cloud.
//
// Every placed word carries four independent channels: horizontal drift,
// vertical drift, glow intensity and alpha. Each channel wanders through an
// endless chain of ease segments. When a segment completes, the next one
// starts from the previous end value towards a fresh random target inside the
// channel range, with a jittered duration. Every label and channel pair has
// its own random source, so no two words move in lockstep.
//
// The [Scheduler] is pull-based: callers invoke [Scheduler.Tick] with the
// current time, usually once per frame. Pausing is simply not calling Tick.
// A new layout generation discards all state via [Scheduler.OnNewPlacement];
// positions may jump, only the cosmetic channels animate continuously.
//
// A Scheduler is owned by a single goroutine (the render loop) and is not safe
// for concurrent use.
package anim
