// Package cloud is the command surface of a word cloud.
//
// A [Cloud] owns the in-memory word set and connects the pieces:
//
//	command -> weights.Store.Save -> layout.Engine (background) -> Publisher
//
// Commands ([Cloud.Add], [Cloud.Remove], [Cloud.ResetAll], [Cloud.Drop]) are
// synchronous: they mutate the set, persist it, and request a new layout. The
// layout itself runs in a goroutine so the render loop never waits on it.
// Every request gets a generation number from a monotonic counter; a layout
// that finishes after a newer one was requested is discarded, and the
// [Publisher] ignores anything older than what it already shows.
//
// # Persistence policy
//
// Add and Remove persist the full set after every change. ResetAll is
// in-memory only: it sets every weight to the baseline without writing, and
// the next persisted command writes the full current state, reset included.
// A failed write is returned as a STORAGE_UNAVAILABLE warning; the in-memory
// set stays authoritative.
package cloud
