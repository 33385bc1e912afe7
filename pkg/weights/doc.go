// Package weights is the durable store of word weights.
//
// A [Store] reads and writes a single JSON document, an array of
// [label, weight] pairs, through any [kv.Store] backend:
//
//	[["Foguete",3],["Sonho",1]]
//
// # Loading
//
// [Store.Load] never fails. It reads the primary key, and if that is missing,
// empty, unreadable or corrupt it tries the fallback key once. When neither
// key yields a valid document the built-in default set is returned. The
// outcome is kept in [Store.LastLoad] and reported to the store hooks of
// package observability.
//
// # Saving
//
// [Store.Save] always writes the full set to the primary key. The fallback
// key is read-only. Backends guarantee that readers never see a partial value
// (the file backend writes a temp file and renames it). A failed write is
// returned as STORAGE_UNAVAILABLE and leaves the previous value in place.
//
// # Validation
//
// [Validate] is a structural check over raw bytes, built on gjson so that no
// decoding happens before the shape is known to be right.
package weights
