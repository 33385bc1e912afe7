// Package kv provides the key-value storage layer behind word weights and
// rendered artifacts.
//
// # Backends
//
// Every backend implements [Store]:
//
//   - [FileStore]: one file per key under a data directory; writes go to a
//     temporary file that is renamed into place, so readers never see a
//     partially written value
//   - [MemoryStore]: process-local map, used by tests and ephemeral runs
//   - [NullStore]: never stores anything; persistence disabled
//   - [RedisStore]: Redis via github.com/redis/go-redis/v9 for shared installs
//   - [MongoStore]: MongoDB via go.mongodb.org/mongo-driver, one document per key
//
// [NewScopedStore] prefixes keys so several consumers can share one backend.
//
// # Errors
//
// Network backends mark transient failures with [Retryable]; callers wrap
// operations in [RetryWithBackoff] to retry them. A missing key is not an
// error: Get reports it through its boolean result.
package kv
