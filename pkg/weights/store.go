package weights

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/kv"
	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Default storage keys. The fallback key is the name used by the older
// single-page variant of the application.
const (
	DefaultPrimaryKey  = "video-wcloud-words"
	DefaultFallbackKey = "wcloud-words"
)

// Options configures a Store.
type Options struct {
	PrimaryKey  string      // Key written by Save (default: DefaultPrimaryKey)
	FallbackKey string      // Key read when the primary is unusable (default: DefaultFallbackKey; "-" disables)
	Logger      *log.Logger // Optional; discards when nil
}

// LoadResult describes where the last Load was satisfied from.
type LoadResult struct {
	Source  string   // observability.SourcePrimary, SourceFallback or SourceDefault
	Key     string   // Key the entries came from; empty for defaults
	Corrupt []string // Keys that held data failing validation
	Entries int
}

// Store loads and saves the word set through a kv backend.
// It is safe for concurrent use.
type Store struct {
	backend  kv.Store
	primary  string
	fallback string
	logger   *log.Logger

	mu   sync.Mutex
	last LoadResult
}

// New creates a Store over backend. A nil backend behaves as an empty store
// that accepts writes.
func New(backend kv.Store, opts Options) *Store {
	if backend == nil {
		backend = kv.NewNullStore()
	}
	if opts.PrimaryKey == "" {
		opts.PrimaryKey = DefaultPrimaryKey
	}
	switch opts.FallbackKey {
	case "":
		opts.FallbackKey = DefaultFallbackKey
	case "-":
		opts.FallbackKey = ""
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Store{
		backend:  backend,
		primary:  opts.PrimaryKey,
		fallback: opts.FallbackKey,
		logger:   opts.Logger,
	}
}

// Keys returns the primary and fallback keys.
func (s *Store) Keys() (primary, fallback string) {
	return s.primary, s.fallback
}

// Load returns the persisted word set, or the built-in defaults when nothing
// usable is stored. The fallback key is read only when the primary key is
// missing, empty or unreadable; a corrupt primary recovers to the defaults.
// It never returns an error.
func (s *Store) Load(ctx context.Context) words.Set {
	res := LoadResult{Source: observability.SourceDefault}
	var set words.Set
	found := false

	keys := []struct{ key, source string }{{s.primary, observability.SourcePrimary}}
	if s.fallback != "" && s.fallback != s.primary {
		keys = append(keys, struct{ key, source string }{s.fallback, observability.SourceFallback})
	}

	for _, k := range keys {
		entries, st := s.read(ctx, k.key, &res)
		if st == readCorrupt {
			break
		}
		if st != readOK {
			continue
		}
		set, found = entries, true
		res.Source, res.Key = k.source, k.key
		break
	}

	if !found {
		set = words.Defaults()
	}
	res.Entries = len(set)

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	s.logger.Debug("loaded words", "source", res.Source, "key", res.Key, "entries", res.Entries)
	observability.Store().OnLoad(ctx, res.Source, res.Entries)
	return set
}

type readStatus int

const (
	readOK readStatus = iota
	readMissing
	readCorrupt
)

// read fetches and decodes key. Missing, empty and unreadable values report
// readMissing; values that fail validation or decoding report readCorrupt.
func (s *Store) read(ctx context.Context, key string, res *LoadResult) (words.Set, readStatus) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("could not read stored words", "key", key, "err", err)
		return nil, readMissing
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return nil, readMissing
	}
	if !Validate(raw) {
		s.corrupt(ctx, key, res, errors.New(errors.ErrCodeStorageCorrupt, "stored value under %q is not a list of [label, weight] pairs", key))
		return nil, readCorrupt
	}
	set, err := words.Decode(raw)
	if err != nil {
		s.corrupt(ctx, key, res, errors.Wrap(errors.ErrCodeStorageCorrupt, err, "decode %q", key))
		return nil, readCorrupt
	}
	return set.Dedupe(), readOK
}

func (s *Store) corrupt(ctx context.Context, key string, res *LoadResult, err error) {
	res.Corrupt = append(res.Corrupt, key)
	s.logger.Warn("stored words corrupt, ignoring", "key", key, "err", err)
	observability.Store().OnCorrupt(ctx, key, err)
}

// LastLoad returns the outcome of the most recent Load.
func (s *Store) LastLoad() LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.last
	r.Corrupt = append([]string(nil), r.Corrupt...)
	return r
}

// Save writes the full set to the primary key. Transient backend failures are
// retried; a final failure is returned as STORAGE_UNAVAILABLE.
func (s *Store) Save(ctx context.Context, entries words.Set) error {
	data, err := words.Encode(entries)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode words")
	}

	start := time.Now()
	err = kv.RetryWithBackoff(ctx, func() error {
		return s.backend.Set(ctx, s.primary, data, 0)
	})
	observability.Store().OnSave(ctx, s.primary, len(data), time.Since(start), err)
	if err != nil {
		s.logger.Warn("could not save words", "key", s.primary, "err", err)
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "save words to %q", s.primary)
	}
	s.logger.Debug("saved words", "key", s.primary, "entries", len(entries), "bytes", len(data))
	return nil
}

// Clear deletes both keys, so the next Load returns the defaults.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range []string{s.primary, s.fallback} {
		if key == "" {
			continue
		}
		if err := s.backend.Delete(ctx, key); err != nil {
			return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "clear %q", key)
		}
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
