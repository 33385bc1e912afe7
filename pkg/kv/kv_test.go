package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	data, ok, err := s.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Error("NullStore.Get should always return miss")
	}
	if data != nil {
		t.Error("NullStore.Get should return nil data")
	}

	if err := s.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "key"); ok {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Error("Get on empty store should miss")
	}

	in := []byte("hello")
	if err := s.Set(ctx, "k", in, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'j'

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v; want hit", ok, err)
	}
	if string(got) != "hello" {
		t.Errorf("Get = %q, want %q (store must copy input)", got, "hello")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatal("value should be present before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("value should be gone after expiry")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, ok, err := s.Get(ctx, "words"); ok || err != nil {
		t.Fatalf("Get on empty store = %v, %v; want miss", ok, err)
	}

	if err := s.Set(ctx, "words", []byte(`[["a",1]]`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "words", []byte(`[["a",2]]`), 0); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := s.Get(ctx, "words")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v; want hit", ok, err)
	}
	if string(got) != `[["a",2]]` {
		t.Errorf("Get = %s, want %s", got, `[["a",2]]`)
	}

	if err := s.Delete(ctx, "words"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "words"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	var files []string
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, filepath.Base(path))
		}
		return nil
	})
	if len(files) != 1 {
		t.Errorf("found files %v, want exactly one entry file", files)
	}
}

func TestFileStoreCorruptEnvelope(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	path := s.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.Get(ctx, "k"); err == nil || ok {
		t.Errorf("Get on corrupt envelope = %v, %v; want error", ok, err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("expired entry should miss")
	}
}

func TestScopedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	scoped := NewScopedStore(inner, "artifact:")

	if err := scoped.Set(ctx, "svg", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := inner.Get(ctx, "artifact:svg"); !ok {
		t.Error("scoped key should be stored with prefix")
	}
	if _, ok, _ := scoped.Get(ctx, "svg"); !ok {
		t.Error("scoped Get should find its own key")
	}
}

func TestScopedStoreNilInner(t *testing.T) {
	s := NewScopedStore(nil, "p:")
	if _, ok, err := s.Get(context.Background(), "k"); ok || err != nil {
		t.Errorf("nil inner should behave like NullStore, got %v, %v", ok, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashKey(t *testing.T) {
	k1 := HashKey("layout", "a", 900.0, 600.0)
	k2 := HashKey("layout", "a", 900.0, 601.0)
	if k1 == k2 {
		t.Error("different parts should produce different keys")
	}
	if k1[:7] != "layout:" {
		t.Errorf("HashKey should keep prefix, got %s", k1)
	}
}

func TestRedisStoreKey(t *testing.T) {
	s := NewRedisStoreFromClient(nil, "wc:")
	if got := s.Key("video-wcloud-words"); got != "wc:video-wcloud-words" {
		t.Errorf("Key() = %q, want %q", got, "wc:video-wcloud-words")
	}
}
