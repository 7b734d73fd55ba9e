package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, LastTickerKey); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, LastTickerKey, "AAPL"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, LastTickerKey, "MSFT"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, LastTickerKey)
	if err != nil || !ok || v != "MSFT" {
		t.Fatalf("get = %q ok=%v err=%v, want MSFT", v, ok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "finpeek.json")
	exerciseKV(t, NewFileStore(path))

	// a second instance sees the persisted value
	v, ok, err := NewFileStore(path).Get(context.Background(), LastTickerKey)
	if err != nil || !ok || v != "MSFT" {
		t.Errorf("reopened get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finpeek.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewFileStore(path).Get(context.Background(), LastTickerKey); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "finpeek.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	exerciseKV(t, s)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{"", "file", "memory", "sqlite"} {
		kv, err := Open(Options{Driver: driver, Path: filepath.Join(dir, "store-"+driver)})
		if err != nil {
			t.Errorf("driver %q: %v", driver, err)
			continue
		}
		kv.Close()
	}
	if _, err := Open(Options{Driver: "etcd"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}
