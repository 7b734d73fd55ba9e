package store

import (
	"context"
	"fmt"
)

// LastTickerKey is the key under which the last searched ticker is saved.
const LastTickerKey = "finpeek_default_ticker"

// KV is a minimal string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Pinger is implemented by stores with a remote backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options selects and configures a store driver.
type Options struct {
	Driver        string // file, sqlite, redis, memory
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the store for opts.Driver.
func Open(opts Options) (KV, error) {
	switch opts.Driver {
	case "", "file":
		return NewFileStore(opts.Path), nil
	case "sqlite":
		return NewSQLiteStore(opts.Path)
	case "redis":
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
