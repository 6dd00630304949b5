package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// DefaultRedisPrefix namespaces document keys.
const DefaultRedisPrefix = "soloqbet:doc:"

// RedisStore implements ports.DocumentStore with one string key per document.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore parses a redis:// URL (or a bare host:port) and pings the server.
func NewRedisStore(ctx context.Context, dsn, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		opts = &redis.Options{Addr: dsn}
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("storage.NewRedisStore: ping %s: %w", opts.Addr, err)
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage.RedisStore.Get: %q: %w", name, err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("storage.RedisStore.Put: %q: %w", name, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
