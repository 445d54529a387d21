// Package redisstore implements the credential store on Redis, for clients
// that share credentials between several processes or hosts.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Options configures the Redis connection and key layout.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
	// TTL expires stored credentials; zero keeps them until deleted.
	TTL time.Duration
}

// Store persists credentials as Redis strings.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Open connects to Redis and pings it for fail-fast validation.
func Open(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("credstore/redis: ping %s: %w", opts.Addr, err)
	}
	return New(rdb, opts.Prefix, opts.TTL), nil
}

// New wraps an existing client.
func New(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("credential %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("credstore/redis: get %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("credstore/redis: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	if err := s.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("credstore/redis: delete: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
