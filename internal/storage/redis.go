package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kanbo/internal/logs"
)

// RedisOptions configures the Redis backend
type RedisOptions struct {
	URL    string `json:"url,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// Redis stores each key as the string <prefix><key>, without expiry
type Redis struct {
	client redis.Cmdable
	closer func() error
	prefix string
}

// NewRedis connects to the server at opts.URL. A value that is not a
// redis:// URL is used as a plain host:port address.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		return nil, errors.New("redis url is required")
	}

	clientOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		clientOpts = &redis.Options{Addr: opts.URL}
	}
	clientOpts.MaxRetries = 3
	clientOpts.MinRetryBackoff = 100 * time.Millisecond
	clientOpts.MaxRetryBackoff = 500 * time.Millisecond

	client := redis.NewClient(clientOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logs.Logger.Infow("Redis connected", "addr", clientOpts.Addr, "db", clientOpts.DB)

	return &Redis{client: client, closer: client.Close, prefix: opts.Prefix}, nil
}

// RedisKey returns the redis key that holds key
func (r *Redis) RedisKey(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.RedisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("error loading %s from redis: %w", key, err)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.RedisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("error saving %s to redis: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
