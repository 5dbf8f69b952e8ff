// Package storage provides the string key-value stores the board is persisted
// into. Every backend stores opaque string values under string keys and
// reports a missing key as ErrNotFound.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("storage: key not found")

// KV is a string key-value store
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendS3     = "s3"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)
