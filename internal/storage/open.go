package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"kanbo/internal/logs"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	// Dir is the data directory used by the file and bolt backends
	Dir   string
	S3    S3Options
	Redis RedisOptions
}

// Open builds the backend named by opts.Backend. Empty means file.
func Open(ctx context.Context, opts Options) (KV, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}

	logs.Logger.Debugw("Opening storage", "backend", backend, "dir", opts.Dir)

	switch backend {
	case BackendFile:
		return NewFile(opts.Dir)
	case BackendBolt:
		if opts.Dir == "" {
			return nil, fmt.Errorf("storage directory is required")
		}
		return NewBolt(filepath.Join(opts.Dir, BoltFileName))
	case BackendS3:
		return NewS3(ctx, opts.S3)
	case BackendRedis:
		return NewRedis(ctx, opts.Redis)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, bolt, s3, redis or memory)", opts.Backend)
	}
}
